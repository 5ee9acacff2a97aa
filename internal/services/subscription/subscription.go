// Package services содержит бизнес-логику подписок подрядчиков
// на тарифные планы.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/d-directory/d-directory/internal/models"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// GetSubscriptionWithPlan возвращает активную подписку вместе с планом.
	GetSubscriptionWithPlan(ctx context.Context, contractorID int) (*models.SubscriptionWithPlan, error)
	// ReplaceSubscription деактивирует текущую подписку и создаёт новую.
	ReplaceSubscription(ctx context.Context, sub models.Subscription) (int, error)
	// GetPlan возвращает тарифный план по ID.
	GetPlan(ctx context.Context, id int) (*models.Plan, error)
	// GetContractor возвращает карточку подрядчика по ID.
	GetContractor(ctx context.Context, id int) (*models.Contractor, error)
}

// SubscriptionService реализует бизнес-логику подписок подрядчиков.
type SubscriptionService struct {
	repo SubscriptionRepository
	log  *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo: repo,
		log:  log,
	}
}

// Read возвращает активную подписку подрядчика вместе с тарифным планом.
func (s *SubscriptionService) Read(ctx context.Context, contractorID int) (*models.SubscriptionWithPlan, error) {
	if _, err := s.repo.GetContractor(ctx, contractorID); err != nil {
		return nil, err
	}
	return s.repo.GetSubscriptionWithPlan(ctx, contractorID)
}

// Replace подключает подрядчика к тарифному плану. Существующая активная
// подписка деактивируется, новая начинается с нулевым счётчиком лидов.
func (s *SubscriptionService) Replace(ctx context.Context, contractorID int, req models.DummySubscription) (int, error) {
	if _, err := s.repo.GetContractor(ctx, contractorID); err != nil {
		return 0, err
	}
	if _, err := s.repo.GetPlan(ctx, req.PlanID); err != nil {
		return 0, err
	}

	cycleStart, err := time.Parse(time.RFC3339, req.BillingCycleStart)
	if err != nil {
		return 0, fmt.Errorf("%w: bad start date", models.ErrInvalidBillingCycle)
	}
	cycleEnd, err := time.Parse(time.RFC3339, req.BillingCycleEnd)
	if err != nil {
		return 0, fmt.Errorf("%w: bad end date", models.ErrInvalidBillingCycle)
	}
	if !cycleEnd.After(cycleStart) {
		return 0, models.ErrInvalidBillingCycle
	}

	id, err := s.repo.ReplaceSubscription(ctx, models.Subscription{
		ContractorID:      contractorID,
		PlanID:            req.PlanID,
		BillingCycleStart: cycleStart,
		BillingCycleEnd:   cycleEnd,
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("replaced contractor subscription",
		slog.Int("contractor_id", contractorID),
		slog.Int("plan_id", req.PlanID),
		slog.Int("subscription_id", id))
	return id, nil
}
