// Package services содержит бизнес-логику каталога тарифных планов.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/d-directory/d-directory/internal/models"
)

// PlanRepository определяет методы для работы с тарифными планами в хранилище.
type PlanRepository interface {
	// ListPlans возвращает активные планы по возрастанию цены.
	ListPlans(ctx context.Context) ([]*models.Plan, error)
	// GetPlan возвращает план по ID.
	GetPlan(ctx context.Context, id int) (*models.Plan, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// PlanService реализует бизнес-логику тарифных планов.
// Каталог планов меняется редко, поэтому список кешируется целиком.
type PlanService struct {
	repo  PlanRepository
	cache Cache
	log   *slog.Logger
}

// NewPlanService создает новый экземпляр PlanService.
func NewPlanService(repo PlanRepository, cache Cache, log *slog.Logger) *PlanService {
	return &PlanService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

const plansCacheKey = "plans:active"

// List возвращает активные тарифные планы, используя кеш или репозиторий.
func (s *PlanService) List(ctx context.Context) ([]*models.Plan, error) {
	var result []*models.Plan
	found, err := s.cache.Get(plansCacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(plansCacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache plans", slog.String("key", plansCacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Read возвращает тарифный план по ID.
func (s *PlanService) Read(ctx context.Context, id int) (*models.Plan, error) {
	return s.repo.GetPlan(ctx, id)
}
