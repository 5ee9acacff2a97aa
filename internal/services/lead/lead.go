// Package services содержит бизнес-логику воронки заявок: допуск через
// шлюз квоты, листинг и смену статуса.
package services

import (
	"context"
	"log/slog"

	"github.com/d-directory/d-directory/internal/lib/sl"
	"github.com/d-directory/d-directory/internal/models"
)

// LeadRepository определяет методы для работы с заявками в хранилище.
type LeadRepository interface {
	// AdmitLead атомарно проверяет квоту, сохраняет лид
	// и инкрементирует счётчик использованных лидов.
	AdmitLead(ctx context.Context, lead models.Lead) (*models.Lead, error)
	// ListLeads возвращает лиды, свежие первыми.
	ListLeads(ctx context.Context, filter models.LeadFilter) ([]*models.Lead, error)
	// UpdateLeadStatus переводит лид в новый статус.
	UpdateLeadStatus(ctx context.Context, id int, status string) (*models.Lead, error)
	// GetContractor возвращает карточку подрядчика по ID.
	GetContractor(ctx context.Context, id int) (*models.Contractor, error)
}

// EventPublisher публикует события о новых заявках.
type EventPublisher interface {
	PublishLeadCreated(event models.LeadCreatedEvent) error
}

// LeadService реализует бизнес-логику воронки заявок.
type LeadService struct {
	repo      LeadRepository
	publisher EventPublisher
	log       *slog.Logger
}

// NewLeadService создает новый экземпляр LeadService.
func NewLeadService(repo LeadRepository, publisher EventPublisher, log *slog.Logger) *LeadService {
	return &LeadService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Submit проводит заявку через шлюз квоты. Подрядчик должен существовать;
// при активной подписке квота проверяется и счётчик растёт, без подписки
// заявка принимается без тарификации. Принятая заявка получает статус new,
// событие о ней публикуется для воркера уведомлений.
func (s *LeadService) Submit(ctx context.Context, req models.DummyLead) (*models.Lead, error) {
	contractor, err := s.repo.GetContractor(ctx, req.ContractorID)
	if err != nil {
		return nil, err
	}

	lead, err := s.repo.AdmitLead(ctx, models.Lead{
		ContractorID:       req.ContractorID,
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		CustomerPhone:      req.CustomerPhone,
		ProjectType:        req.ProjectType,
		ProjectDescription: req.ProjectDescription,
		Budget:             req.Budget,
		Timeline:           req.Timeline,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("admitted new lead",
		slog.Int("id", lead.ID),
		slog.Int("contractor_id", lead.ContractorID))

	// Уведомление не влияет на судьбу уже принятой заявки
	if s.publisher != nil {
		err = s.publisher.PublishLeadCreated(models.LeadCreatedEvent{
			LeadID:          lead.ID,
			ContractorID:    contractor.ID,
			ContractorName:  contractor.Name,
			ContractorEmail: contractor.Email,
			CustomerName:    lead.CustomerName,
			CustomerEmail:   lead.CustomerEmail,
			ProjectType:     lead.ProjectType,
		})
		if err != nil {
			s.log.Warn("failed to publish lead created event",
				slog.Int("lead_id", lead.ID), sl.Err(err))
		}
	}

	return lead, nil
}

// List возвращает заявки, свежие первыми. Фильтр по подрядчику опционален.
func (s *LeadService) List(ctx context.Context, filter models.LeadFilter) ([]*models.Lead, error) {
	return s.repo.ListLeads(ctx, filter)
}

// UpdateStatus переводит заявку в новый статус воронки.
func (s *LeadService) UpdateStatus(ctx context.Context, id int, status string) (*models.Lead, error) {
	if !models.IsValidLeadStatus(status) {
		return nil, models.ErrInvalidLeadStatus
	}
	return s.repo.UpdateLeadStatus(ctx, id, status)
}
