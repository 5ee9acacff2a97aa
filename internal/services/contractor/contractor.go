// Package services содержит бизнес-логику каталога подрядчиков
// с кешированием карточек.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/d-directory/d-directory/internal/models"
)

// ContractorRepository определяет методы для работы с подрядчиками в хранилище.
type ContractorRepository interface {
	// CreateContractor добавляет новую карточку и возвращает её ID.
	CreateContractor(ctx context.Context, c models.Contractor) (int, error)
	// GetContractor возвращает карточку по ID.
	GetContractor(ctx context.Context, id int) (*models.Contractor, error)
	// ListContractors возвращает карточки с учётом фильтров.
	ListContractors(ctx context.Context, filter models.ContractorFilter) ([]*models.Contractor, error)
	// UpdateContractor обновляет карточку по ID.
	UpdateContractor(ctx context.Context, c models.Contractor, id int) (int, error)
	// DeleteContractor удаляет карточку по ID.
	DeleteContractor(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// ContractorService реализует бизнес-логику каталога подрядчиков.
type ContractorService struct {
	repo  ContractorRepository
	cache Cache
	log   *slog.Logger
}

// NewContractorService создает новый экземпляр ContractorService.
func NewContractorService(repo ContractorRepository, cache Cache, log *slog.Logger) *ContractorService {
	return &ContractorService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новую карточку подрядчика, кеширует её и возвращает ID.
func (s *ContractorService) Create(ctx context.Context, req models.DummyContractor) (int, error) {
	contractor := models.Contractor{
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		Location:        req.Location,
		Address:         req.Address,
		Phone:           req.Phone,
		Email:           req.Email,
		Website:         req.Website,
		ImageURL:        req.ImageURL,
		Rating:          req.Rating,
		ReviewCount:     req.ReviewCount,
		YearsExperience: req.YearsExperience,
		ProjectTypes:    req.ProjectTypes,
		ServiceRadius:   req.ServiceRadius,
		FreeEstimate:    req.FreeEstimate,
		Licensed:        req.Licensed,
	}

	id, err := s.repo.CreateContractor(ctx, contractor)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new contractor", slog.Int("id", id))

	contractor.ID = id
	cacheKey := fmt.Sprintf("contractor:%d", id)
	if err := s.cache.Set(cacheKey, contractor, time.Hour); err != nil {
		s.log.Warn("failed to cache contractor", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return id, nil
}

// Read возвращает карточку подрядчика по ID, используя кеш или репозиторий.
func (s *ContractorService) Read(ctx context.Context, id int) (*models.Contractor, error) {
	var result *models.Contractor
	cacheKey := fmt.Sprintf("contractor:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetContractor(ctx, id)
	if err != nil {
		return nil, err
	}

	if result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey),
				slog.Any("err", err))
		}
	}
	return result, nil
}

// List возвращает карточки подрядчиков с учётом фильтров каталога.
func (s *ContractorService) List(ctx context.Context, filter models.ContractorFilter) ([]*models.Contractor, error) {
	return s.repo.ListContractors(ctx, filter)
}

// Update обновляет карточку подрядчика и обновляет кеш.
func (s *ContractorService) Update(ctx context.Context, req models.DummyContractor, id int) (int, error) {
	contractor := models.Contractor{
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		Location:        req.Location,
		Address:         req.Address,
		Phone:           req.Phone,
		Email:           req.Email,
		Website:         req.Website,
		ImageURL:        req.ImageURL,
		Rating:          req.Rating,
		ReviewCount:     req.ReviewCount,
		YearsExperience: req.YearsExperience,
		ProjectTypes:    req.ProjectTypes,
		ServiceRadius:   req.ServiceRadius,
		FreeEstimate:    req.FreeEstimate,
		Licensed:        req.Licensed,
	}

	res, err := s.repo.UpdateContractor(ctx, contractor, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated contractor in storage", slog.Int("id", id))

	contractor.ID = id
	cacheKey := fmt.Sprintf("contractor:%d", id)
	if err := s.cache.Set(cacheKey, contractor, time.Hour); err != nil {
		s.log.Warn("failed to cache contractor", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return res, nil
}

// Remove удаляет карточку подрядчика по ID и инвалидирует кеш.
func (s *ContractorService) Remove(ctx context.Context, id int) (int, error) {
	cacheKey := fmt.Sprintf("contractor:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.DeleteContractor(ctx, id)
	if err != nil {
		return 0, err
	}

	return count, nil
}
