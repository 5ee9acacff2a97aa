// Package services содержит бизнес-логику справочника типов проектов.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/d-directory/d-directory/internal/models"
)

// ProjectTypeRepository определяет методы для работы с типами проектов в хранилище.
type ProjectTypeRepository interface {
	ListProjectTypes(ctx context.Context) ([]*models.ProjectType, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// ProjectTypeService реализует бизнес-логику справочника типов проектов.
// Справочник статичен, поэтому кешируется целиком.
type ProjectTypeService struct {
	repo  ProjectTypeRepository
	cache Cache
	log   *slog.Logger
}

// NewProjectTypeService создает новый экземпляр ProjectTypeService.
func NewProjectTypeService(repo ProjectTypeRepository, cache Cache, log *slog.Logger) *ProjectTypeService {
	return &ProjectTypeService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

const projectTypesCacheKey = "project-types:all"

// List возвращает типы проектов, используя кеш или репозиторий.
func (s *ProjectTypeService) List(ctx context.Context) ([]*models.ProjectType, error) {
	var result []*models.ProjectType
	found, err := s.cache.Get(projectTypesCacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListProjectTypes(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(projectTypesCacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache project types", slog.String("key", projectTypesCacheKey), slog.Any("err", err))
	}
	return result, nil
}
