package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/d-directory/d-directory/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Plan), args.Error(1)
}
func (m *RepoMock) GetPlan(ctx context.Context, id int) (*models.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestPlanService_List(t *testing.T) {
	plans := []*models.Plan{
		{ID: 1, Name: "Basic", Price: 29.99, MonthlyLeadQuota: 5, Active: true},
		{ID: 2, Name: "Professional", Price: 79.99, MonthlyLeadQuota: 15, Active: true},
	}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		wantErr    bool
	}{
		{
			name: "cache hit skips repository",
			setupMocks: func(_ *RepoMock, c *CacheMock) {
				c.On("Get", "plans:active", mock.Anything).Return(true, nil).Once()
			},
		},
		{
			name: "cache miss falls back to repository",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "plans:active", mock.Anything).Return(false, nil).Once()
				r.On("ListPlans", mock.Anything).Return(plans, nil).Once()
				c.On("Set", "plans:active", mock.Anything, time.Hour).Return(nil).Once()
			},
		},
		{
			name: "repository error",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "plans:active", mock.Anything).Return(false, nil).Once()
				r.On("ListPlans", mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := NewPlanService(repo, cache, newNoopLogger())

			tt.setupMocks(repo, cache)

			_, err := svc.List(context.Background())

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestPlanService_Read(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := NewPlanService(repo, cache, newNoopLogger())

	repo.On("GetPlan", mock.Anything, 99).Return(nil, models.ErrPlanNotFound).Once()

	_, err := svc.Read(context.Background(), 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrPlanNotFound)
	repo.AssertExpectations(t)
}
