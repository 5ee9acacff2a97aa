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

func (m *RepoMock) CreateContractor(ctx context.Context, c models.Contractor) (int, error) {
	args := m.Called(ctx, c)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) GetContractor(ctx context.Context, id int) (*models.Contractor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contractor), args.Error(1)
}
func (m *RepoMock) ListContractors(ctx context.Context, filter models.ContractorFilter) ([]*models.Contractor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Contractor), args.Error(1)
}
func (m *RepoMock) UpdateContractor(ctx context.Context, c models.Contractor, id int) (int, error) {
	args := m.Called(ctx, c, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) DeleteContractor(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
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

func TestContractorService_Create(t *testing.T) {
	req := models.DummyContractor{
		Name:     "Acme Remodeling",
		Category: "Kitchen Remodeling",
		Location: "Austin, TX",
		Email:    "acme@example.com",
	}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		wantID     int
		wantErr    bool
	}{
		{
			name: "success create",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("CreateContractor", mock.Anything, mock.MatchedBy(func(c models.Contractor) bool {
					return c.Name == req.Name && c.Category == req.Category
				})).Return(42, nil).Once()
				c.On("Set", "contractor:42", mock.Anything, time.Hour).Return(nil).Once()
			},
			wantID: 42,
		},
		{
			name: "cache set error logs warning but returns id",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("CreateContractor", mock.Anything, mock.Anything).Return(7, nil).Once()
				c.On("Set", "contractor:7", mock.Anything, time.Hour).
					Return(errors.New("redis down")).Once()
			},
			wantID: 7,
		},
		{
			name: "storage error",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("CreateContractor", mock.Anything, mock.Anything).
					Return(0, errors.New("db down")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := NewContractorService(repo, cache, newNoopLogger())

			tt.setupMocks(repo, cache)

			gotID, err := svc.Create(context.Background(), req)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, gotID)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestContractorService_Read(t *testing.T) {
	contractor := &models.Contractor{ID: 42, Name: "Acme Remodeling"}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		wantErr    error
	}{
		{
			name: "cache hit skips repository",
			setupMocks: func(_ *RepoMock, c *CacheMock) {
				c.On("Get", "contractor:42", mock.Anything).Return(true, nil).Once()
			},
		},
		{
			name: "cache miss falls back to repository",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "contractor:42", mock.Anything).Return(false, nil).Once()
				r.On("GetContractor", mock.Anything, 42).Return(contractor, nil).Once()
				c.On("Set", "contractor:42", mock.Anything, time.Hour).Return(nil).Once()
			},
		},
		{
			name: "contractor not found",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "contractor:42", mock.Anything).Return(false, nil).Once()
				r.On("GetContractor", mock.Anything, 42).
					Return(nil, models.ErrContractorNotFound).Once()
			},
			wantErr: models.ErrContractorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := NewContractorService(repo, cache, newNoopLogger())

			tt.setupMocks(repo, cache)

			_, err := svc.Read(context.Background(), 42)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestContractorService_Remove(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := NewContractorService(repo, cache, newNoopLogger())

	cache.On("Invalidate", "contractor:42").Return(nil).Once()
	repo.On("DeleteContractor", mock.Anything, 42).Return(1, nil).Once()

	count, err := svc.Remove(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
