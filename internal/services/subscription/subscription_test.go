package services

import (
	"context"
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

func (m *RepoMock) GetSubscriptionWithPlan(ctx context.Context, contractorID int) (*models.SubscriptionWithPlan, error) {
	args := m.Called(ctx, contractorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionWithPlan), args.Error(1)
}
func (m *RepoMock) ReplaceSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	args := m.Called(ctx, sub)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) GetPlan(ctx context.Context, id int) (*models.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}
func (m *RepoMock) GetContractor(ctx context.Context, id int) (*models.Contractor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contractor), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSubscriptionService_Replace(t *testing.T) {
	contractor := &models.Contractor{ID: 7, Name: "Acme Remodeling"}
	plan := &models.Plan{ID: 2, Name: "Professional", MonthlyLeadQuota: 15}

	cycleStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cycleEnd := cycleStart.AddDate(0, 1, 0)

	validReq := models.DummySubscription{
		PlanID:            2,
		BillingCycleStart: cycleStart.Format(time.RFC3339),
		BillingCycleEnd:   cycleEnd.Format(time.RFC3339),
	}

	tests := []struct {
		name       string
		req        models.DummySubscription
		setupMocks func(r *RepoMock)
		wantID     int
		wantErr    error
	}{
		{
			name: "success replace",
			req:  validReq,
			setupMocks: func(r *RepoMock) {
				r.On("GetContractor", mock.Anything, 7).Return(contractor, nil).Once()
				r.On("GetPlan", mock.Anything, 2).Return(plan, nil).Once()
				r.On("ReplaceSubscription", mock.Anything, mock.MatchedBy(func(s models.Subscription) bool {
					return s.ContractorID == 7 && s.PlanID == 2 &&
						s.BillingCycleStart.Equal(cycleStart) &&
						s.BillingCycleEnd.Equal(cycleEnd)
				})).Return(11, nil).Once()
			},
			wantID: 11,
		},
		{
			name: "contractor not found",
			req:  validReq,
			setupMocks: func(r *RepoMock) {
				r.On("GetContractor", mock.Anything, 7).
					Return(nil, models.ErrContractorNotFound).Once()
			},
			wantErr: models.ErrContractorNotFound,
		},
		{
			name: "plan not found",
			req:  validReq,
			setupMocks: func(r *RepoMock) {
				r.On("GetContractor", mock.Anything, 7).Return(contractor, nil).Once()
				r.On("GetPlan", mock.Anything, 2).Return(nil, models.ErrPlanNotFound).Once()
			},
			wantErr: models.ErrPlanNotFound,
		},
		{
			name: "billing cycle dates not RFC 3339",
			req: models.DummySubscription{
				PlanID:            2,
				BillingCycleStart: "2025-06-01",
				BillingCycleEnd:   "2025-07-01",
			},
			setupMocks: func(r *RepoMock) {
				r.On("GetContractor", mock.Anything, 7).Return(contractor, nil).Once()
				r.On("GetPlan", mock.Anything, 2).Return(plan, nil).Once()
			},
			wantErr: models.ErrInvalidBillingCycle,
		},
		{
			name: "billing cycle end before start",
			req: models.DummySubscription{
				PlanID:            2,
				BillingCycleStart: cycleEnd.Format(time.RFC3339),
				BillingCycleEnd:   cycleStart.Format(time.RFC3339),
			},
			setupMocks: func(r *RepoMock) {
				r.On("GetContractor", mock.Anything, 7).Return(contractor, nil).Once()
				r.On("GetPlan", mock.Anything, 2).Return(plan, nil).Once()
			},
			wantErr: models.ErrInvalidBillingCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := NewSubscriptionService(repo, newNoopLogger())

			tt.setupMocks(repo)

			gotID, err := svc.Replace(context.Background(), 7, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, gotID)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestSubscriptionService_Read(t *testing.T) {
	contractor := &models.Contractor{ID: 7, Name: "Acme Remodeling"}
	withPlan := &models.SubscriptionWithPlan{
		Subscription: models.Subscription{ID: 11, ContractorID: 7, LeadsUsed: 3},
		Plan:         models.Plan{ID: 2, Name: "Professional", MonthlyLeadQuota: 15},
	}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name: "success read",
			setupMocks: func(r *RepoMock) {
				r.On("GetContractor", mock.Anything, 7).Return(contractor, nil).Once()
				r.On("GetSubscriptionWithPlan", mock.Anything, 7).Return(withPlan, nil).Once()
			},
		},
		{
			name: "no active subscription",
			setupMocks: func(r *RepoMock) {
				r.On("GetContractor", mock.Anything, 7).Return(contractor, nil).Once()
				r.On("GetSubscriptionWithPlan", mock.Anything, 7).
					Return(nil, models.ErrSubscriptionNotFound).Once()
			},
			wantErr: models.ErrSubscriptionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := NewSubscriptionService(repo, newNoopLogger())

			tt.setupMocks(repo)

			got, err := svc.Read(context.Background(), 7)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 3, got.Subscription.LeadsUsed)
				assert.Equal(t, 15, got.Plan.MonthlyLeadQuota)
			}

			repo.AssertExpectations(t)
		})
	}
}
