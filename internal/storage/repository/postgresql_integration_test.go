package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/d-directory/d-directory/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_AdmitLead(t *testing.T) {
	type args struct {
		ctx  context.Context
		lead models.Lead
	}

	tests := []struct {
		name      string
		args      args
		wantErr   error
		setup     func(t *testing.T, factory *TestDataFactory) (contractorID, subscriptionID int)
		wantUsage int
	}{
		{
			name: "successful admit lead under quota",
			args: args{
				ctx: context.Background(),
				lead: models.Lead{
					CustomerName:       "John Smith",
					CustomerEmail:      "john@example.com",
					CustomerPhone:      "555-0199",
					ProjectType:        "Kitchen Remodeling",
					ProjectDescription: "Full kitchen renovation",
				},
			},
			wantErr: nil,
			setup: func(t *testing.T, factory *TestDataFactory) (int, int) {
				contractorID := factory.CreateContractor(t, "Acme Remodeling", "Kitchen Remodeling", "Austin, TX", "acme@example.com")
				planID := factory.CreatePlan(t, "Basic", 29.99, 5)
				subID := factory.CreateSubscription(t, contractorID, planID, 2, models.SubscriptionStatusActive)
				return contractorID, subID
			},
			wantUsage: 3,
		},
		{
			name: "reject lead at quota",
			args: args{
				ctx: context.Background(),
				lead: models.Lead{
					CustomerName:  "Jane Doe",
					CustomerEmail: "jane@example.com",
					ProjectType:   "Bathroom Renovation",
				},
			},
			wantErr: models.ErrQuotaExceeded,
			setup: func(t *testing.T, factory *TestDataFactory) (int, int) {
				contractorID := factory.CreateContractor(t, "Quota Builders", "Bathroom Renovation", "Dallas, TX", "quota@example.com")
				planID := factory.CreatePlan(t, "Basic", 29.99, 5)
				subID := factory.CreateSubscription(t, contractorID, planID, 5, models.SubscriptionStatusActive)
				return contractorID, subID
			},
			wantUsage: 5,
		},
		{
			name: "admit lead without active subscription, counter untouched",
			args: args{
				ctx: context.Background(),
				lead: models.Lead{
					CustomerName:  "Bob Brown",
					CustomerEmail: "bob@example.com",
					ProjectType:   "Roofing",
				},
			},
			wantErr: nil,
			setup: func(t *testing.T, factory *TestDataFactory) (int, int) {
				contractorID := factory.CreateContractor(t, "No Sub Roofing", "Roofing", "Houston, TX", "nosub@example.com")
				planID := factory.CreatePlan(t, "Basic", 29.99, 5)
				subID := factory.CreateSubscription(t, contractorID, planID, 0, models.SubscriptionStatusInactive)
				return contractorID, subID
			},
			wantUsage: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			contractorID, subscriptionID := tt.setup(t, factory)
			tt.args.lead.ContractorID = contractorID

			got, err := storage.AdmitLead(tt.args.ctx, tt.args.lead)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, models.LeadStatusNew, got.Status)
				assert.Equal(t, contractorID, got.ContractorID)

				verification := NewTestVerification(storage)
				verification.VerifyLeadExists(t, got.ID)
			}

			// Проверяем, что счётчик лидов изменился только при успешном допуске
			verification := NewTestVerification(storage)
			verification.VerifyLeadsUsed(t, subscriptionID, tt.wantUsage)
		})
	}
}

func TestStorage_ReplaceSubscription(t *testing.T) {
	t.Run("replace deactivates previous active subscription", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		contractorID := factory.CreateContractor(t, "Switch Plans Inc", "Flooring", "Austin, TX", "switch@example.com")
		basicID := factory.CreatePlan(t, "Basic", 29.99, 5)
		proID := factory.CreatePlan(t, "Professional", 79.99, 15)
		oldSubID := factory.CreateSubscription(t, contractorID, basicID, 4, models.SubscriptionStatusActive)

		newSubID, err := storage.ReplaceSubscription(context.Background(), models.Subscription{
			ContractorID: contractorID,
			PlanID:       proID,
		})
		require.NoError(t, err)
		require.NotZero(t, newSubID)

		verification := NewTestVerification(storage)
		verification.VerifySubscriptionStatus(t, oldSubID, models.SubscriptionStatusInactive)
		verification.VerifySubscriptionStatus(t, newSubID, models.SubscriptionStatusActive)
		// Новая подписка начинается с нулевым счётчиком
		verification.VerifyLeadsUsed(t, newSubID, 0)
	})

	t.Run("replace works for contractor without subscription", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		contractorID := factory.CreateContractor(t, "First Timer LLC", "Painting", "Dallas, TX", "first@example.com")
		planID := factory.CreatePlan(t, "Basic", 29.99, 5)

		newSubID, err := storage.ReplaceSubscription(context.Background(), models.Subscription{
			ContractorID: contractorID,
			PlanID:       planID,
		})
		require.NoError(t, err)
		require.NotZero(t, newSubID)

		verification := NewTestVerification(storage)
		verification.VerifySubscriptionStatus(t, newSubID, models.SubscriptionStatusActive)
	})
}

func TestStorage_GetSubscriptionWithPlan(t *testing.T) {
	tests := []struct {
		name    string
		wantErr error
		setup   func(t *testing.T, factory *TestDataFactory) int
	}{
		{
			name:    "successful get subscription with plan",
			wantErr: nil,
			setup: func(t *testing.T, factory *TestDataFactory) int {
				contractorID := factory.CreateContractor(t, "Joined Query Co", "Landscaping", "Austin, TX", "joined@example.com")
				planID := factory.CreatePlan(t, "Premium", 149.99, 50)
				factory.CreateSubscription(t, contractorID, planID, 7, models.SubscriptionStatusActive)
				return contractorID
			},
		},
		{
			name:    "no active subscription",
			wantErr: models.ErrSubscriptionNotFound,
			setup: func(t *testing.T, factory *TestDataFactory) int {
				return factory.CreateContractor(t, "Lonely Co", "Landscaping", "Dallas, TX", "lonely@example.com")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			contractorID := tt.setup(t, factory)

			got, err := storage.GetSubscriptionWithPlan(context.Background(), contractorID)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, contractorID, got.Subscription.ContractorID)
				assert.Equal(t, "Premium", got.Plan.Name)
				assert.Equal(t, 50, got.Plan.MonthlyLeadQuota)
				assert.Equal(t, 7, got.Subscription.LeadsUsed)
			}
		})
	}
}

func TestStorage_ListLeads(t *testing.T) {
	t.Run("list newest first with contractor filter", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		firstID := factory.CreateContractor(t, "First Co", "Roofing", "Austin, TX", "first-co@example.com")
		secondID := factory.CreateContractor(t, "Second Co", "Roofing", "Dallas, TX", "second-co@example.com")

		factory.CreateLead(t, firstID, "Customer A", models.LeadStatusNew)
		factory.CreateLead(t, firstID, "Customer B", models.LeadStatusContacted)
		factory.CreateLead(t, secondID, "Customer C", models.LeadStatusNew)

		got, err := storage.ListLeads(context.Background(), models.LeadFilter{ContractorID: &firstID})
		require.NoError(t, err)
		assert.Len(t, got, 2)
		for _, lead := range got {
			assert.Equal(t, firstID, lead.ContractorID)
		}

		all, err := storage.ListLeads(context.Background(), models.LeadFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestStorage_UpdateLeadStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantErr error
		setup   func(t *testing.T, factory *TestDataFactory) int
	}{
		{
			name:    "successful update lead status",
			status:  models.LeadStatusWon,
			wantErr: nil,
			setup: func(t *testing.T, factory *TestDataFactory) int {
				contractorID := factory.CreateContractor(t, "Pipeline Co", "Plumbing", "Austin, TX", "pipeline@example.com")
				return factory.CreateLead(t, contractorID, "Customer D", models.LeadStatusQuoted)
			},
		},
		{
			name:    "update non-existing lead",
			status:  models.LeadStatusContacted,
			wantErr: models.ErrLeadNotFound,
			setup:   func(_ *testing.T, _ *TestDataFactory) int { return 9999 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			leadID := tt.setup(t, factory)

			got, err := storage.UpdateLeadStatus(context.Background(), leadID, tt.status)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, tt.status, got.Status)
			}
		})
	}
}

func TestStorage_ContractorCRUD(t *testing.T) {
	t.Run("create read update delete contractor", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		ctx := context.Background()
		contractor := models.Contractor{
			Name:            "Lifecycle Builders",
			Category:        "Home Additions",
			Description:     "Additions and extensions",
			Location:        "Austin, TX",
			Address:         "42 Builder Ln",
			Phone:           "555-0142",
			Email:           "lifecycle@example.com",
			Rating:          4.8,
			ReviewCount:     23,
			YearsExperience: 12,
			ProjectTypes:    []string{"Home Additions", "Kitchen Remodeling"},
			ServiceRadius:   40,
			FreeEstimate:    true,
			Licensed:        true,
		}

		id, err := storage.CreateContractor(ctx, contractor)
		require.NoError(t, err)
		require.NotZero(t, id)

		got, err := storage.GetContractor(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, contractor.Name, got.Name)
		assert.Equal(t, contractor.ProjectTypes, got.ProjectTypes)
		assert.Equal(t, contractor.Rating, got.Rating)

		contractor.Description = "Additions, extensions and ADUs"
		rowsAffected, err := storage.UpdateContractor(ctx, contractor, id)
		require.NoError(t, err)
		assert.Equal(t, 1, rowsAffected)

		rowsAffected, err = storage.DeleteContractor(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, rowsAffected)

		verification := NewTestVerification(storage)
		verification.VerifyContractorDeleted(t, id)

		_, err = storage.GetContractor(ctx, id)
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrContractorNotFound))
	})
}

func TestStorage_ListContractors(t *testing.T) {
	type args struct {
		filter models.ContractorFilter
	}

	tests := []struct {
		name      string
		args      args
		wantCount int
		setup     func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name:      "filter by category",
			args:      args{filter: models.ContractorFilter{Category: "Roofing"}},
			wantCount: 1,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateContractor(t, "Roof Masters", "Roofing", "Austin, TX", "roof@example.com")
				factory.CreateContractor(t, "Paint Pros", "Painting", "Austin, TX", "paint@example.com")
			},
		},
		{
			name:      "filter by location substring",
			args:      args{filter: models.ContractorFilter{Location: "austin"}},
			wantCount: 2,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateContractor(t, "Roof Masters", "Roofing", "Austin, TX", "roof@example.com")
				factory.CreateContractor(t, "Paint Pros", "Painting", "Austin, TX", "paint@example.com")
				factory.CreateContractor(t, "Dallas Decks", "Decks", "Dallas, TX", "decks@example.com")
			},
		},
		{
			name:      "search across name and category",
			args:      args{filter: models.ContractorFilter{Search: "roof"}},
			wantCount: 1,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateContractor(t, "Roof Masters", "Roofing", "Austin, TX", "roof@example.com")
				factory.CreateContractor(t, "Paint Pros", "Painting", "Austin, TX", "paint@example.com")
			},
		},
		{
			name:      "no filters returns everything",
			args:      args{filter: models.ContractorFilter{}},
			wantCount: 2,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateContractor(t, "Roof Masters", "Roofing", "Austin, TX", "roof@example.com")
				factory.CreateContractor(t, "Paint Pros", "Painting", "Austin, TX", "paint@example.com")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			got, err := storage.ListContractors(context.Background(), tt.args.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantCount)
		})
	}
}

func TestStorage_ListPlans(t *testing.T) {
	t.Run("plans sorted by price ascending, inactive hidden", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		factory.CreatePlan(t, "Premium", 149.99, 50)
		factory.CreatePlan(t, "Basic", 29.99, 5)
		factory.CreatePlan(t, "Professional", 79.99, 15)

		_, err := storage.DB.Exec(
			`INSERT INTO plans (name, price, monthly_lead_quota, features, active)
			 VALUES ('Legacy', 9.99, 1, '[]', false)`)
		require.NoError(t, err)

		got, err := storage.ListPlans(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "Basic", got[0].Name)
		assert.Equal(t, "Professional", got[1].Name)
		assert.Equal(t, "Premium", got[2].Name)
	})
}

func TestStorage_RegisterUser(t *testing.T) {
	t.Run("register and fetch user", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		ctx := context.Background()
		uid, err := storage.RegisterUser(ctx, models.User{
			Email:        "admin@example.com",
			Username:     "admin",
			PasswordHash: "hashedpassword",
			Role:         models.RoleAdmin,
		})
		require.NoError(t, err)
		require.NotEmpty(t, uid)

		got, err := storage.GetUserByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, uid, got.UID)
		assert.Equal(t, models.RoleAdmin, got.Role)

		byUID, err := storage.GetUser(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, "admin", byUID.Username)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		ctx := context.Background()
		_, err := storage.RegisterUser(ctx, models.User{
			Email: "one@example.com", Username: "taken", PasswordHash: "h", Role: models.RoleUser,
		})
		require.NoError(t, err)

		_, err = storage.RegisterUser(ctx, models.User{
			Email: "two@example.com", Username: "taken", PasswordHash: "h", Role: models.RoleUser,
		})
		require.Error(t, err)
	})
}
