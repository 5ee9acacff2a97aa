package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/d-directory/d-directory/internal/models"
)

// GetActiveSubscription возвращает активную подписку подрядчика.
func (s *Storage) GetActiveSubscription(ctx context.Context, contractorID int) (*models.Subscription, error) {
	const op = "storage.GetActiveSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, contractor_id, plan_id, leads_used, billing_cycle_start,
			      billing_cycle_end, status, created_at, updated_at
			  FROM contractor_subscriptions
			  WHERE contractor_id = $1 AND status = $2`
	var sub models.Subscription
	err := s.DB.QueryRowContext(ctx, query, contractorID, models.SubscriptionStatusActive).
		Scan(&sub.ID, &sub.ContractorID, &sub.PlanID, &sub.LeadsUsed,
			&sub.BillingCycleStart, &sub.BillingCycleEnd, &sub.Status,
			&sub.CreatedAt, &sub.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrSubscriptionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}

// GetSubscriptionWithPlan возвращает активную подписку подрядчика
// вместе с её тарифным планом одним запросом. Активная подписка
// без строки плана — нарушение инварианта каталога, ErrPlanNotFound.
func (s *Storage) GetSubscriptionWithPlan(ctx context.Context, contractorID int) (*models.SubscriptionWithPlan, error) {
	const op = "storage.GetSubscriptionWithPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT cs.id, cs.contractor_id, cs.plan_id, cs.leads_used,
			      cs.billing_cycle_start, cs.billing_cycle_end, cs.status,
			      cs.created_at, cs.updated_at,
			      p.id, p.name, p.price, p.monthly_lead_quota, p.features, p.active
			  FROM contractor_subscriptions cs
			  LEFT JOIN plans p ON p.id = cs.plan_id
			  WHERE cs.contractor_id = $1 AND cs.status = $2`
	var result models.SubscriptionWithPlan
	var features []byte
	var planID sql.NullInt64
	var planName sql.NullString
	var planPrice sql.NullFloat64
	var planQuota sql.NullInt64
	var planActive sql.NullBool
	err := s.DB.QueryRowContext(ctx, query, contractorID, models.SubscriptionStatusActive).
		Scan(&result.Subscription.ID, &result.Subscription.ContractorID,
			&result.Subscription.PlanID, &result.Subscription.LeadsUsed,
			&result.Subscription.BillingCycleStart, &result.Subscription.BillingCycleEnd,
			&result.Subscription.Status, &result.Subscription.CreatedAt,
			&result.Subscription.UpdatedAt,
			&planID, &planName, &planPrice, &planQuota, &features, &planActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrSubscriptionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !planID.Valid {
		return nil, fmt.Errorf("%s: %w", op, models.ErrPlanNotFound)
	}
	result.Plan.ID = int(planID.Int64)
	result.Plan.Name = planName.String
	result.Plan.Price = planPrice.Float64
	result.Plan.MonthlyLeadQuota = int(planQuota.Int64)
	result.Plan.Active = planActive.Bool
	if len(features) > 0 {
		if err := json.Unmarshal(features, &result.Plan.Features); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return &result, nil
}

// ReplaceSubscription деактивирует текущую активную подписку подрядчика
// и создаёт новую с нулевым счётчиком лидов. Обе операции выполняются
// в одной транзакции, чтобы у подрядчика не осталось двух активных подписок.
func (s *Storage) ReplaceSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.ReplaceSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE contractor_subscriptions
		 SET status = $1, updated_at = now()
		 WHERE contractor_id = $2 AND status = $3`,
		models.SubscriptionStatusInactive, sub.ContractorID, models.SubscriptionStatusActive)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var newID int
	err = tx.QueryRowContext(ctx,
		`INSERT INTO contractor_subscriptions
		     (contractor_id, plan_id, leads_used, billing_cycle_start, billing_cycle_end, status)
		 VALUES ($1, $2, 0, $3, $4, $5)
		 RETURNING id`,
		sub.ContractorID, sub.PlanID, sub.BillingCycleStart, sub.BillingCycleEnd,
		models.SubscriptionStatusActive).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// IncrementLeadUsage увеличивает счётчик использованных лидов
// активной подписки подрядчика на единицу. Отсутствие активной подписки
// не является ошибкой: нетарифицируемые подрядчики не учитываются.
func (s *Storage) IncrementLeadUsage(ctx context.Context, contractorID int) error {
	const op = "storage.IncrementLeadUsage"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE contractor_subscriptions
		 SET leads_used = leads_used + 1, updated_at = now()
		 WHERE contractor_id = $1 AND status = $2`,
		contractorID, models.SubscriptionStatusActive)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
