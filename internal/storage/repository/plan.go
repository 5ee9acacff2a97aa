package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/d-directory/d-directory/internal/models"
)

// ListPlans возвращает все активные тарифные планы,
// отсортированные по возрастанию цены.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, monthly_lead_quota, features, active
			  FROM plans
			  WHERE active = true
			  ORDER BY price ASC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Plan
	for rows.Next() {
		var p models.Plan
		var features []byte
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.MonthlyLeadQuota, &features, &p.Active); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if len(features) > 0 {
			if err := json.Unmarshal(features, &p.Features); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetPlan возвращает тарифный план по его ID.
func (s *Storage) GetPlan(ctx context.Context, id int) (*models.Plan, error) {
	const op = "storage.GetPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, monthly_lead_quota, features, active
			  FROM plans
			  WHERE id = $1`
	var p models.Plan
	var features []byte
	err := s.DB.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.MonthlyLeadQuota, &features, &p.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &p.Features); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return &p, nil
}
