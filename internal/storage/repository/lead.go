package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/d-directory/d-directory/internal/models"
)

const leadColumns = `id, contractor_id, customer_name, customer_email, customer_phone,
		     project_type, project_description, budget, timeline, status, created_at, updated_at`

func scanLead(row interface{ Scan(...any) error }) (*models.Lead, error) {
	var l models.Lead
	if err := row.Scan(&l.ID, &l.ContractorID, &l.CustomerName, &l.CustomerEmail,
		&l.CustomerPhone, &l.ProjectType, &l.ProjectDescription, &l.Budget,
		&l.Timeline, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// AdmitLead проводит заявку через шлюз квоты одной транзакцией:
// блокирует строку активной подписки, сверяет счётчик с квотой тарифа,
// вставляет лид и инкрементирует счётчик. Блокировка FOR UPDATE
// закрывает гонку между конкурентными заявками к одному подрядчику.
// Подрядчик без активной подписки не тарифицируется: заявка принимается
// без проверки квоты и без инкремента.
func (s *Storage) AdmitLead(ctx context.Context, lead models.Lead) (*models.Lead, error) {
	const op = "storage.AdmitLead"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	metered := true
	var subID, planID, leadsUsed int
	err = tx.QueryRowContext(ctx,
		`SELECT id, plan_id, leads_used
		 FROM contractor_subscriptions
		 WHERE contractor_id = $1 AND status = $2
		 FOR UPDATE`,
		lead.ContractorID, models.SubscriptionStatusActive).
		Scan(&subID, &planID, &leadsUsed)
	if errors.Is(err, sql.ErrNoRows) {
		metered = false
	} else if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if metered {
		var quota int
		err = tx.QueryRowContext(ctx,
			`SELECT monthly_lead_quota FROM plans WHERE id = $1`, planID).Scan(&quota)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrPlanNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if leadsUsed >= quota {
			return nil, fmt.Errorf("%s: %w", op, &models.QuotaExceededError{
				LeadsUsed:        leadsUsed,
				MonthlyLeadQuota: quota,
			})
		}
	}

	query := `INSERT INTO leads (contractor_id, customer_name, customer_email,
			      customer_phone, project_type, project_description, budget, timeline, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + leadColumns
	admitted, err := scanLead(tx.QueryRowContext(ctx, query,
		lead.ContractorID, lead.CustomerName, lead.CustomerEmail,
		lead.CustomerPhone, lead.ProjectType, lead.ProjectDescription,
		lead.Budget, lead.Timeline, models.LeadStatusNew))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if metered {
		_, err = tx.ExecContext(ctx,
			`UPDATE contractor_subscriptions
			 SET leads_used = leads_used + 1, updated_at = now()
			 WHERE id = $1`, subID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return admitted, nil
}

// ListLeads возвращает лиды, свежие первыми. Фильтр по подрядчику опционален.
func (s *Storage) ListLeads(ctx context.Context, filter models.LeadFilter) ([]*models.Lead, error) {
	const op = "storage.ListLeads"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	var args []any
	if filter.ContractorID != nil {
		query += ` WHERE contractor_id = $1`
		args = append(args, *filter.ContractorID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Lead
	for rows.Next() {
		item, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetLead возвращает лид по его ID.
func (s *Storage) GetLead(ctx context.Context, id int) (*models.Lead, error) {
	const op = "storage.GetLead"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	result, err := scanLead(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrLeadNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateLeadStatus переводит лид в новый статус воронки и возвращает
// обновлённый лид.
func (s *Storage) UpdateLeadStatus(ctx context.Context, id int, status string) (*models.Lead, error) {
	const op = "storage.UpdateLeadStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE leads SET status = $1, updated_at = now()
			  WHERE id = $2
			  RETURNING ` + leadColumns
	result, err := scanLead(s.DB.QueryRowContext(ctx, query, status, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrLeadNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
