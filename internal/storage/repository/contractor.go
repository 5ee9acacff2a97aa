package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/d-directory/d-directory/internal/models"
)

const contractorColumns = `id, name, category, description, location, address, phone,
			      email, website, image_url, rating, review_count, years_experience,
			      project_types, service_radius, free_estimate, licensed, created_at, updated_at`

func scanContractor(row interface{ Scan(...any) error }) (*models.Contractor, error) {
	var c models.Contractor
	var projectTypes []byte
	if err := row.Scan(&c.ID, &c.Name, &c.Category, &c.Description, &c.Location,
		&c.Address, &c.Phone, &c.Email, &c.Website, &c.ImageURL, &c.Rating,
		&c.ReviewCount, &c.YearsExperience, &projectTypes, &c.ServiceRadius,
		&c.FreeEstimate, &c.Licensed, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if len(projectTypes) > 0 {
		if err := json.Unmarshal(projectTypes, &c.ProjectTypes); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// CreateContractor вставляет новую карточку подрядчика и возвращает её ID.
func (s *Storage) CreateContractor(ctx context.Context, c models.Contractor) (int, error) {
	const op = "storage.CreateContractor"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	projectTypes, err := json.Marshal(c.ProjectTypes)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO contractors (name, category, description, location, address,
			      phone, email, website, image_url, rating, review_count,
			      years_experience, project_types, service_radius, free_estimate, licensed)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			  RETURNING id`
	var newID int
	err = s.DB.QueryRowContext(ctx, query,
		c.Name, c.Category, c.Description, c.Location, c.Address, c.Phone, c.Email,
		c.Website, c.ImageURL, c.Rating, c.ReviewCount, c.YearsExperience,
		projectTypes, c.ServiceRadius, c.FreeEstimate, c.Licensed).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetContractor возвращает карточку подрядчика по её ID.
func (s *Storage) GetContractor(ctx context.Context, id int) (*models.Contractor, error) {
	const op = "storage.GetContractor"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + contractorColumns + ` FROM contractors WHERE id = $1`
	result, err := scanContractor(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrContractorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListContractors возвращает карточки подрядчиков с учётом фильтров каталога.
func (s *Storage) ListContractors(ctx context.Context, filter models.ContractorFilter) ([]*models.Contractor, error) {
	const op = "storage.ListContractors"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var conditions []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" {
		conditions = append(conditions, "category = "+next(filter.Category))
	}
	if filter.Location != "" {
		conditions = append(conditions, "location ILIKE "+next("%"+filter.Location+"%"))
	}
	if filter.Radius > 0 {
		conditions = append(conditions, "service_radius >= "+next(filter.Radius))
	}
	if filter.Search != "" {
		p := next("%" + filter.Search + "%")
		conditions = append(conditions,
			fmt.Sprintf("(name ILIKE %s OR description ILIKE %s OR category ILIKE %s)", p, p, p))
	}

	query := `SELECT ` + contractorColumns + ` FROM contractors`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Contractor
	for rows.Next() {
		item, err := scanContractor(rows)
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

// UpdateContractor обновляет карточку подрядчика по её ID
// и возвращает количество изменённых строк.
func (s *Storage) UpdateContractor(ctx context.Context, c models.Contractor, id int) (int, error) {
	const op = "storage.UpdateContractor"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	projectTypes, err := json.Marshal(c.ProjectTypes)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE contractors
			  SET name = $1, category = $2, description = $3, location = $4, address = $5,
			      phone = $6, email = $7, website = $8, image_url = $9, rating = $10,
			      review_count = $11, years_experience = $12, project_types = $13,
			      service_radius = $14, free_estimate = $15, licensed = $16, updated_at = now()
			  WHERE id = $17`
	result, err := s.DB.ExecContext(ctx, query,
		c.Name, c.Category, c.Description, c.Location, c.Address, c.Phone, c.Email,
		c.Website, c.ImageURL, c.Rating, c.ReviewCount, c.YearsExperience,
		projectTypes, c.ServiceRadius, c.FreeEstimate, c.Licensed, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteContractor удаляет карточку подрядчика по её ID
// и возвращает количество удалённых строк.
func (s *Storage) DeleteContractor(ctx context.Context, id int) (int, error) {
	const op = "storage.DeleteContractor"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM contractors WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
