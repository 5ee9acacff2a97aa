package repository

import (
	"context"
	"fmt"

	"github.com/d-directory/d-directory/internal/models"
)

// ListProjectTypes возвращает все категории работ каталога.
func (s *Storage) ListProjectTypes(ctx context.Context) ([]*models.ProjectType, error) {
	const op = "storage.ListProjectTypes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, slug, image_url FROM project_types ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.ProjectType
	for rows.Next() {
		var pt models.ProjectType
		if err := rows.Scan(&pt.ID, &pt.Name, &pt.Slug, &pt.ImageURL); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &pt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
