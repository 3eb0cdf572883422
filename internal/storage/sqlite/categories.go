package sqlite

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/htn0810/Bill-Sharing/internal/models"
)

// ListCategories returns the category lookup set ordered by name.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	query, args, err := sq.Select("name").From("categories").OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build category query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

// CreateCategory adds a category. Existing names are left untouched.
func (s *SQLiteStore) CreateCategory(ctx context.Context, category models.Category) error {
	query, args, err := sq.Insert("categories").
		Options("OR IGNORE").
		Columns("name").
		Values(category.Name).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build category insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}
