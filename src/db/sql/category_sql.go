package db

import (
	"context"
	"errors"
	"fmt"

	"budgetwise-server/src/models"

	"github.com/jackc/pgx/v5"
)

func (d *Directory) FindCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	err := d.pool.QueryRow(ctx,
		`SELECT id, name, type FROM categories WHERE id = $1`, id,
	).Scan(&category.ID, &category.Name, &category.Type)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query category %d: %w", id, err)
	}
	return &category, nil
}

func (d *Directory) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := d.pool.Query(ctx, `SELECT id, name, type FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Type); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
