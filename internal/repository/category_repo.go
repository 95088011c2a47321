package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/journalist-portfolio-api/internal/database"
	"github.com/journalist-portfolio-api/internal/models"
)

// categoryRepo is the concrete implementation of CategoryRepository
type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

// Create inserts a category; duplicate name or slug fails with ErrConflict
func (r *categoryRepo) Create(ctx context.Context, category *models.Category) (int64, error) {
	query := `INSERT INTO categories (name, slug, description, color) VALUES ($1, $2, $3, $4) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		category.Name, category.Slug, category.Description, category.Color,
	).Scan(&id)
	if err != nil {
		return 0, translateError(err)
	}
	category.ID = id
	return id, nil
}

// List returns all categories in insertion order
func (r *categoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	categories := make([]*models.Category, 0)
	err := r.StreamAll(ctx, func(c *models.Category) error {
		categories = append(categories, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetBySlug retrieves a category by slug
func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `SELECT id, name, slug, description, color FROM categories WHERE slug = $1`

	var c models.Category
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a category; linked articles stay, their join rows cascade
func (r *categoryRepo) Delete(ctx context.Context, slug string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE slug = $1`, slug)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// IDsBySlugs resolves slugs to ids; unknown slugs are absent from the result
func (r *categoryRepo) IDsBySlugs(ctx context.Context, slugs []string) (map[string]int64, error) {
	return idsBySlugs(ctx, r.db, "categories", slugs)
}

// UpsertBatch inserts or updates categories by slug, name or id in one transaction
func (r *categoryRepo) UpsertBatch(ctx context.Context, categories []*models.Category, key string) (int, error) {
	if err := checkKey(key, "slug", "name", "id"); err != nil {
		return 0, err
	}
	if len(categories) == 0 {
		return 0, nil
	}

	columns := []string{"name", "slug", "description", "color"}
	if key == "id" {
		columns = append([]string{"id"}, columns...)
	}
	query := upsertSQL("categories", columns, key)

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for i, c := range categories {
			args := []any{c.Name, c.Slug, c.Description, c.Color}
			if key == "id" {
				if c.ID <= 0 {
					return fmt.Errorf("record %d: id is required when upserting by id", i)
				}
				args = append([]any{c.ID}, args...)
			}

			if err := tx.QueryRowContext(ctx, query, args...).Scan(&c.ID); err != nil {
				return fmt.Errorf("record %d (%s): %w", i, c.Slug, translateError(err))
			}
		}
		if key == "id" {
			return syncSequence(ctx, tx, r.db.Dialect, "categories")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(categories), nil
}

// Count returns the total number of categories
func (r *categoryRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "categories")
}

// StreamAll streams all categories ordered by id
func (r *categoryRepo) StreamAll(ctx context.Context, callback func(*models.Category) error) error {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, slug, description, color FROM categories ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color); err != nil {
			return err
		}
		if err := callback(&c); err != nil {
			return err
		}
	}

	return rows.Err()
}
