package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/journalist-portfolio-api/internal/database"
	"github.com/journalist-portfolio-api/internal/models"
)

// tagRepo is the concrete implementation of TagRepository
type tagRepo struct {
	db *database.DB
}

// NewTagRepo creates a new tag repository
func NewTagRepo(db *database.DB) TagRepository {
	return &tagRepo{db: db}
}

func (r *tagRepo) Create(ctx context.Context, tag *models.Tag) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO tags (name, slug) VALUES ($1, $2) RETURNING id`, tag.Name, tag.Slug,
	).Scan(&id)
	if err != nil {
		return 0, translateError(err)
	}
	tag.ID = id
	return id, nil
}

func (r *tagRepo) List(ctx context.Context) ([]*models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, slug FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]*models.Tag, 0)
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, &t)
	}
	return tags, rows.Err()
}

// Delete removes a tag; its article_tags rows cascade
func (r *tagRepo) Delete(ctx context.Context, slug string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE slug = $1`, slug)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (r *tagRepo) IDsBySlugs(ctx context.Context, slugs []string) (map[string]int64, error) {
	return idsBySlugs(ctx, r.db, "tags", slugs)
}

func (r *tagRepo) UpsertBatch(ctx context.Context, tags []*models.Tag, key string) (int, error) {
	if err := checkKey(key, "slug", "name", "id"); err != nil {
		return 0, err
	}
	if len(tags) == 0 {
		return 0, nil
	}

	columns := []string{"name", "slug"}
	if key == "id" {
		columns = append([]string{"id"}, columns...)
	}
	query := upsertSQL("tags", columns, key)

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for i, t := range tags {
			args := []any{t.Name, t.Slug}
			if key == "id" {
				if t.ID <= 0 {
					return fmt.Errorf("record %d: id is required when upserting by id", i)
				}
				args = append([]any{t.ID}, args...)
			}
			if err := tx.QueryRowContext(ctx, query, args...).Scan(&t.ID); err != nil {
				return fmt.Errorf("record %d (%s): %w", i, t.Slug, translateError(err))
			}
		}
		if key == "id" {
			return syncSequence(ctx, tx, r.db.Dialect, "tags")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(tags), nil
}

func (r *tagRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "tags")
}
