package repository

import (
	"context"

	"github.com/journalist-portfolio-api/internal/database"
	"github.com/journalist-portfolio-api/internal/models"
)

type mediaRepo struct {
	db *database.DB
}

// NewMediaRepo creates a new media repository
func NewMediaRepo(db *database.DB) MediaRepository {
	return &mediaRepo{db: db}
}

func (r *mediaRepo) Create(ctx context.Context, media *models.Media) (int64, error) {
	query := `
		INSERT INTO media (filename, url, type, alt_text, caption)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		media.Filename, media.URL, media.Type, media.AltText, media.Caption,
	).Scan(&id)
	if err != nil {
		return 0, translateError(err)
	}
	media.ID = id
	return id, nil
}

// List returns the media library, most recently uploaded first
func (r *mediaRepo) List(ctx context.Context) ([]*models.Media, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, filename, url, type, alt_text, caption, uploaded_at
		FROM media ORDER BY uploaded_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.Media, 0)
	for rows.Next() {
		var m models.Media
		if err := rows.Scan(&m.ID, &m.Filename, &m.URL, &m.Type, &m.AltText, &m.Caption, timeValue{&m.UploadedAt}); err != nil {
			return nil, err
		}
		items = append(items, &m)
	}
	return items, rows.Err()
}

func (r *mediaRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}
