package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/journalist-portfolio-api/internal/database"
	"github.com/journalist-portfolio-api/internal/models"
)

type settingsRepo struct {
	db *database.DB
}

// NewSettingsRepo creates a new settings repository
func NewSettingsRepo(db *database.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

// All returns every setting flattened into one map
func (r *settingsRepo) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

// UpsertAll writes every pair in order inside one transaction. If any
// write fails none of the pairs are applied.
func (r *settingsRepo) UpsertAll(ctx context.Context, settings []models.Setting) error {
	query := `INSERT INTO settings (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = excluded.value`

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, s := range settings {
			if _, err := tx.ExecContext(ctx, query, s.Key, s.Value); err != nil {
				return fmt.Errorf("setting %q: %w", s.Key, err)
			}
		}
		return nil
	})
}
