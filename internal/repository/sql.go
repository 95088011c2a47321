package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/journalist-portfolio-api/internal/database"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// timeValue scans timestamp columns that the driver returns either parsed
// or as text
type timeValue struct {
	t *time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (v timeValue) Scan(src any) error {
	switch s := src.(type) {
	case nil:
		*v.t = time.Time{}
		return nil
	case time.Time:
		*v.t = s
		return nil
	case []byte:
		return v.parse(string(s))
	case string:
		return v.parse(s)
	}
	return fmt.Errorf("cannot scan %T into time", src)
}

func (v timeValue) parse(s string) error {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*v.t = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

// upsertSQL builds INSERT ... ON CONFLICT (key) DO UPDATE for the given
// columns. Placeholders are numbered in column order.
func upsertSQL(table string, columns []string, key string) string {
	placeholders := make([]string, len(columns))
	var updates []string
	for i, col := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if col != key {
			updates = append(updates, fmt.Sprintf("%s = excluded.%s", col, col))
		}
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s RETURNING id",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		key,
		strings.Join(updates, ", "),
	)
}

// checkKey returns ErrInvalidKey unless key is one of allowed
func checkKey(key string, allowed ...string) error {
	for _, k := range allowed {
		if key == k {
			return nil
		}
	}
	return fmt.Errorf("%w %q (allowed: %s)", ErrInvalidKey, key, strings.Join(allowed, ", "))
}

// syncSequence moves a postgres serial sequence past explicitly written ids.
// SQLite AUTOINCREMENT already tracks the max rowid.
func syncSequence(ctx context.Context, q querier, dialect database.Dialect, table string) error {
	if dialect != database.Postgres {
		return nil
	}
	query := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)",
		table, table,
	)
	_, err := q.ExecContext(ctx, query)
	return err
}

func count(ctx context.Context, q querier, table string) (int, error) {
	var n int
	err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	return n, err
}

// idsBySlugs resolves slugs one at a time so no result set stays open
func idsBySlugs(ctx context.Context, q querier, table string, slugs []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(slugs))
	query := "SELECT id FROM " + table + " WHERE slug = $1"
	for _, slug := range slugs {
		var id int64
		err := q.QueryRowContext(ctx, query, slug).Scan(&id)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, err
		}
		ids[slug] = id
	}
	return ids, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt64(n *int64) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *n, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	n := ni.Int64
	return &n
}
