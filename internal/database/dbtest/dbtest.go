// Package dbtest opens throwaway in-memory stores for tests.
package dbtest

import (
	"strings"
	"testing"

	"github.com/journalist-portfolio-api/internal/config"
	"github.com/journalist-portfolio-api/internal/database"
	"github.com/rs/zerolog"
)

var nameReplacer = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// Open returns a migrated in-memory SQLite store private to the calling test.
// The store is closed when the test finishes.
func Open(t testing.TB) *database.DB {
	t.Helper()

	db := OpenRaw(t)
	if err := db.RunMigrations(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

// OpenRaw is Open without the migrations.
func OpenRaw(t testing.TB) *database.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   "file:" + nameReplacer.Replace(t.Name()) + "?mode=memory&cache=shared",
	}
	db, err := database.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
