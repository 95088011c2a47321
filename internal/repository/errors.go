package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrConflict is returned when a write violates a unique or primary key constraint
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidKey is returned when a bulk upsert names a conflict key the
	// resource does not allow
	ErrInvalidKey = errors.New("invalid conflict key")

	// ErrUnknownReference is returned when a bulk record links to a row
	// that does not exist
	ErrUnknownReference = errors.New("unknown reference")
)

// pgUniqueViolation is the SQLSTATE for unique_violation
const pgUniqueViolation = "23505"

// translateError maps driver-specific constraint errors onto ErrConflict
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("%w: %s", ErrConflict, liteErr.Error())
		}
		return err
	}

	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", ErrConflict, pgErr.Message)
	}

	return err
}

// IsConflict reports whether err is (or wraps) a uniqueness violation
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
