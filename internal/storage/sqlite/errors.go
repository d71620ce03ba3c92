package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/todoit/todoit/internal/types"
)

// wrapDBError wraps a database error with operation context, converting
// sql.ErrNoRows and UNIQUE-constraint violations into the typed errors the
// Manager and callers match on with errors.Is.
func wrapDBError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, types.ErrNotFound)
	}
	if isUniqueConstraintError(err) {
		return fmt.Errorf("%s: %w", op, types.ErrAlreadyExists)
	}
	return fmt.Errorf("%s: %w: %v", op, types.ErrStorage, err)
}

// errNoRows lets row-affected helpers reuse wrapDBError's sql.ErrNoRows
// handling for "update touched nothing" the same way query misses do.
var errNoRows = sql.ErrNoRows

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "constraint failed: UNIQUE")
}
