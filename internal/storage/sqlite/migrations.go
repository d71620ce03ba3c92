package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/todoit/todoit/internal/storage/sqlite/migrations"
)

// migration pairs a stable name (for logging) with the function that
// applies it. Every function must be idempotent: runMigrations runs the
// full list against any database regardless of when it was created.
type migration struct {
	Name string
	Func func(*sql.DB) error
}

var migrationsList = []migration{
	{"sibling_scoped_item_keys", migrations.MigrateSiblingScopedItemKeys},
}

// runMigrations executes all registered migrations in order under a single
// EXCLUSIVE transaction, so two processes opening the same database file at
// once can't race on check-then-alter steps. Foreign keys are disabled for
// the duration since migration 001 recreates todo_items and would otherwise
// cascade-delete every item via its own FK while copying rows.
func runMigrations(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("failed to disable foreign keys for migrations: %w", err)
	}
	defer func() { _, _ = db.Exec("PRAGMA foreign_keys = ON") }()

	if _, err := db.Exec("BEGIN EXCLUSIVE"); err != nil {
		return fmt.Errorf("failed to acquire exclusive lock for migrations: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_, _ = db.Exec("ROLLBACK")
		}
	}()

	for _, m := range migrationsList {
		if err := m.Func(db); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.Name, err)
		}
	}

	if _, err := db.Exec("COMMIT"); err != nil {
		return fmt.Errorf("failed to commit migrations: %w", err)
	}
	committed = true
	return nil
}
