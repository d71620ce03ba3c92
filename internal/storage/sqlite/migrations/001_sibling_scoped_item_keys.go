// Package migrations holds the engine's numbered schema migrations, one
// function per file, each idempotent so runMigrations can run the full list
// against any database regardless of which version it was created at.
package migrations

import (
	"database/sql"
	"fmt"
)

// MigrateSiblingScopedItemKeys replaces the legacy UNIQUE(list_id, item_key)
// index with UNIQUE(list_id, parent_item_id, item_key). Early data was
// stored with list-wide unique keys; rebuilding the index is one-way and
// may collide if two sibling groups already hold a row whose item_key was
// previously unique list-wide. Such a collision aborts the migration rather
// than silently dropping a row.
func MigrateSiblingScopedItemKeys(db *sql.DB) error {
	hasLegacyIndex, err := indexExists(db, "todo_items", "list_id", "item_key")
	if err != nil {
		return fmt.Errorf("failed to inspect todo_items indexes: %w", err)
	}
	if !hasLegacyIndex {
		return nil
	}

	if _, err := db.Exec(`
		CREATE TABLE todo_items_new (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			list_id INTEGER NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
			parent_item_id INTEGER REFERENCES todo_items(id) ON DELETE CASCADE,
			item_key TEXT NOT NULL,
			content TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			position INTEGER NOT NULL,
			started_at DATETIME,
			completed_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(list_id, parent_item_id, item_key)
		)
	`); err != nil {
		return fmt.Errorf("failed to create todo_items_new: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO todo_items_new
		SELECT id, list_id, parent_item_id, item_key, content, status, position,
		       started_at, completed_at, created_at, updated_at
		FROM todo_items
	`); err != nil {
		return fmt.Errorf("failed to copy todo_items rows (likely a sibling-key collision left over from list-wide uniqueness): %w", err)
	}

	if _, err := db.Exec(`DROP TABLE todo_items`); err != nil {
		return fmt.Errorf("failed to drop legacy todo_items: %w", err)
	}
	if _, err := db.Exec(`ALTER TABLE todo_items_new RENAME TO todo_items`); err != nil {
		return fmt.Errorf("failed to rename todo_items_new: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_items_list_status_position ON todo_items(list_id, status, position)`); err != nil {
		return fmt.Errorf("failed to recreate status/position index: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_items_parent ON todo_items(list_id, parent_item_id)`); err != nil {
		return fmt.Errorf("failed to recreate parent index: %w", err)
	}
	return nil
}

// indexExists reports whether any index on table covers exactly columns (in
// order), by inspecting sqlite's automatic index metadata.
func indexExists(db *sql.DB, table string, columns ...string) (bool, error) {
	rows, err := db.Query(`SELECT name FROM pragma_index_list(?)`, table)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return false, err
	}

	for _, name := range names {
		cols, err := indexColumns(db, name)
		if err != nil {
			return false, err
		}
		if equalColumns(cols, columns) {
			return true, nil
		}
	}
	return false, nil
}

func indexColumns(db *sql.DB, indexName string) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM pragma_index_info(?) ORDER BY seqno`, indexName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

func equalColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
