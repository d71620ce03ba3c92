// Package sqlite is the concrete database gateway backend: a single local
// database file accessed through database/sql, with a pure-Go sqlite
// driver so the engine never needs cgo.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver" // registers the "sqlite3" driver
	_ "github.com/ncruces/go-sqlite3/embed"  // bundles the sqlite3 WASM module

	"github.com/gofrs/flock"
	"github.com/todoit/todoit/internal/debug"
	"github.com/todoit/todoit/internal/storage"
)

// lockRetryInterval is the delay between New's attempts to acquire the
// open-time file lock; New keeps retrying until ctx is done.
const lockRetryInterval = 5 * time.Second

// Store is the sqlite-backed storage.Store implementation.
type Store struct {
	db       *sql.DB
	lockPath string
}

var _ storage.Store = (*Store)(nil)

// New opens (creating if necessary) the database file at path, applies the
// schema and runs pending migrations, and returns a ready-to-use Store.
//
// Opening takes a file lock at path+".lock" for the duration of schema
// creation and migration: sqlite alone serializes writers once a
// transaction is open, but the check-then-create-table and
// check-then-alter steps in migrations are not themselves transactional
// across processes without it.
func New(ctx context.Context, path string) (*Store, error) {
	fl := flock.New(path + ".lock")
	locked, err := fl.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire database lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to acquire database lock for %s", path)
	}
	defer fl.Unlock() //nolint:errcheck

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // single-writer embedded store

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	debug.Logf("opened database at %s", path)
	return &Store{db: db, lockPath: path + ".lock"}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// WithTx runs fn inside a single write transaction using BEGIN IMMEDIATE so
// the write lock is acquired up front rather than on first write, avoiding
// the deadlock that can occur when two transactions each start as readers
// and later try to upgrade.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, g storage.Gateway) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_, _ = conn.ExecContext(ctx, "ROLLBACK")
		}
	}()

	g := &gateway{conn: conn}
	if err := fn(ctx, g); err != nil {
		return err
	}

	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}
