package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/todoit/todoit/internal/storage"
	"github.com/todoit/todoit/internal/types"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewCreatesSchemaAndIsReusable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := New(ctx, dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	store.Close()

	// Reopening an already-initialized database file must not fail: the
	// schema application and migrations are idempotent.
	store2, err := New(ctx, dbPath)
	if err != nil {
		t.Fatalf("reopening New() error = %v", err)
	}
	store2.Close()
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	list := &types.List{ListKey: "committed", Title: "Committed", Status: types.ListStatusActive}
	err := store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		return g.CreateList(ctx, list)
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}

	err = store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		_, err := g.GetList(ctx, "committed")
		return err
	})
	if err != nil {
		t.Fatalf("GetList() after commit error = %v", err)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	sentinel := types.ErrInvalidArgument
	err := store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list := &types.List{ListKey: "rolledback", Title: "Rolled Back", Status: types.ListStatusActive}
		if err := g.CreateList(ctx, list); err != nil {
			return err
		}
		return sentinel
	})
	if err != sentinel {
		t.Fatalf("WithTx() error = %v, want %v", err, sentinel)
	}

	err = store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		_, err := g.GetList(ctx, "rolledback")
		return err
	})
	if !types.Is(err, types.ErrNotFound) {
		t.Fatalf("GetList() after rollback error = %v, want ErrNotFound", err)
	}
}
