// Package manager is the orchestrator: the public API that composes
// Database Gateway calls into transactional operations, enforces
// cross-entity invariants, and emits history rows. Everything here runs
// inside a single storage.Store.WithTx call per public method, so an
// invariant violation midway through a multi-step operation rolls back
// cleanly.
package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/todoit/todoit/internal/config"
	"github.com/todoit/todoit/internal/debug"
	"github.com/todoit/todoit/internal/storage"
	"github.com/todoit/todoit/internal/storage/sqlite"
	"github.com/todoit/todoit/internal/tagscope"
	"github.com/todoit/todoit/internal/types"
)

// Manager is the engine's single entry point. One instance owns one
// storage.Store and one tag-scope Filter, both fixed for the instance's
// lifetime.
type Manager struct {
	store storage.Store
	scope *tagscope.Filter
}

// Open resolves configuration from the environment (with dbPathOverride
// taking precedence when non-empty), opens the backing store, and returns
// a ready Manager.
func Open(ctx context.Context, dbPathOverride string) (*Manager, error) {
	cfg, err := config.Load(dbPathOverride)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return New(ctx, cfg)
}

// New builds a Manager from an already-resolved Config, useful for callers
// (tests, alternate entrypoints) that construct configuration themselves
// rather than reading the environment.
func New(ctx context.Context, cfg *config.Config) (*Manager, error) {
	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return &Manager{
		store: store,
		scope: tagscope.New(cfg.ForceTags),
	}, nil
}

// Close releases the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}

func now() time.Time {
	return time.Now().UTC()
}

// resolveList fetches a list by key and applies the tag-scope filter: a
// list outside the forced-tag set is reported as types.ErrNotFound, never
// as types.ErrAccessDenied, so callers outside the scope can't distinguish
// "doesn't exist" from "exists but hidden".
func (m *Manager) resolveList(ctx context.Context, g storage.Gateway, listKey string) (*types.List, error) {
	list, err := g.GetList(ctx, listKey)
	if err != nil {
		return nil, err
	}
	if err := m.checkListVisible(ctx, g, list.ID); err != nil {
		return nil, err
	}
	return list, nil
}

func (m *Manager) checkListVisible(ctx context.Context, g storage.Gateway, listID int64) error {
	if !m.scope.Active() {
		return nil
	}
	tags, err := g.GetTagNamesForList(ctx, listID)
	if err != nil {
		return err
	}
	if !m.scope.Visible(tags) {
		return fmt.Errorf("list is outside the forced-tag scope: %w", types.ErrNotFound)
	}
	return nil
}

// resolveRootItem looks up a root item (nil parent) by key within a
// scope-checked list.
func (m *Manager) resolveRootItem(ctx context.Context, g storage.Gateway, listID int64, key string) (*types.Item, error) {
	return g.GetItem(ctx, listID, nil, key)
}

// resolveItemForRead implements get_item's parent-key contract: a wrong or
// missing parent for a subitem key behaves as if the item does not exist,
// never as a distinct error.
func (m *Manager) resolveItemForRead(ctx context.Context, g storage.Gateway, listID int64, itemKey, parentKey string) (*types.Item, error) {
	if parentKey == "" {
		return g.GetItem(ctx, listID, nil, itemKey)
	}
	parent, err := m.resolveRootItem(ctx, g, listID, parentKey)
	if err != nil {
		return nil, err
	}
	return g.GetItem(ctx, listID, &parent.ID, itemKey)
}

// resolveItemForMutation implements the stricter contract mutating ops use:
// a key that exists, but not under the parent supplied, fails with
// types.ErrNotFoundUnderParent rather than a plain not-found.
func (m *Manager) resolveItemForMutation(ctx context.Context, g storage.Gateway, listID int64, itemKey, parentKey string) (*types.Item, error) {
	if parentKey == "" {
		return g.GetItem(ctx, listID, nil, itemKey)
	}
	parent, err := m.resolveRootItem(ctx, g, listID, parentKey)
	if err != nil {
		return nil, err
	}
	item, err := g.GetItem(ctx, listID, &parent.ID, itemKey)
	if err == nil {
		return item, nil
	}
	if !types.Is(err, types.ErrNotFound) {
		return nil, err
	}
	if exists, existsErr := m.keyExistsAnywhere(ctx, g, listID, itemKey); existsErr == nil && exists {
		return nil, fmt.Errorf("item %q is not under parent %q: %w", itemKey, parentKey, types.ErrNotFoundUnderParent)
	}
	return nil, err
}

// keyExistsAnywhere reports whether itemKey names any item in the list,
// root or subitem, regardless of parent, used only to decide between
// ErrNotFound and ErrNotFoundUnderParent when a mutating op's supplied
// parent doesn't match.
func (m *Manager) keyExistsAnywhere(ctx context.Context, g storage.Gateway, listID int64, itemKey string) (bool, error) {
	items, err := g.GetAllItems(ctx, listID)
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.ItemKey == itemKey {
			return true, nil
		}
	}
	return false, nil
}

func debugOp(op string, args ...interface{}) {
	debug.Logf("%s %v", op, args)
}
