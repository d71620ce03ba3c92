package manager

import (
	"context"

	"github.com/todoit/todoit/internal/storage"
	"github.com/todoit/todoit/internal/traversal"
	"github.com/todoit/todoit/internal/types"
)

// GetNextPending returns the first pending, unblocked item in listKey in
// position order, or nil if none is actionable.
func (m *Manager) GetNextPending(ctx context.Context, listKey string) (*types.Item, error) {
	var result *types.Item
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		result, err = traversal.NextPending(ctx, g, list.ID)
		return err
	})
	return result, err
}

// GetNextPendingSmart is the hierarchy-aware walk: it prioritizes any
// subtree with an in_progress leaf, otherwise returns the first pending,
// unblocked leaf discovered in a DFS over root items ordered by position.
func (m *Manager) GetNextPendingSmart(ctx context.Context, listKey string) (*types.Item, error) {
	var result *types.Item
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		result, err = traversal.NextPendingHierarchical(ctx, g, list.ID)
		return err
	})
	return result, err
}

// GetNextPendingWithSubtasks is an alias for GetNextPendingSmart: the
// specification describes both names for the same hierarchy-aware
// algorithm.
func (m *Manager) GetNextPendingWithSubtasks(ctx context.Context, listKey string) (*types.Item, error) {
	return m.GetNextPendingSmart(ctx, listKey)
}
