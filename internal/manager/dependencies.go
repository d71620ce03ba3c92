package manager

import (
	"context"
	"fmt"

	"github.com/todoit/todoit/internal/storage"
	"github.com/todoit/todoit/internal/traversal"
	"github.com/todoit/todoit/internal/types"
)

// AddItemDependency records that depKey (in depListKey) requires reqKey (in
// reqListKey) to complete before it can start. Both endpoints must already
// exist, and the edge must not close a cycle in the dependency graph.
func (m *Manager) AddItemDependency(ctx context.Context, depListKey, depKey, reqListKey, reqKey string) error {
	return m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		depList, err := m.resolveList(ctx, g, depListKey)
		if err != nil {
			return err
		}
		reqList, err := m.resolveList(ctx, g, reqListKey)
		if err != nil {
			return err
		}
		depItem, err := m.resolveRootItem(ctx, g, depList.ID, depKey)
		if err != nil {
			return err
		}
		reqItem, err := m.resolveRootItem(ctx, g, reqList.ID, reqKey)
		if err != nil {
			return err
		}

		cycle, err := traversal.WouldCycle(ctx, g, depItem.ID, reqItem.ID)
		if err != nil {
			return err
		}
		if cycle {
			return fmt.Errorf("dependency %s:%s -> %s:%s would create a cycle: %w", depListKey, depKey, reqListKey, reqKey, types.ErrWouldCycle)
		}

		dep := &types.Dependency{DependentItemID: depItem.ID, RequiredItemID: reqItem.ID}
		if err := g.AddDependency(ctx, dep); err != nil {
			return err
		}
		return g.AppendHistory(ctx, &types.HistoryEntry{
			EntityType: types.EntityItem,
			EntityID:   depItem.ID,
			Action:     types.ActionDependencyAdded,
			NewValue:   fmt.Sprintf("%s:%s", reqListKey, reqKey),
		})
	})
}

// RemoveItemDependency removes a previously-added edge.
func (m *Manager) RemoveItemDependency(ctx context.Context, depListKey, depKey, reqListKey, reqKey string) error {
	return m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		depList, err := m.resolveList(ctx, g, depListKey)
		if err != nil {
			return err
		}
		reqList, err := m.resolveList(ctx, g, reqListKey)
		if err != nil {
			return err
		}
		depItem, err := m.resolveRootItem(ctx, g, depList.ID, depKey)
		if err != nil {
			return err
		}
		reqItem, err := m.resolveRootItem(ctx, g, reqList.ID, reqKey)
		if err != nil {
			return err
		}
		if err := g.RemoveDependency(ctx, depItem.ID, reqItem.ID); err != nil {
			return err
		}
		return g.AppendHistory(ctx, &types.HistoryEntry{
			EntityType: types.EntityItem,
			EntityID:   depItem.ID,
			Action:     types.ActionDependencyRemoved,
			OldValue:   fmt.Sprintf("%s:%s", reqListKey, reqKey),
		})
	})
}

// GetItemBlockers returns itemKey's direct blockers whose status is not
// completed.
func (m *Manager) GetItemBlockers(ctx context.Context, listKey, itemKey string) ([]*types.Item, error) {
	var result []*types.Item
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		item, err := m.resolveRootItem(ctx, g, list.ID, itemKey)
		if err != nil {
			return err
		}
		blockers, err := g.GetBlockers(ctx, item.ID)
		if err != nil {
			return err
		}
		for _, b := range blockers {
			if b.Status != types.StatusCompleted {
				result = append(result, b)
			}
		}
		return nil
	})
	return result, err
}

// GetItemsBlockedBy returns the items that directly depend on itemKey.
func (m *Manager) GetItemsBlockedBy(ctx context.Context, listKey, itemKey string) ([]*types.Item, error) {
	var result []*types.Item
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		item, err := m.resolveRootItem(ctx, g, list.ID, itemKey)
		if err != nil {
			return err
		}
		result, err = g.GetBlockedBy(ctx, item.ID)
		return err
	})
	return result, err
}

// IsItemBlocked reports whether itemKey has any incomplete direct blocker.
func (m *Manager) IsItemBlocked(ctx context.Context, listKey, itemKey string) (bool, error) {
	var blocked bool
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		item, err := m.resolveRootItem(ctx, g, list.ID, itemKey)
		if err != nil {
			return err
		}
		blocked, err = traversal.IsBlocked(ctx, g, item.ID)
		return err
	})
	return blocked, err
}

// CanStartItem reports whether itemKey is pending and not blocked.
func (m *Manager) CanStartItem(ctx context.Context, listKey, itemKey string) (bool, error) {
	var result bool
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		item, err := m.resolveRootItem(ctx, g, list.ID, itemKey)
		if err != nil {
			return err
		}
		if item.Status != types.StatusPending {
			return nil
		}
		blocked, err := traversal.IsBlocked(ctx, g, item.ID)
		if err != nil {
			return err
		}
		result = !blocked
		return nil
	})
	return result, err
}

// CanCompleteItem reports whether itemKey has no pending/in-progress
// children and is not blocked.
func (m *Manager) CanCompleteItem(ctx context.Context, listKey, itemKey string) (bool, error) {
	var result bool
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		item, err := m.resolveRootItem(ctx, g, list.ID, itemKey)
		if err != nil {
			return err
		}
		children, err := g.GetChildren(ctx, list.ID, &item.ID)
		if err != nil {
			return err
		}
		for _, c := range children {
			if c.Status == types.StatusPending || c.Status == types.StatusInProgress {
				return nil
			}
		}
		blocked, err := traversal.IsBlocked(ctx, g, item.ID)
		if err != nil {
			return err
		}
		result = !blocked
		return nil
	})
	return result, err
}
