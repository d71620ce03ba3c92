package manager

import (
	"context"

	"github.com/todoit/todoit/internal/storage"
	"github.com/todoit/todoit/internal/types"
)

// GetItemHistory streams itemKey's history rows in descending timestamp.
func (m *Manager) GetItemHistory(ctx context.Context, listKey, itemKey, parentKey string) ([]*types.HistoryEntry, error) {
	var result []*types.HistoryEntry
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		item, err := m.resolveItemForRead(ctx, g, list.ID, itemKey, parentKey)
		if err != nil {
			return err
		}
		result, err = g.GetItemHistory(ctx, item.ID)
		return err
	})
	return result, err
}

// GetListHistory streams listKey's history rows in descending timestamp.
func (m *Manager) GetListHistory(ctx context.Context, listKey string) ([]*types.HistoryEntry, error) {
	var result []*types.HistoryEntry
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		result, err = g.GetListHistory(ctx, list.ID)
		return err
	})
	return result, err
}
