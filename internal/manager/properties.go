package manager

import (
	"context"

	"github.com/todoit/todoit/internal/storage"
	"github.com/todoit/todoit/internal/types"
)

func (m *Manager) SetListProperty(ctx context.Context, listKey, key, value string) error {
	return m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		return g.SetListProperty(ctx, list.ID, key, value)
	})
}

func (m *Manager) GetListProperty(ctx context.Context, listKey, key string) (string, bool, error) {
	var value string
	var found bool
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		value, found, err = g.GetListProperty(ctx, list.ID, key)
		return err
	})
	return value, found, err
}

func (m *Manager) GetListProperties(ctx context.Context, listKey string) (map[string]string, error) {
	var result map[string]string
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		result, err = g.GetListProperties(ctx, list.ID)
		return err
	})
	return result, err
}

func (m *Manager) DeleteListProperty(ctx context.Context, listKey, key string) error {
	return m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		return g.DeleteListProperty(ctx, list.ID, key)
	})
}

func (m *Manager) SetItemProperty(ctx context.Context, listKey, itemKey, parentKey, key, value string) error {
	return m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		item, err := m.resolveItemForMutation(ctx, g, list.ID, itemKey, parentKey)
		if err != nil {
			return err
		}
		return g.SetItemProperty(ctx, item.ID, key, value)
	})
}

func (m *Manager) GetItemProperty(ctx context.Context, listKey, itemKey, parentKey, key string) (string, bool, error) {
	var value string
	var found bool
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		item, err := m.resolveItemForRead(ctx, g, list.ID, itemKey, parentKey)
		if err != nil {
			return err
		}
		value, found, err = g.GetItemProperty(ctx, item.ID, key)
		return err
	})
	return value, found, err
}

func (m *Manager) GetItemProperties(ctx context.Context, listKey, itemKey, parentKey string) (map[string]string, error) {
	var result map[string]string
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		item, err := m.resolveItemForRead(ctx, g, list.ID, itemKey, parentKey)
		if err != nil {
			return err
		}
		result, err = g.GetItemProperties(ctx, item.ID)
		return err
	})
	return result, err
}

func (m *Manager) DeleteItemProperty(ctx context.Context, listKey, itemKey, parentKey, key string) error {
	return m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		item, err := m.resolveItemForMutation(ctx, g, list.ID, itemKey, parentKey)
		if err != nil {
			return err
		}
		return g.DeleteItemProperty(ctx, item.ID, key)
	})
}

// GetAllItemsProperties flattens (item_key, property_key, property_value,
// status) across an entire list. See storage.Gateway.GetAllItemsProperties
// for the ordering and limit contract.
func (m *Manager) GetAllItemsProperties(ctx context.Context, listKey string, status *types.ItemStatus, limit *int) ([]types.ItemWithProperty, error) {
	var result []types.ItemWithProperty
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		result, err = g.GetAllItemsProperties(ctx, list.ID, status, limit)
		return err
	})
	return result, err
}
