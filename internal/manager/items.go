package manager

import (
	"context"
	"fmt"

	"github.com/todoit/todoit/internal/storage"
	"github.com/todoit/todoit/internal/traversal"
	"github.com/todoit/todoit/internal/types"
	"github.com/todoit/todoit/internal/validation"
)

// AddItem creates a root item in list. When position is nil or 0, the item
// is appended after the current last sibling.
func (m *Manager) AddItem(ctx context.Context, listKey, itemKey, content string, position *int, metadata map[string]string) (*types.Item, error) {
	if err := validation.Key("item_key", itemKey); err != nil {
		return nil, err
	}
	if err := validation.Content(content); err != nil {
		return nil, err
	}
	var result *types.Item
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		item, err := m.createItem(ctx, g, list.ID, nil, itemKey, content, position, metadata)
		if err != nil {
			return err
		}
		result = item
		return nil
	})
	return result, err
}

// AddSubitem creates a child of parentKey (a root item) in list.
func (m *Manager) AddSubitem(ctx context.Context, listKey, parentKey, itemKey, content string, position *int, metadata map[string]string) (*types.Item, error) {
	if err := validation.Key("item_key", itemKey); err != nil {
		return nil, err
	}
	if err := validation.Content(content); err != nil {
		return nil, err
	}
	var result *types.Item
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		parent, err := m.resolveRootItem(ctx, g, list.ID, parentKey)
		if err != nil {
			return err
		}
		item, err := m.createItem(ctx, g, list.ID, &parent.ID, itemKey, content, position, metadata)
		if err != nil {
			return err
		}
		if err := g.AppendHistory(ctx, &types.HistoryEntry{
			EntityType: types.EntityItem,
			EntityID:   item.ID,
			Action:     types.ActionSubitemCreated,
			NewValue:   item.ItemKey,
		}); err != nil {
			return err
		}
		if err := m.recomputeAncestors(ctx, g, item.ID); err != nil {
			return err
		}
		result = item
		return nil
	})
	return result, err
}

func (m *Manager) createItem(ctx context.Context, g storage.Gateway, listID int64, parentID *int64, itemKey, content string, position *int, metadata map[string]string) (*types.Item, error) {
	pos, err := m.resolvePosition(ctx, g, listID, parentID, position)
	if err != nil {
		return nil, err
	}
	item := &types.Item{
		ListID:       listID,
		ParentItemID: parentID,
		ItemKey:      itemKey,
		Content:      content,
		Status:       types.StatusPending,
		Position:     pos,
	}
	if err := g.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	for key, value := range metadata {
		if err := g.SetItemProperty(ctx, item.ID, key, value); err != nil {
			return nil, err
		}
	}
	if err := g.AppendHistory(ctx, &types.HistoryEntry{
		EntityType: types.EntityItem,
		EntityID:   item.ID,
		Action:     types.ActionCreated,
		NewValue:   item.ItemKey,
	}); err != nil {
		return nil, err
	}
	return item, nil
}

func (m *Manager) resolvePosition(ctx context.Context, g storage.Gateway, listID int64, parentID *int64, position *int) (int, error) {
	if position == nil || *position == 0 {
		return g.NextPosition(ctx, listID, parentID)
	}
	if err := validation.Position(*position); err != nil {
		return 0, err
	}
	return *position, nil
}

// GetItem fetches an item by key. parentKey, when non-empty, must name the
// item's actual parent; a wrong or missing parent behaves as not-found
// rather than raising a distinct error.
func (m *Manager) GetItem(ctx context.Context, listKey, itemKey, parentKey string) (*types.Item, error) {
	var result *types.Item
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		item, err := m.resolveItemForRead(ctx, g, list.ID, itemKey, parentKey)
		if err != nil {
			return err
		}
		result = item
		return nil
	})
	return result, err
}

// UpdateItemStatus sets a leaf item's status. Fails with
// types.ErrHasSubitems if the item has children, since their status is
// always derived. completionStates, when non-nil, replaces the item's
// completion-state map in full (an empty non-nil map clears it and records
// types.ActionStatesCleared).
func (m *Manager) UpdateItemStatus(ctx context.Context, listKey, itemKey string, status types.ItemStatus, completionStates map[string]bool, parentKey string) error {
	if err := validation.ItemStatus(status); err != nil {
		return err
	}
	return m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		item, err := m.resolveItemForMutation(ctx, g, list.ID, itemKey, parentKey)
		if err != nil {
			return err
		}
		children, err := g.GetChildren(ctx, list.ID, &item.ID)
		if err != nil {
			return err
		}
		if len(children) > 0 {
			return fmt.Errorf("item %q has subitems: %w", itemKey, types.ErrHasSubitems)
		}

		startedAt, completedAt := item.StartedAt, item.CompletedAt
		switch status {
		case types.StatusInProgress:
			if startedAt == nil {
				t := now()
				startedAt = &t
			}
			completedAt = nil
		case types.StatusCompleted:
			if startedAt == nil {
				t := now()
				startedAt = &t
			}
			t := now()
			completedAt = &t
		case types.StatusPending, types.StatusFailed:
			completedAt = nil
		}

		if err := g.UpdateItemStatus(ctx, item.ID, status, completionStates, startedAt, completedAt); err != nil {
			return err
		}

		action := types.ActionStatusUpdated
		switch status {
		case types.StatusCompleted:
			action = types.ActionCompleted
		case types.StatusFailed:
			action = types.ActionFailed
		}
		if err := g.AppendHistory(ctx, &types.HistoryEntry{
			EntityType: types.EntityItem,
			EntityID:   item.ID,
			Action:     action,
			OldValue:   string(item.Status),
			NewValue:   string(status),
		}); err != nil {
			return err
		}
		if completionStates != nil && len(completionStates) == 0 {
			if err := g.AppendHistory(ctx, &types.HistoryEntry{
				EntityType: types.EntityItem,
				EntityID:   item.ID,
				Action:     types.ActionStatesCleared,
			}); err != nil {
				return err
			}
		}

		return m.recomputeAncestors(ctx, g, item.ID)
	})
}

// UpdateItemContent replaces an item's content text.
func (m *Manager) UpdateItemContent(ctx context.Context, listKey, itemKey, parentKey, content string) error {
	if err := validation.Content(content); err != nil {
		return err
	}
	return m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		item, err := m.resolveItemForMutation(ctx, g, list.ID, itemKey, parentKey)
		if err != nil {
			return err
		}
		if err := g.UpdateItemContent(ctx, item.ID, content); err != nil {
			return err
		}
		return g.AppendHistory(ctx, &types.HistoryEntry{
			EntityType: types.EntityItem,
			EntityID:   item.ID,
			Action:     types.ActionContentUpdated,
			OldValue:   item.Content,
			NewValue:   content,
		})
	})
}

// RenameItem changes an item's key, preserving sibling-uniqueness.
func (m *Manager) RenameItem(ctx context.Context, listKey, itemKey, parentKey, newKey string) error {
	if err := validation.Key("item_key", newKey); err != nil {
		return err
	}
	return m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		item, err := m.resolveItemForMutation(ctx, g, list.ID, itemKey, parentKey)
		if err != nil {
			return err
		}
		if _, err := g.GetItem(ctx, list.ID, item.ParentItemID, newKey); err == nil {
			return fmt.Errorf("item key %q already exists in this sibling group: %w", newKey, types.ErrAlreadyExists)
		} else if !types.Is(err, types.ErrNotFound) {
			return err
		}
		if err := g.RenameItem(ctx, item.ID, newKey); err != nil {
			return err
		}
		return g.AppendHistory(ctx, &types.HistoryEntry{
			EntityType: types.EntityItem,
			EntityID:   item.ID,
			Action:     types.ActionRenamed,
			OldValue:   itemKey,
			NewValue:   newKey,
		})
	})
}

// DeleteItem removes an item and its entire subtree (deepest-first), then
// recomputes the surviving parent's derived status. The deletion itself is
// recorded against the containing list's history, since the item's own
// history rows are removed along with it.
func (m *Manager) DeleteItem(ctx context.Context, listKey, itemKey, parentKey string) error {
	return m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		item, err := m.resolveItemForMutation(ctx, g, list.ID, itemKey, parentKey)
		if err != nil {
			return err
		}
		formerParent := item.ParentItemID

		if err := g.DeleteItemCascade(ctx, item.ID); err != nil {
			return err
		}
		if err := g.AppendHistory(ctx, &types.HistoryEntry{
			EntityType: types.EntityList,
			EntityID:   list.ID,
			Action:     types.ActionDeleted,
			OldValue:   itemKey,
		}); err != nil {
			return err
		}
		return m.recomputeFrom(ctx, g, formerParent)
	})
}

// MoveToSubitem promotes a root item into a subitem of newParentKey (also
// a root item), rejecting the move if it would create a cycle or collide
// with an existing sibling key under the new parent.
func (m *Manager) MoveToSubitem(ctx context.Context, listKey, itemKey, newParentKey string) error {
	return m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		item, err := m.resolveRootItem(ctx, g, list.ID, itemKey)
		if err != nil {
			return err
		}
		newParent, err := m.resolveRootItem(ctx, g, list.ID, newParentKey)
		if err != nil {
			return err
		}
		if newParent.ID == item.ID {
			return fmt.Errorf("an item cannot become its own parent: %w", types.ErrInvalidArgument)
		}
		if _, err := g.GetItem(ctx, list.ID, &newParent.ID, itemKey); err == nil {
			return fmt.Errorf("item key %q already exists under %q: %w", itemKey, newParentKey, types.ErrAlreadyExists)
		} else if !types.Is(err, types.ErrNotFound) {
			return err
		}

		newPosition, err := g.NextPosition(ctx, list.ID, &newParent.ID)
		if err != nil {
			return err
		}
		if err := g.MoveItem(ctx, item.ID, &newParent.ID, newPosition); err != nil {
			return err
		}
		if err := g.AppendHistory(ctx, &types.HistoryEntry{
			EntityType: types.EntityItem,
			EntityID:   item.ID,
			Action:     types.ActionMovedToSubitem,
			NewValue:   newParentKey,
		}); err != nil {
			return err
		}
		return m.recomputeAncestors(ctx, g, item.ID)
	})
}

// GetSubitems returns parentKey's direct children in position order.
func (m *Manager) GetSubitems(ctx context.Context, listKey, parentKey string) ([]*types.Item, error) {
	var result []*types.Item
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		parent, err := m.resolveRootItem(ctx, g, list.ID, parentKey)
		if err != nil {
			return err
		}
		children, err := g.GetChildren(ctx, list.ID, &parent.ID)
		if err != nil {
			return err
		}
		result = children
		return nil
	})
	return result, err
}

// GetItemHierarchy materializes rootKey and its full subtree as a tree.
func (m *Manager) GetItemHierarchy(ctx context.Context, listKey, rootKey string) (*types.TreeNode, error) {
	var result *types.TreeNode
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		root, err := m.resolveRootItem(ctx, g, list.ID, rootKey)
		if err != nil {
			return err
		}
		all, err := g.GetAllItems(ctx, list.ID)
		if err != nil {
			return err
		}
		result = buildTree(all, root)
		return nil
	})
	return result, err
}

func buildTree(all []*types.Item, root *types.Item) *types.TreeNode {
	children := make(map[int64][]*types.Item)
	for _, it := range all {
		if it.ParentItemID != nil {
			children[*it.ParentItemID] = append(children[*it.ParentItemID], it)
		}
	}
	var build func(*types.Item) *types.TreeNode
	build = func(it *types.Item) *types.TreeNode {
		node := &types.TreeNode{Item: it}
		for _, child := range children[it.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}
	return build(root)
}

// GetListItems returns every item in a list in hierarchical traversal
// order, optionally filtered by status and bounded to limit items (not
// rows); limit of 0 returns empty, nil means unbounded.
func (m *Manager) GetListItems(ctx context.Context, listKey string, status *types.ItemStatus, limit *int) ([]*types.Item, error) {
	if limit != nil && *limit == 0 {
		return nil, nil
	}
	var result []*types.Item
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		items, err := g.GetAllItems(ctx, list.ID)
		if err != nil {
			return err
		}
		ordered := traversal.HierarchicalOrder(items)

		var filtered []*types.Item
		for _, it := range ordered {
			if status != nil && it.Status != *status {
				continue
			}
			filtered = append(filtered, it)
		}
		if limit != nil && *limit < len(filtered) {
			filtered = filtered[:*limit]
		}
		result = filtered
		return nil
	})
	return result, err
}
