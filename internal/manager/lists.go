package manager

import (
	"context"
	"fmt"
	"strings"

	"github.com/todoit/todoit/internal/storage"
	"github.com/todoit/todoit/internal/types"
	"github.com/todoit/todoit/internal/validation"
)

// NewItemSpec is one entry of the optional items list passed to CreateList.
type NewItemSpec struct {
	Key      string
	Content  string
	Metadata map[string]string
}

// CreateList creates a list and, when items is non-empty, bulk-inserts them
// as root items with positions 1..n in the same transaction. When the
// Manager's tag scope is active, the forced tags are assigned to the new
// list in addition to any explicit tags, creating missing tag rows with
// the default color.
func (m *Manager) CreateList(ctx context.Context, key, title string, items []NewItemSpec, metadata map[string]string, tags []string) (*types.List, error) {
	if err := validation.Key("list_key", key); err != nil {
		return nil, err
	}

	var result *types.List
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list := &types.List{ListKey: key, Title: title, Status: types.ListStatusActive}
		if err := g.CreateList(ctx, list); err != nil {
			return err
		}

		for propKey, value := range metadata {
			if err := g.SetListProperty(ctx, list.ID, propKey, value); err != nil {
				return err
			}
		}

		allTags := mergeTagSets(tags, m.scope.Tags())
		for _, tagName := range allTags {
			tag, err := m.getOrCreateTag(ctx, g, tagName, "")
			if err != nil {
				return err
			}
			if err := g.AddTagToList(ctx, list.ID, tag.ID); err != nil {
				return err
			}
		}

		for i, spec := range items {
			if err := validation.Key("item_key", spec.Key); err != nil {
				return err
			}
			item := &types.Item{
				ListID:   list.ID,
				ItemKey:  spec.Key,
				Content:  spec.Content,
				Status:   types.StatusPending,
				Position: i + 1,
			}
			if err := g.CreateItem(ctx, item); err != nil {
				return err
			}
			for propKey, value := range spec.Metadata {
				if err := g.SetItemProperty(ctx, item.ID, propKey, value); err != nil {
					return err
				}
			}
		}

		if err := g.AppendHistory(ctx, &types.HistoryEntry{
			EntityType: types.EntityList,
			EntityID:   list.ID,
			Action:     types.ActionCreated,
			NewValue:   list.ListKey,
		}); err != nil {
			return err
		}

		result = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	debugOp("create_list", key)
	return result, nil
}

func mergeTagSets(explicit, forced []string) []string {
	seen := make(map[string]bool, len(explicit)+len(forced))
	var out []string
	for _, t := range append(append([]string{}, explicit...), forced...) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func (m *Manager) getOrCreateTag(ctx context.Context, g storage.Gateway, name, color string) (*types.Tag, error) {
	tag, err := g.GetTagByName(ctx, name)
	if err == nil {
		return tag, nil
	}
	if !types.Is(err, types.ErrNotFound) {
		return nil, err
	}
	return g.CreateTag(ctx, name, color)
}

// GetList fetches a single list by key, subject to the tag-scope filter.
func (m *Manager) GetList(ctx context.Context, key string) (*types.List, error) {
	var result *types.List
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, key)
		if err != nil {
			return err
		}
		result = list
		return nil
	})
	return result, err
}

// ListAll returns every list visible under the tag scope, further narrowed
// by filterTags when non-empty, in ascending id order.
func (m *Manager) ListAll(ctx context.Context, filterTags []string, includeArchived bool) ([]*types.List, error) {
	var result []*types.List
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		all, err := g.ListAll(ctx, includeArchived)
		if err != nil {
			return err
		}

		var scopeKeys map[int64]bool
		if m.scope.Active() {
			scopeKeys, err = g.ListKeysWithAnyTag(ctx, m.scope.Tags())
			if err != nil {
				return err
			}
		}
		var filterKeys map[int64]bool
		if len(filterTags) > 0 {
			filterKeys, err = g.ListKeysWithAnyTag(ctx, filterTags)
			if err != nil {
				return err
			}
		}

		for _, l := range all {
			if scopeKeys != nil && !scopeKeys[l.ID] {
				continue
			}
			if filterKeys != nil && !filterKeys[l.ID] {
				continue
			}
			result = append(result, l)
		}
		return nil
	})
	return result, err
}

// RenameList changes a list's title.
func (m *Manager) RenameList(ctx context.Context, key, title string) error {
	return m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, key)
		if err != nil {
			return err
		}
		if err := g.RenameList(ctx, list.ID, title); err != nil {
			return err
		}
		return g.AppendHistory(ctx, &types.HistoryEntry{
			EntityType: types.EntityList,
			EntityID:   list.ID,
			Action:     types.ActionRenameList,
			OldValue:   list.Title,
			NewValue:   title,
		})
	})
}

// ArchiveList transitions a list to archived. Unless force is true, every
// item in the list must already be completed (an empty list always
// qualifies); otherwise fails with types.ErrIncompletePrecondition.
func (m *Manager) ArchiveList(ctx context.Context, key string, force bool) error {
	return m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, key)
		if err != nil {
			return err
		}
		if !force {
			items, err := g.GetAllItems(ctx, list.ID)
			if err != nil {
				return err
			}
			for _, it := range items {
				if it.Status != types.StatusCompleted {
					return fmt.Errorf("list %q has incomplete items: %w", key, types.ErrIncompletePrecondition)
				}
			}
		}
		if err := g.UpdateListStatus(ctx, list.ID, types.ListStatusArchived); err != nil {
			return err
		}
		return g.AppendHistory(ctx, &types.HistoryEntry{
			EntityType: types.EntityList,
			EntityID:   list.ID,
			Action:     types.ActionStatusUpdated,
			OldValue:   string(types.ListStatusActive),
			NewValue:   string(types.ListStatusArchived),
		})
	})
}

// UnarchiveList restores an archived list to active.
func (m *Manager) UnarchiveList(ctx context.Context, key string) error {
	return m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, key)
		if err != nil {
			return err
		}
		if err := g.UpdateListStatus(ctx, list.ID, types.ListStatusActive); err != nil {
			return err
		}
		return g.AppendHistory(ctx, &types.HistoryEntry{
			EntityType: types.EntityList,
			EntityID:   list.ID,
			Action:     types.ActionStatusUpdated,
			OldValue:   string(types.ListStatusArchived),
			NewValue:   string(types.ListStatusActive),
		})
	})
}

// DeleteList removes a list and everything it owns: items (deepest-first),
// completion states, item/list properties, tag-assignments, dependency
// edges touching any of its items, and item/list history — all within the
// cascade the Database Gateway enumerates.
func (m *Manager) DeleteList(ctx context.Context, key string) error {
	return m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, key)
		if err != nil {
			return err
		}
		return g.DeleteListCascade(ctx, list.ID)
	})
}
