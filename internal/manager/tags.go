package manager

import (
	"context"
	"strings"

	"github.com/todoit/todoit/internal/storage"
	"github.com/todoit/todoit/internal/types"
	"github.com/todoit/todoit/internal/validation"
)

// CreateTag registers a new case-folded, globally unique tag.
func (m *Manager) CreateTag(ctx context.Context, name, color string) (*types.Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if err := validation.Key("tag_name", name); err != nil {
		return nil, err
	}
	if color == "" {
		color = types.DefaultTagColor
	}
	var result *types.Tag
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		tag, err := g.CreateTag(ctx, name, color)
		if err != nil {
			return err
		}
		result = tag
		return nil
	})
	return result, err
}

// AddTagToList assigns tagName to listKey, creating the tag if it doesn't
// already exist.
func (m *Manager) AddTagToList(ctx context.Context, listKey, tagName string) error {
	tagName = strings.ToLower(strings.TrimSpace(tagName))
	return m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		tag, err := m.getOrCreateTag(ctx, g, tagName, "")
		if err != nil {
			return err
		}
		return g.AddTagToList(ctx, list.ID, tag.ID)
	})
}

// RemoveTagFromList unassigns tagName from listKey.
func (m *Manager) RemoveTagFromList(ctx context.Context, listKey, tagName string) error {
	tagName = strings.ToLower(strings.TrimSpace(tagName))
	return m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		tag, err := g.GetTagByName(ctx, tagName)
		if err != nil {
			return err
		}
		return g.RemoveTagFromList(ctx, list.ID, tag.ID)
	})
}

// GetTagsForList returns the tags assigned to listKey.
func (m *Manager) GetTagsForList(ctx context.Context, listKey string) ([]*types.Tag, error) {
	var result []*types.Tag
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		list, err := m.resolveList(ctx, g, listKey)
		if err != nil {
			return err
		}
		result, err = g.GetTagsForList(ctx, list.ID)
		return err
	})
	return result, err
}

// ListTags returns every tag known to the store.
func (m *Manager) ListTags(ctx context.Context) ([]*types.Tag, error) {
	var result []*types.Tag
	err := m.store.WithTx(ctx, func(ctx context.Context, g storage.Gateway) error {
		var err error
		result, err = g.ListTags(ctx)
		return err
	})
	return result, err
}
