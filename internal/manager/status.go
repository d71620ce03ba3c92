package manager

import (
	"context"
	"time"

	"github.com/todoit/todoit/internal/storage"
	"github.com/todoit/todoit/internal/types"
)

// deriveStatus computes a parent's status from its children's statuses.
// The empty-children case is handled separately by callers (recomputeAncestors
// never calls this for a node it has just emptied) per the "defaults to
// pending" resolution of the open question in the design notes.
func deriveStatus(children []*types.Item) types.ItemStatus {
	var total, completed, inProgress, failed int
	for _, c := range children {
		total++
		switch c.Status {
		case types.StatusCompleted:
			completed++
		case types.StatusInProgress:
			inProgress++
		case types.StatusFailed:
			failed++
		}
	}
	switch {
	case total == 0:
		return types.StatusPending
	case completed == total:
		return types.StatusCompleted
	case failed > 0 && inProgress == 0 && completed < total:
		return types.StatusFailed
	case inProgress > 0 || (completed > 0 && completed < total):
		return types.StatusInProgress
	default:
		return types.StatusPending
	}
}

// recomputeAncestors walks from itemID's parent up to the root, idempotently
// applying deriveStatus at each level and stopping as soon as a level's
// status is unchanged (the fixed point the design notes describe). It is
// called after any leaf mutation, child add, or child removal.
func (m *Manager) recomputeAncestors(ctx context.Context, g storage.Gateway, itemID int64) error {
	item, err := g.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	return m.recomputeFrom(ctx, g, item.ParentItemID)
}

func (m *Manager) recomputeFrom(ctx context.Context, g storage.Gateway, parentID *int64) error {
	for parentID != nil {
		parent, err := g.GetItemByID(ctx, *parentID)
		if err != nil {
			return err
		}
		children, err := g.GetChildren(ctx, parent.ListID, &parent.ID)
		if err != nil {
			return err
		}
		if len(children) == 0 {
			// A parent whose last child was just removed (DeleteItem
			// deletes the child before recomputing) has no children left
			// and resolves to pending.
			if parent.Status == types.StatusPending {
				return nil
			}
			if err := m.setDerivedStatus(ctx, g, parent, types.StatusPending); err != nil {
				return err
			}
			parentID = parent.ParentItemID
			continue
		}

		newStatus := deriveStatus(children)
		if newStatus == parent.Status {
			return nil
		}
		if err := m.setDerivedStatus(ctx, g, parent, newStatus); err != nil {
			return err
		}
		parentID = parent.ParentItemID
	}
	return nil
}

func (m *Manager) setDerivedStatus(ctx context.Context, g storage.Gateway, item *types.Item, newStatus types.ItemStatus) error {
	var startedAt, completedAt *time.Time
	startedAt = item.StartedAt
	completedAt = item.CompletedAt

	switch newStatus {
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

	if err := g.UpdateItemStatus(ctx, item.ID, newStatus, nil, startedAt, completedAt); err != nil {
		return err
	}

	action := types.ActionStatusUpdated
	if newStatus == types.StatusCompleted {
		action = types.ActionAutoCompleted
	}
	return g.AppendHistory(ctx, &types.HistoryEntry{
		EntityType: types.EntityItem,
		EntityID:   item.ID,
		Action:     action,
		OldValue:   string(item.Status),
		NewValue:   string(newStatus),
	})
}
