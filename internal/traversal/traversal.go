// Package traversal implements the stateless next-pending-item algorithms
// and the dependency-cycle detector. Every function here operates on a
// snapshot read through a storage.Gateway already scoped to the caller's
// transaction; nothing in this package opens its own transaction or
// caches results across calls.
package traversal

import (
	"context"

	"github.com/todoit/todoit/internal/storage"
	"github.com/todoit/todoit/internal/types"
)

// IsBlocked reports whether itemID has any direct blocker whose status is
// not completed.
func IsBlocked(ctx context.Context, g storage.Gateway, itemID int64) (bool, error) {
	blockers, err := g.GetBlockers(ctx, itemID)
	if err != nil {
		return false, err
	}
	for _, b := range blockers {
		if b.Status != types.StatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

// NextPending performs the flat scan: items in position order, filtered to
// status pending, then checked one at a time for an unblocked candidate.
// Root and subitem positions are scoped per parent, so this walks the
// whole list via a single eager-loaded read and only considers root items
// alongside their subitems strictly in hierarchical order, matching the
// "linear scan over items in position order" wording by treating the
// hierarchical flattening as the canonical position order for a list with
// subitems.
func NextPending(ctx context.Context, g storage.Gateway, listID int64) (*types.Item, error) {
	items, err := g.GetAllItems(ctx, listID)
	if err != nil {
		return nil, err
	}
	ordered := flatten(items)

	for _, it := range ordered {
		if it.Status != types.StatusPending {
			continue
		}
		blocked, err := IsBlocked(ctx, g, it.ID)
		if err != nil {
			return nil, err
		}
		if !blocked {
			return it, nil
		}
	}
	return nil, nil
}

// NextPendingHierarchical implements the hierarchy-aware "smart" walk: DFS
// over root items in position order; for each root with subitems, recurse
// into its subtree before considering later roots. If any leaf in a
// subtree is in_progress, that subtree is committed to and its first
// pending, unblocked leaf wins over any later root — even one that would
// otherwise have produced a candidate first. Blocked leaves are skipped
// without abandoning the subtree. Ties are broken by position; nothing
// actionable yields a nil item.
func NextPendingHierarchical(ctx context.Context, g storage.Gateway, listID int64) (*types.Item, error) {
	items, err := g.GetAllItems(ctx, listID)
	if err != nil {
		return nil, err
	}

	children := childIndex(items)
	var roots []*types.Item
	for _, it := range items {
		if it.IsRoot() {
			roots = append(roots, it)
		}
	}
	sortByPosition(roots)

	w := &walker{ctx: ctx, g: g, children: children}
	for _, root := range roots {
		candidate, inProgress, err := w.visit(root)
		if err != nil {
			return nil, err
		}
		if candidate != nil {
			return candidate, nil
		}
		if inProgress {
			// An in_progress subtree with no actionable leaf still claims
			// priority over later roots; the walk ends here with nothing
			// to return, matching "that subtree is prioritized" even when
			// it turns out to be fully blocked or fully in progress.
			return nil, nil
		}
	}
	return nil, nil
}

type walker struct {
	ctx      context.Context
	g        storage.Gateway
	children map[int64][]*types.Item
}

// visit returns (candidate, subtreeHasInProgress, err) for the subtree
// rooted at it. candidate is the first pending, unblocked leaf discovered
// under an in_progress-prioritized traversal; subtreeHasInProgress signals
// that the subtree contains an in_progress leaf even when no candidate was
// found (e.g. every pending leaf in it is blocked).
func (w *walker) visit(it *types.Item) (*types.Item, bool, error) {
	kids := w.children[it.ID]
	if len(kids) == 0 {
		switch it.Status {
		case types.StatusInProgress:
			return nil, true, nil
		case types.StatusPending:
			blocked, err := IsBlocked(w.ctx, w.g, it.ID)
			if err != nil {
				return nil, false, err
			}
			if blocked {
				return nil, false, nil
			}
			return it, false, nil
		default:
			return nil, false, nil
		}
	}

	sortByPosition(kids)
	anyInProgress := false
	for _, child := range kids {
		candidate, childInProgress, err := w.visit(child)
		if err != nil {
			return nil, false, err
		}
		if candidate != nil {
			return candidate, true, nil
		}
		if childInProgress {
			anyInProgress = true
		}
	}
	return nil, anyInProgress, nil
}

func childIndex(items []*types.Item) map[int64][]*types.Item {
	m := make(map[int64][]*types.Item)
	for _, it := range items {
		if it.ParentItemID != nil {
			m[*it.ParentItemID] = append(m[*it.ParentItemID], it)
		}
	}
	return m
}

func sortByPosition(s []*types.Item) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j].Position < s[j-1].Position; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// flatten orders items root-then-subtree (hierarchical traversal order)
// for the flat scan, so a list with subitems still walks depth-first
// rather than all-roots-then-all-children.
func flatten(items []*types.Item) []*types.Item {
	return HierarchicalOrder(items)
}

// HierarchicalOrder flattens items into true hierarchical traversal order:
// each root followed immediately by its full subtree (children before
// later roots), siblings ordered by position. Shared by the traversal
// engine and the manager's listing ops; the sqlite gateway's bulk property
// read uses its own copy of this ordering.
func HierarchicalOrder(items []*types.Item) []*types.Item {
	children := childIndex(items)
	var roots []*types.Item
	for _, it := range items {
		if it.IsRoot() {
			roots = append(roots, it)
		}
	}
	sortByPosition(roots)
	for _, kids := range children {
		sortByPosition(kids)
	}

	var out []*types.Item
	var visit func(*types.Item)
	visit = func(it *types.Item) {
		out = append(out, it)
		for _, child := range children[it.ID] {
			visit(child)
		}
	}
	for _, root := range roots {
		visit(root)
	}
	return out
}

// WouldCycle reports whether adding an edge dependentID -> requiredID
// (dependent requires required) would create a cycle. It performs DFS from
// requiredID following existing outgoing dependency edges; reaching
// dependentID means the new edge would close a loop.
func WouldCycle(ctx context.Context, g storage.Gateway, dependentID, requiredID int64) (bool, error) {
	if dependentID == requiredID {
		return true, nil
	}
	visited := make(map[int64]bool)
	var dfs func(int64) (bool, error)
	dfs = func(node int64) (bool, error) {
		if node == dependentID {
			return true, nil
		}
		if visited[node] {
			return false, nil
		}
		visited[node] = true

		next, err := g.OutgoingEdges(ctx, node)
		if err != nil {
			return false, err
		}
		for _, n := range next {
			found, err := dfs(n)
			if err != nil {
				return false, err
			}
			if found {
				return true, nil
			}
		}
		return false, nil
	}
	return dfs(requiredID)
}
