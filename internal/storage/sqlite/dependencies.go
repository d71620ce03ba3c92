package sqlite

import (
	"context"

	"github.com/todoit/todoit/internal/types"
)

func (g *gateway) AddDependency(ctx context.Context, dep *types.Dependency) error {
	if _, err := g.conn.ExecContext(ctx, `
		INSERT INTO item_dependencies (dependent_item_id, required_item_id)
		VALUES (?, ?)
	`, dep.DependentItemID, dep.RequiredItemID); err != nil {
		return wrapDBError("add dependency", err)
	}
	row := g.conn.QueryRowContext(ctx, `
		SELECT created_at FROM item_dependencies WHERE dependent_item_id = ? AND required_item_id = ?
	`, dep.DependentItemID, dep.RequiredItemID)
	return wrapDBError("read dependency timestamp", row.Scan(&dep.CreatedAt))
}

func (g *gateway) RemoveDependency(ctx context.Context, dependentID, requiredID int64) error {
	res, err := g.conn.ExecContext(ctx, `
		DELETE FROM item_dependencies WHERE dependent_item_id = ? AND required_item_id = ?
	`, dependentID, requiredID)
	return wrapAffected(res, err, "remove dependency")
}

func (g *gateway) DependencyExists(ctx context.Context, dependentID, requiredID int64) (bool, error) {
	var n int
	err := g.conn.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM item_dependencies WHERE dependent_item_id = ? AND required_item_id = ?
	`, dependentID, requiredID).Scan(&n)
	if err != nil {
		return false, wrapDBError("dependency exists", err)
	}
	return n > 0, nil
}

// GetBlockers returns the items itemID directly depends on (its
// "required" set): the items that must complete before itemID can start.
func (g *gateway) GetBlockers(ctx context.Context, itemID int64) ([]*types.Item, error) {
	rows, err := g.conn.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM todo_items
		WHERE id IN (
			SELECT required_item_id FROM item_dependencies WHERE dependent_item_id = ?
		)
		ORDER BY id
	`, itemID)
	if err != nil {
		return nil, wrapDBError("get blockers", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// GetBlockedBy returns the items that directly depend on itemID: the items
// that cannot start until itemID completes.
func (g *gateway) GetBlockedBy(ctx context.Context, itemID int64) ([]*types.Item, error) {
	rows, err := g.conn.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM todo_items
		WHERE id IN (
			SELECT dependent_item_id FROM item_dependencies WHERE required_item_id = ?
		)
		ORDER BY id
	`, itemID)
	if err != nil {
		return nil, wrapDBError("get blocked by", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// OutgoingEdges returns the ids itemID directly requires, the minimal
// signature the cycle detector needs to walk the dependency graph without
// paying for full Item rows at every node.
func (g *gateway) OutgoingEdges(ctx context.Context, itemID int64) ([]int64, error) {
	rows, err := g.conn.QueryContext(ctx, `
		SELECT required_item_id FROM item_dependencies WHERE dependent_item_id = ?
	`, itemID)
	if err != nil {
		return nil, wrapDBError("outgoing edges", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, wrapDBError("scan outgoing edge", err)
		}
		out = append(out, id)
	}
	return out, wrapDBError("iterate outgoing edges", rows.Err())
}
