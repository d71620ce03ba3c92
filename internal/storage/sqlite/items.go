package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/todoit/todoit/internal/types"
)

func (g *gateway) CreateItem(ctx context.Context, item *types.Item) error {
	res, err := g.conn.ExecContext(ctx, `
		INSERT INTO todo_items (list_id, parent_item_id, item_key, content, status, position)
		VALUES (?, ?, ?, ?, ?, ?)
	`, item.ListID, nullableInt64(item.ParentItemID), item.ItemKey, item.Content, item.Status, item.Position)
	if err != nil {
		return wrapDBError(fmt.Sprintf("create item %q", item.ItemKey), err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return wrapDBError("create item: read id", err)
	}
	item.ID = id
	return g.refreshItemTimestamps(ctx, item)
}

// CreateItems bulk-inserts items with a single prepared statement, for
// callers seeding many subitems at once (e.g. template expansion) without
// paying one round trip per row.
func (g *gateway) CreateItems(ctx context.Context, items []*types.Item) error {
	stmt, err := g.conn.PrepareContext(ctx, `
		INSERT INTO todo_items (list_id, parent_item_id, item_key, content, status, position)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return wrapDBError("prepare bulk item insert", err)
	}
	defer stmt.Close()

	for _, item := range items {
		res, err := stmt.ExecContext(ctx, item.ListID, nullableInt64(item.ParentItemID), item.ItemKey, item.Content, item.Status, item.Position)
		if err != nil {
			return wrapDBError(fmt.Sprintf("bulk insert item %q", item.ItemKey), err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return wrapDBError("bulk insert item: read id", err)
		}
		item.ID = id
		if err := g.refreshItemTimestamps(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (g *gateway) refreshItemTimestamps(ctx context.Context, item *types.Item) error {
	row := g.conn.QueryRowContext(ctx, `SELECT created_at, updated_at FROM todo_items WHERE id = ?`, item.ID)
	return wrapDBError("read item timestamps", row.Scan(&item.CreatedAt, &item.UpdatedAt))
}

const itemColumns = `id, list_id, parent_item_id, item_key, content, status, position, started_at, completed_at, created_at, updated_at`

func scanItem(row interface{ Scan(...interface{}) error }) (*types.Item, error) {
	var it types.Item
	var parentID sql.NullInt64
	var startedAt, completedAt sql.NullTime
	if err := row.Scan(&it.ID, &it.ListID, &parentID, &it.ItemKey, &it.Content, &it.Status,
		&it.Position, &startedAt, &completedAt, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	if parentID.Valid {
		it.ParentItemID = &parentID.Int64
	}
	if startedAt.Valid {
		it.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		it.CompletedAt = &completedAt.Time
	}
	return &it, nil
}

// GetItem distinguishes root items from subitems strictly by parentItemID:
// nil means "root", non-nil means "subitem of this exact parent". Passing
// the wrong parent, or omitting it for a key that only exists as a
// subitem, returns types.ErrNotFound rather than matching some other row
// with the same key.
func (g *gateway) GetItem(ctx context.Context, listID int64, parentItemID *int64, itemKey string) (*types.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM todo_items WHERE list_id = ? AND item_key = ? AND `
	args := []interface{}{listID, itemKey}
	if parentItemID == nil {
		query += `parent_item_id IS NULL`
	} else {
		query += `parent_item_id = ?`
		args = append(args, *parentItemID)
	}
	row := g.conn.QueryRowContext(ctx, query, args...)
	it, err := scanItem(row)
	if err != nil {
		return nil, wrapDBError(fmt.Sprintf("get item %q", itemKey), err)
	}
	return it, nil
}

func (g *gateway) GetItemByID(ctx context.Context, id int64) (*types.Item, error) {
	row := g.conn.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM todo_items WHERE id = ?`, id)
	it, err := scanItem(row)
	if err != nil {
		return nil, wrapDBError("get item by id", err)
	}
	return it, nil
}

// GetChildren returns the sibling group (list_id, parentItemID) ordered by
// position ascending, the order traversal and numbering both depend on.
func (g *gateway) GetChildren(ctx context.Context, listID int64, parentItemID *int64) ([]*types.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM todo_items WHERE list_id = ? AND `
	args := []interface{}{listID}
	if parentItemID == nil {
		query += `parent_item_id IS NULL`
	} else {
		query += `parent_item_id = ?`
		args = append(args, *parentItemID)
	}
	query += ` ORDER BY position ASC`

	rows, err := g.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("get children", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows *sql.Rows) ([]*types.Item, error) {
	var out []*types.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, wrapDBError("scan item", err)
		}
		out = append(out, it)
	}
	return out, wrapDBError("iterate items", rows.Err())
}

// GetAllItems eager-loads every item in a list in one query, avoiding the
// N+1 per-sibling-group fetch the manager's hierarchical operations would
// otherwise need. Ordering is position-ascending within each sibling
// group; callers needing full hierarchical traversal order build the tree
// from the flat slice via ParentItemID.
func (g *gateway) GetAllItems(ctx context.Context, listID int64) ([]*types.Item, error) {
	rows, err := g.conn.QueryContext(ctx, `
		SELECT `+itemColumns+` FROM todo_items WHERE list_id = ? ORDER BY parent_item_id IS NOT NULL, position ASC
	`, listID)
	if err != nil {
		return nil, wrapDBError("get all items", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// NextPosition returns the next dense position for a new sibling: one past
// the current maximum in the group, or 1 if the group is empty. Gaps left
// by deletions are tolerated, not backfilled.
func (g *gateway) NextPosition(ctx context.Context, listID int64, parentItemID *int64) (int, error) {
	query := `SELECT COALESCE(MAX(position), 0) FROM todo_items WHERE list_id = ? AND `
	args := []interface{}{listID}
	if parentItemID == nil {
		query += `parent_item_id IS NULL`
	} else {
		query += `parent_item_id = ?`
		args = append(args, *parentItemID)
	}
	var max int
	if err := g.conn.QueryRowContext(ctx, query, args...).Scan(&max); err != nil {
		return 0, wrapDBError("next position", err)
	}
	return max + 1, nil
}

func (g *gateway) UpdateItemStatus(ctx context.Context, id int64, status types.ItemStatus, states map[string]bool, startedAt, completedAt *time.Time) error {
	res, err := g.conn.ExecContext(ctx, `
		UPDATE todo_items
		SET status = ?, started_at = ?, completed_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, status, nullableTime(startedAt), nullableTime(completedAt), id)
	if err := wrapAffected(res, err, "update item status"); err != nil {
		return err
	}

	if states != nil {
		if _, err := g.conn.ExecContext(ctx, `DELETE FROM item_completion_states WHERE item_id = ?`, id); err != nil {
			return wrapDBError("clear completion states", err)
		}
		for key, value := range states {
			if _, err := g.conn.ExecContext(ctx, `
				INSERT INTO item_completion_states (item_id, state_key, state_value) VALUES (?, ?, ?)
			`, id, key, boolToInt(value)); err != nil {
				return wrapDBError("set completion state", err)
			}
		}
	}
	return nil
}

func (g *gateway) UpdateItemContent(ctx context.Context, id int64, content string) error {
	res, err := g.conn.ExecContext(ctx, `
		UPDATE todo_items SET content = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, content, id)
	return wrapAffected(res, err, "update item content")
}

func (g *gateway) RenameItem(ctx context.Context, id int64, newKey string) error {
	res, err := g.conn.ExecContext(ctx, `
		UPDATE todo_items SET item_key = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, newKey, id)
	return wrapAffected(res, err, "rename item")
}

func (g *gateway) MoveItem(ctx context.Context, id int64, newParentItemID *int64, newPosition int) error {
	res, err := g.conn.ExecContext(ctx, `
		UPDATE todo_items SET parent_item_id = ?, position = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, nullableInt64(newParentItemID), newPosition, id)
	return wrapAffected(res, err, "move item")
}

// DeleteItemCascade removes id and its entire subtree deepest-first, along
// with completion states, item-properties, item-scoped history and any
// item-dependency edges naming the removed rows. Foreign keys with ON
// DELETE CASCADE already remove completion states and properties once the
// row itself goes, but history is enumerated explicitly since history rows
// intentionally have no FK (they must survive the item that created them
// being renamed, though not deleted).
func (g *gateway) DeleteItemCascade(ctx context.Context, id int64) error {
	ids, err := g.subtreeIDsDeepestFirst(ctx, id)
	if err != nil {
		return err
	}
	for _, itemID := range ids {
		if _, err := g.conn.ExecContext(ctx, `DELETE FROM history WHERE entity_type = 'item' AND entity_id = ?`, itemID); err != nil {
			return wrapDBError("delete item history", err)
		}
		if _, err := g.conn.ExecContext(ctx, `DELETE FROM todo_items WHERE id = ?`, itemID); err != nil {
			return wrapDBError("delete item", err)
		}
	}
	return nil
}

// subtreeIDsDeepestFirst returns root's subtree (including root) ordered so
// children always precede their parent, via iterative BFS then reversal.
func (g *gateway) subtreeIDsDeepestFirst(ctx context.Context, root int64) ([]int64, error) {
	var order []int64
	frontier := []int64{root}
	for len(frontier) > 0 {
		order = append(order, frontier...)
		var next []int64
		for _, parent := range frontier {
			rows, err := g.conn.QueryContext(ctx, `SELECT id FROM todo_items WHERE parent_item_id = ?`, parent)
			if err != nil {
				return nil, wrapDBError("enumerate subtree", err)
			}
			for rows.Next() {
				var childID int64
				if err := rows.Scan(&childID); err != nil {
					rows.Close()
					return nil, wrapDBError("scan subtree child", err)
				}
				next = append(next, childID)
			}
			if err := rows.Err(); err != nil {
				rows.Close()
				return nil, wrapDBError("iterate subtree children", err)
			}
			rows.Close()
		}
		frontier = next
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}

// hierarchicalOrder flattens items into true hierarchical traversal order:
// each root followed immediately by its full subtree (children before
// later roots), siblings ordered by position. Used by callers that need
// parent-before-children-before-next-root ordering rather than the
// roots-then-children split GetAllItems' SQL ORDER BY produces.
func hierarchicalOrder(items []*types.Item) []*types.Item {
	children := make(map[int64][]*types.Item)
	var roots []*types.Item
	for _, it := range items {
		if it.ParentItemID == nil {
			roots = append(roots, it)
		} else {
			children[*it.ParentItemID] = append(children[*it.ParentItemID], it)
		}
	}
	sortByPosition := func(s []*types.Item) {
		for i := 1; i < len(s); i++ {
			for j := i; j > 0 && s[j].Position < s[j-1].Position; j-- {
				s[j], s[j-1] = s[j-1], s[j]
			}
		}
	}
	sortByPosition(roots)
	for _, siblings := range children {
		sortByPosition(siblings)
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

func nullableInt64(p *int64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func nullableTime(p *time.Time) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
