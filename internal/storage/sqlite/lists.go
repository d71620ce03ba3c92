package sqlite

import (
	"context"
	"fmt"

	"github.com/todoit/todoit/internal/types"
)

func (g *gateway) CreateList(ctx context.Context, list *types.List) error {
	res, err := g.conn.ExecContext(ctx, `
		INSERT INTO lists (list_key, title, status)
		VALUES (?, ?, ?)
	`, list.ListKey, list.Title, list.Status)
	if err != nil {
		return wrapDBError(fmt.Sprintf("create list %q", list.ListKey), err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return wrapDBError("create list: read id", err)
	}
	list.ID = id
	return g.refreshListTimestamps(ctx, list)
}

func (g *gateway) refreshListTimestamps(ctx context.Context, list *types.List) error {
	row := g.conn.QueryRowContext(ctx, `SELECT created_at, updated_at FROM lists WHERE id = ?`, list.ID)
	return wrapDBError("read list timestamps", row.Scan(&list.CreatedAt, &list.UpdatedAt))
}

func scanList(row interface{ Scan(...interface{}) error }) (*types.List, error) {
	l := &types.List{}
	if err := row.Scan(&l.ID, &l.ListKey, &l.Title, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return l, nil
}

func (g *gateway) GetList(ctx context.Context, listKey string) (*types.List, error) {
	row := g.conn.QueryRowContext(ctx, `
		SELECT id, list_key, title, status, created_at, updated_at
		FROM lists WHERE list_key = ?
	`, listKey)
	l, err := scanList(row)
	if err != nil {
		return nil, wrapDBError(fmt.Sprintf("get list %q", listKey), err)
	}
	return l, nil
}

func (g *gateway) GetListByID(ctx context.Context, id int64) (*types.List, error) {
	row := g.conn.QueryRowContext(ctx, `
		SELECT id, list_key, title, status, created_at, updated_at
		FROM lists WHERE id = ?
	`, id)
	l, err := scanList(row)
	if err != nil {
		return nil, wrapDBError("get list by id", err)
	}
	return l, nil
}

func (g *gateway) ListAll(ctx context.Context, includeArchived bool) ([]*types.List, error) {
	query := `SELECT id, list_key, title, status, created_at, updated_at FROM lists`
	if !includeArchived {
		query += ` WHERE status != 'archived'`
	}
	query += ` ORDER BY id`

	rows, err := g.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapDBError("list all", err)
	}
	defer rows.Close()

	var out []*types.List
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, wrapDBError("list all: scan", err)
		}
		out = append(out, l)
	}
	return out, wrapDBError("list all: iterate", rows.Err())
}

func (g *gateway) UpdateListStatus(ctx context.Context, id int64, status types.ListStatus) error {
	res, err := g.conn.ExecContext(ctx, `
		UPDATE lists SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, status, id)
	return wrapAffected(res, err, "update list status")
}

func (g *gateway) RenameList(ctx context.Context, id int64, title string) error {
	res, err := g.conn.ExecContext(ctx, `
		UPDATE lists SET title = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, title, id)
	return wrapAffected(res, err, "rename list")
}

// DeleteListCascade removes a list along with its items, tag assignments,
// properties, dependency edges and history. The items/tags/properties
// foreign keys all carry ON DELETE CASCADE, so dropping the list row is
// enough for those; dependency edges touching any of the list's items are
// deleted explicitly here, whichever list the other endpoint lives in;
// history has no foreign key (a history row must be able to outlive a
// rename) so it is deleted explicitly here, both for the list itself and
// for every item that belonged to it.
func (g *gateway) DeleteListCascade(ctx context.Context, id int64) error {
	if _, err := g.conn.ExecContext(ctx, `
		DELETE FROM item_dependencies
		WHERE dependent_item_id IN (SELECT id FROM todo_items WHERE list_id = ?)
		   OR required_item_id IN (SELECT id FROM todo_items WHERE list_id = ?)
	`, id, id); err != nil {
		return wrapDBError("delete list: dependencies", err)
	}
	if _, err := g.conn.ExecContext(ctx, `
		DELETE FROM history WHERE entity_type = 'item' AND entity_id IN (
			SELECT id FROM todo_items WHERE list_id = ?
		)
	`, id); err != nil {
		return wrapDBError("delete list: item history", err)
	}
	if _, err := g.conn.ExecContext(ctx, `DELETE FROM history WHERE entity_type = 'list' AND entity_id = ?`, id); err != nil {
		return wrapDBError("delete list: list history", err)
	}
	res, err := g.conn.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id)
	return wrapAffected(res, err, "delete list")
}

// wrapAffected wraps err and, if nil, turns "0 rows affected" into
// types.ErrNotFound so row-targeted updates behave like the single-row
// reads they logically are.
func wrapAffected(res interface {
	RowsAffected() (int64, error)
}, err error, op string) error {
	if err != nil {
		return wrapDBError(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapDBError(op+": rows affected", err)
	}
	if n == 0 {
		return wrapDBError(op, errNoRows)
	}
	return nil
}
