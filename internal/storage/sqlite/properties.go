package sqlite

import (
	"context"
	"fmt"

	"github.com/todoit/todoit/internal/types"
)

func (g *gateway) SetListProperty(ctx context.Context, listID int64, key, value string) error {
	_, err := g.conn.ExecContext(ctx, `
		INSERT INTO list_properties (list_id, key, value) VALUES (?, ?, ?)
		ON CONFLICT(list_id, key) DO UPDATE SET value = excluded.value
	`, listID, key, value)
	if err != nil {
		return wrapDBError(fmt.Sprintf("set list property %q", key), err)
	}
	return nil
}

func (g *gateway) GetListProperty(ctx context.Context, listID int64, key string) (string, bool, error) {
	var value string
	err := g.conn.QueryRowContext(ctx, `
		SELECT value FROM list_properties WHERE list_id = ? AND key = ?
	`, listID, key).Scan(&value)
	if types.Is(wrapDBError("get list property", err), types.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapDBError(fmt.Sprintf("get list property %q", key), err)
	}
	return value, true, nil
}

func (g *gateway) GetListProperties(ctx context.Context, listID int64) (map[string]string, error) {
	rows, err := g.conn.QueryContext(ctx, `
		SELECT key, value FROM list_properties WHERE list_id = ? ORDER BY key
	`, listID)
	if err != nil {
		return nil, wrapDBError("get list properties", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, wrapDBError("scan list property", err)
		}
		out[k] = v
	}
	return out, wrapDBError("iterate list properties", rows.Err())
}

func (g *gateway) DeleteListProperty(ctx context.Context, listID int64, key string) error {
	res, err := g.conn.ExecContext(ctx, `
		DELETE FROM list_properties WHERE list_id = ? AND key = ?
	`, listID, key)
	return wrapAffected(res, err, "delete list property")
}

func (g *gateway) SetItemProperty(ctx context.Context, itemID int64, key, value string) error {
	_, err := g.conn.ExecContext(ctx, `
		INSERT INTO item_properties (item_id, key, value) VALUES (?, ?, ?)
		ON CONFLICT(item_id, key) DO UPDATE SET value = excluded.value
	`, itemID, key, value)
	if err != nil {
		return wrapDBError(fmt.Sprintf("set item property %q", key), err)
	}
	return nil
}

func (g *gateway) GetItemProperty(ctx context.Context, itemID int64, key string) (string, bool, error) {
	var value string
	err := g.conn.QueryRowContext(ctx, `
		SELECT value FROM item_properties WHERE item_id = ? AND key = ?
	`, itemID, key).Scan(&value)
	if types.Is(wrapDBError("get item property", err), types.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapDBError(fmt.Sprintf("get item property %q", key), err)
	}
	return value, true, nil
}

func (g *gateway) GetItemProperties(ctx context.Context, itemID int64) (map[string]string, error) {
	rows, err := g.conn.QueryContext(ctx, `
		SELECT key, value FROM item_properties WHERE item_id = ? ORDER BY key
	`, itemID)
	if err != nil {
		return nil, wrapDBError("get item properties", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, wrapDBError("scan item property", err)
		}
		out[k] = v
	}
	return out, wrapDBError("iterate item properties", rows.Err())
}

func (g *gateway) DeleteItemProperty(ctx context.Context, itemID int64, key string) error {
	res, err := g.conn.ExecContext(ctx, `
		DELETE FROM item_properties WHERE item_id = ? AND key = ?
	`, itemID, key)
	return wrapAffected(res, err, "delete item property")
}

// GetAllItemsProperties flattens (item_key, property_key, property_value,
// status) across an entire list, ordered by hierarchical traversal order
// and then by property key ascending within each item. limit, when
// non-nil, bounds the number of items considered (not rows); *limit == 0
// yields an empty result.
func (g *gateway) GetAllItemsProperties(ctx context.Context, listID int64, status *types.ItemStatus, limit *int) ([]types.ItemWithProperty, error) {
	if limit != nil && *limit == 0 {
		return nil, nil
	}

	items, err := g.GetAllItems(ctx, listID)
	if err != nil {
		return nil, err
	}
	ordered := hierarchicalOrder(items)

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

	var out []types.ItemWithProperty
	for _, it := range filtered {
		rows, err := g.conn.QueryContext(ctx, `
			SELECT key, value FROM item_properties WHERE item_id = ? ORDER BY key
		`, it.ID)
		if err != nil {
			return nil, wrapDBError("get all items properties: query", err)
		}
		for rows.Next() {
			var k, v string
			if err := rows.Scan(&k, &v); err != nil {
				rows.Close()
				return nil, wrapDBError("get all items properties: scan", err)
			}
			out = append(out, types.ItemWithProperty{
				ItemKey: it.ItemKey,
				Key:     k,
				Value:   v,
				Status:  it.Status,
			})
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, wrapDBError("get all items properties: iterate", err)
		}
		rows.Close()
	}
	return out, nil
}
