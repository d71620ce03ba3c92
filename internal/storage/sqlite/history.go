package sqlite

import (
	"context"
	"database/sql"

	"github.com/todoit/todoit/internal/types"
)

func (g *gateway) AppendHistory(ctx context.Context, entry *types.HistoryEntry) error {
	res, err := g.conn.ExecContext(ctx, `
		INSERT INTO history (entity_type, entity_id, action, old_value, new_value, actor)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.EntityType, entry.EntityID, entry.Action,
		nullableString(entry.OldValue), nullableString(entry.NewValue), nullableString(entry.Actor))
	if err != nil {
		return wrapDBError("append history", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return wrapDBError("append history: read id", err)
	}
	entry.ID = id

	row := g.conn.QueryRowContext(ctx, `SELECT timestamp FROM history WHERE id = ?`, id)
	return wrapDBError("read history timestamp", row.Scan(&entry.Timestamp))
}

func scanHistoryEntry(row interface{ Scan(...interface{}) error }) (*types.HistoryEntry, error) {
	var h types.HistoryEntry
	var oldValue, newValue, actor sql.NullString
	if err := row.Scan(&h.ID, &h.EntityType, &h.EntityID, &h.Action, &oldValue, &newValue, &actor, &h.Timestamp); err != nil {
		return nil, err
	}
	h.OldValue = oldValue.String
	h.NewValue = newValue.String
	h.Actor = actor.String
	return &h, nil
}

func (g *gateway) GetItemHistory(ctx context.Context, itemID int64) ([]*types.HistoryEntry, error) {
	rows, err := g.conn.QueryContext(ctx, `
		SELECT id, entity_type, entity_id, action, old_value, new_value, actor, timestamp
		FROM history
		WHERE entity_type = 'item' AND entity_id = ?
		ORDER BY timestamp DESC, id DESC
	`, itemID)
	if err != nil {
		return nil, wrapDBError("get item history", err)
	}
	defer rows.Close()
	return scanHistoryEntries(rows)
}

func (g *gateway) GetListHistory(ctx context.Context, listID int64) ([]*types.HistoryEntry, error) {
	rows, err := g.conn.QueryContext(ctx, `
		SELECT id, entity_type, entity_id, action, old_value, new_value, actor, timestamp
		FROM history
		WHERE entity_type = 'list' AND entity_id = ?
		ORDER BY timestamp DESC, id DESC
	`, listID)
	if err != nil {
		return nil, wrapDBError("get list history", err)
	}
	defer rows.Close()
	return scanHistoryEntries(rows)
}

func scanHistoryEntries(rows *sql.Rows) ([]*types.HistoryEntry, error) {
	var out []*types.HistoryEntry
	for rows.Next() {
		h, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, wrapDBError("scan history entry", err)
		}
		out = append(out, h)
	}
	return out, wrapDBError("iterate history", rows.Err())
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
