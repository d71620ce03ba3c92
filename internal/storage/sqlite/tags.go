package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/todoit/todoit/internal/types"
)

func scanTag(row interface{ Scan(...interface{}) error }) (*types.Tag, error) {
	t := &types.Tag{}
	if err := row.Scan(&t.ID, &t.Name, &t.Color); err != nil {
		return nil, err
	}
	return t, nil
}

func (g *gateway) CreateTag(ctx context.Context, name, color string) (*types.Tag, error) {
	if color == "" {
		color = types.DefaultTagColor
	}
	res, err := g.conn.ExecContext(ctx, `
		INSERT INTO list_tags (name, color) VALUES (?, ?)
	`, name, color)
	if err != nil {
		return nil, wrapDBError(fmt.Sprintf("create tag %q", name), err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, wrapDBError("create tag: read id", err)
	}
	return &types.Tag{ID: id, Name: name, Color: color}, nil
}

func (g *gateway) GetTagByName(ctx context.Context, name string) (*types.Tag, error) {
	row := g.conn.QueryRowContext(ctx, `SELECT id, name, color FROM list_tags WHERE name = ?`, name)
	t, err := scanTag(row)
	if err != nil {
		return nil, wrapDBError(fmt.Sprintf("get tag %q", name), err)
	}
	return t, nil
}

func (g *gateway) ListTags(ctx context.Context) ([]*types.Tag, error) {
	rows, err := g.conn.QueryContext(ctx, `SELECT id, name, color FROM list_tags ORDER BY name`)
	if err != nil {
		return nil, wrapDBError("list tags", err)
	}
	defer rows.Close()

	var out []*types.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, wrapDBError("scan tag", err)
		}
		out = append(out, t)
	}
	return out, wrapDBError("iterate tags", rows.Err())
}

func (g *gateway) AddTagToList(ctx context.Context, listID, tagID int64) error {
	_, err := g.conn.ExecContext(ctx, `
		INSERT OR IGNORE INTO list_tag_assignments (list_id, tag_id) VALUES (?, ?)
	`, listID, tagID)
	if err != nil {
		return wrapDBError("add tag to list", err)
	}
	return nil
}

func (g *gateway) RemoveTagFromList(ctx context.Context, listID, tagID int64) error {
	res, err := g.conn.ExecContext(ctx, `
		DELETE FROM list_tag_assignments WHERE list_id = ? AND tag_id = ?
	`, listID, tagID)
	return wrapAffected(res, err, "remove tag from list")
}

func (g *gateway) GetTagsForList(ctx context.Context, listID int64) ([]*types.Tag, error) {
	rows, err := g.conn.QueryContext(ctx, `
		SELECT t.id, t.name, t.color
		FROM list_tags t
		JOIN list_tag_assignments a ON a.tag_id = t.id
		WHERE a.list_id = ?
		ORDER BY t.name
	`, listID)
	if err != nil {
		return nil, wrapDBError("get tags for list", err)
	}
	defer rows.Close()

	var out []*types.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, wrapDBError("scan list tag", err)
		}
		out = append(out, t)
	}
	return out, wrapDBError("iterate list tags", rows.Err())
}

func (g *gateway) GetTagNamesForList(ctx context.Context, listID int64) ([]string, error) {
	rows, err := g.conn.QueryContext(ctx, `
		SELECT t.name
		FROM list_tags t
		JOIN list_tag_assignments a ON a.tag_id = t.id
		WHERE a.list_id = ?
		ORDER BY t.name
	`, listID)
	if err != nil {
		return nil, wrapDBError("get tag names for list", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, wrapDBError("scan tag name", err)
		}
		out = append(out, name)
	}
	return out, wrapDBError("iterate tag names", rows.Err())
}

// ListKeysWithAnyTag returns the set of list ids carrying at least one of
// tagNames, used by the tag-scope filter to pre-narrow visibility without
// loading every list's full tag set.
func (g *gateway) ListKeysWithAnyTag(ctx context.Context, tagNames []string) (map[int64]bool, error) {
	out := make(map[int64]bool)
	if len(tagNames) == 0 {
		return out, nil
	}

	placeholders := make([]string, len(tagNames))
	args := make([]interface{}, len(tagNames))
	for i, name := range tagNames {
		placeholders[i] = "?"
		args[i] = name
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT a.list_id
		FROM list_tag_assignments a
		JOIN list_tags t ON t.id = a.tag_id
		WHERE t.name IN (%s)
	`, strings.Join(placeholders, ", "))

	rows, err := g.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("list keys with any tag", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, wrapDBError("scan list id", err)
		}
		out[id] = true
	}
	return out, wrapDBError("iterate list ids", rows.Err())
}
