package types

import "time"

// Item is a task within exactly one List. ParentItemID is nil for root
// items; a non-nil value makes the item a subitem of another item in the
// same list. ItemKey is unique only among siblings (same list, same
// parent), never list-wide.
type Item struct {
	ID               int64             `json:"id"`
	ListID           int64             `json:"list_id"`
	ParentItemID     *int64            `json:"parent_item_id,omitempty"`
	ItemKey          string            `json:"item_key"`
	Content          string            `json:"content"`
	Status           ItemStatus        `json:"status"`
	Position         int               `json:"position"`
	CompletionStates map[string]bool   `json:"completion_states,omitempty"`
	StartedAt        *time.Time        `json:"started_at,omitempty"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// IsRoot reports whether the item has no parent.
func (i *Item) IsRoot() bool {
	return i.ParentItemID == nil
}

// ItemProperty is a string-keyed, string-valued attribute attached to an Item.
type ItemProperty struct {
	ItemID int64  `json:"item_id"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// ItemWithProperty is one flattened row returned by bulk property listings:
// an item key paired with a single property key/value (and, optionally,
// the item's status) rather than a nested structure.
type ItemWithProperty struct {
	ItemKey  string     `json:"item_key"`
	Key      string     `json:"key"`
	Value    string     `json:"value"`
	Status   ItemStatus `json:"status,omitempty"`
}

// TreeNode materializes one level of an item hierarchy in memory, with
// children attached recursively. It is the shape returned by
// Manager.GetItemHierarchy.
type TreeNode struct {
	Item     *Item       `json:"item"`
	Children []*TreeNode `json:"children,omitempty"`
}

// HierarchicalPosition renders "1", "1.1", "1.2", "3" style numbering for
// display; it is derived, never stored.
type HierarchicalPosition struct {
	Item *Item
	Path string
}

// ItemFilter groups the status and limit narrowing that GetListItems and
// GetAllItemsProperties take as separate arguments; neither accepts it.
type ItemFilter struct {
	Status *ItemStatus
	Limit  *int // nil means unbounded; a pointer to 0 means empty result
}
