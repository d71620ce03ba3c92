package types

import "time"

// List is a named, top-level collection of items. ListKey is the stable
// external identifier callers address a list by; ID is the internal
// surrogate key used for joins.
type List struct {
	ID        int64      `json:"id"`
	ListKey   string     `json:"list_key"`
	Title     string     `json:"title"`
	Status    ListStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ListFilter narrows List listing queries.
type ListFilter struct {
	Tags            []string
	IncludeArchived bool
}

// ListProperty is a string-keyed, string-valued attribute attached to a List.
type ListProperty struct {
	ListID int64  `json:"list_id"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// Tag is a reusable, case-folded label with a display color.
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DefaultTagColor is used when a tag is created without an explicit color,
// including forced tags auto-created by Manager.CreateList.
const DefaultTagColor = "#808080"
