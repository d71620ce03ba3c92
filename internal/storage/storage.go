// Package storage defines the database gateway contract: typed CRUD
// primitives per entity, eager-load helpers, bulk operations and the
// cascade-delete enumeration, all scoped to a single transaction.
// internal/storage/sqlite provides the concrete backend.
package storage

import (
	"context"
	"time"

	"github.com/todoit/todoit/internal/types"
)

// Store opens transactions against the underlying database. A single
// Store is safe for concurrent use by multiple goroutines; each call to
// WithTx gets its own transaction.
type Store interface {
	// WithTx runs fn inside a single write transaction. fn receives a
	// Gateway scoped to that transaction. If fn returns an error (or
	// panics), the transaction is rolled back; otherwise it is committed.
	// No row read through the Gateway participates in a write from a
	// different call to WithTx.
	WithTx(ctx context.Context, fn func(ctx context.Context, g Gateway) error) error

	// Close releases the underlying database handle.
	Close() error
}

// Gateway is the set of typed primitives available within one transaction.
// Every method either succeeds or leaves the enclosing transaction
// unaffected; the caller (internal/manager) is responsible for choosing
// which combination of calls constitutes one atomic operation.
type Gateway interface {
	// Lists
	CreateList(ctx context.Context, list *types.List) error
	GetList(ctx context.Context, listKey string) (*types.List, error)
	GetListByID(ctx context.Context, id int64) (*types.List, error)
	ListAll(ctx context.Context, includeArchived bool) ([]*types.List, error)
	UpdateListStatus(ctx context.Context, id int64, status types.ListStatus) error
	RenameList(ctx context.Context, id int64, title string) error
	DeleteListCascade(ctx context.Context, id int64) error

	// Items. A nil parentItemID means "root item"; GetItem/GetChildren
	// distinguish root items from subitems strictly by this pointer so
	// callers can never address a subitem without its parent key.
	CreateItem(ctx context.Context, item *types.Item) error
	CreateItems(ctx context.Context, items []*types.Item) error
	GetItem(ctx context.Context, listID int64, parentItemID *int64, itemKey string) (*types.Item, error)
	GetItemByID(ctx context.Context, id int64) (*types.Item, error)
	GetChildren(ctx context.Context, listID int64, parentItemID *int64) ([]*types.Item, error)
	GetAllItems(ctx context.Context, listID int64) ([]*types.Item, error)
	NextPosition(ctx context.Context, listID int64, parentItemID *int64) (int, error)
	UpdateItemStatus(ctx context.Context, id int64, status types.ItemStatus, states map[string]bool, startedAt, completedAt *time.Time) error
	UpdateItemContent(ctx context.Context, id int64, content string) error
	RenameItem(ctx context.Context, id int64, newKey string) error
	MoveItem(ctx context.Context, id int64, newParentItemID *int64, newPosition int) error
	DeleteItemCascade(ctx context.Context, id int64) error

	// Properties
	SetListProperty(ctx context.Context, listID int64, key, value string) error
	GetListProperty(ctx context.Context, listID int64, key string) (string, bool, error)
	GetListProperties(ctx context.Context, listID int64) (map[string]string, error)
	DeleteListProperty(ctx context.Context, listID int64, key string) error
	SetItemProperty(ctx context.Context, itemID int64, key, value string) error
	GetItemProperty(ctx context.Context, itemID int64, key string) (string, bool, error)
	GetItemProperties(ctx context.Context, itemID int64) (map[string]string, error)
	DeleteItemProperty(ctx context.Context, itemID int64, key string) error
	GetAllItemsProperties(ctx context.Context, listID int64, status *types.ItemStatus, limit *int) ([]types.ItemWithProperty, error)

	// Dependencies
	AddDependency(ctx context.Context, dep *types.Dependency) error
	RemoveDependency(ctx context.Context, dependentID, requiredID int64) error
	DependencyExists(ctx context.Context, dependentID, requiredID int64) (bool, error)
	GetBlockers(ctx context.Context, itemID int64) ([]*types.Item, error)
	GetBlockedBy(ctx context.Context, itemID int64) ([]*types.Item, error)
	OutgoingEdges(ctx context.Context, itemID int64) ([]int64, error)

	// Tags
	CreateTag(ctx context.Context, name, color string) (*types.Tag, error)
	GetTagByName(ctx context.Context, name string) (*types.Tag, error)
	ListTags(ctx context.Context) ([]*types.Tag, error)
	AddTagToList(ctx context.Context, listID, tagID int64) error
	RemoveTagFromList(ctx context.Context, listID, tagID int64) error
	GetTagsForList(ctx context.Context, listID int64) ([]*types.Tag, error)
	GetTagNamesForList(ctx context.Context, listID int64) ([]string, error)
	ListKeysWithAnyTag(ctx context.Context, tagNames []string) (map[int64]bool, error)

	// History
	AppendHistory(ctx context.Context, entry *types.HistoryEntry) error
	GetItemHistory(ctx context.Context, itemID int64) ([]*types.HistoryEntry, error)
	GetListHistory(ctx context.Context, listID int64) ([]*types.HistoryEntry, error)
}
