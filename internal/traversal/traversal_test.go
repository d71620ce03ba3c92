package traversal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/todoit/todoit/internal/storage"
	"github.com/todoit/todoit/internal/types"
)

// fakeGateway is a minimal in-memory storage.Gateway covering only what the
// traversal algorithms read: items and outgoing dependency edges. Every
// other method is unused by this package and returns a "not implemented"
// error if ever called.
type fakeGateway struct {
	items []*types.Item
	edges map[int64][]int64 // dependentID -> required item ids
}

var _ storage.Gateway = (*fakeGateway)(nil)

func (f *fakeGateway) GetAllItems(ctx context.Context, listID int64) ([]*types.Item, error) {
	return f.items, nil
}

func (f *fakeGateway) GetBlockers(ctx context.Context, itemID int64) ([]*types.Item, error) {
	byID := make(map[int64]*types.Item, len(f.items))
	for _, it := range f.items {
		byID[it.ID] = it
	}
	var out []*types.Item
	for _, req := range f.edges[itemID] {
		if it, ok := byID[req]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeGateway) OutgoingEdges(ctx context.Context, itemID int64) ([]int64, error) {
	return f.edges[itemID], nil
}

func notImplemented() error { return errors.New("not implemented by fakeGateway") }

func (f *fakeGateway) CreateList(ctx context.Context, list *types.List) error {
	return notImplemented()
}
func (f *fakeGateway) GetList(ctx context.Context, listKey string) (*types.List, error) {
	return nil, notImplemented()
}
func (f *fakeGateway) GetListByID(ctx context.Context, id int64) (*types.List, error) {
	return nil, notImplemented()
}
func (f *fakeGateway) ListAll(ctx context.Context, includeArchived bool) ([]*types.List, error) {
	return nil, notImplemented()
}
func (f *fakeGateway) UpdateListStatus(ctx context.Context, id int64, status types.ListStatus) error {
	return notImplemented()
}
func (f *fakeGateway) RenameList(ctx context.Context, id int64, title string) error {
	return notImplemented()
}
func (f *fakeGateway) DeleteListCascade(ctx context.Context, id int64) error { return notImplemented() }
func (f *fakeGateway) CreateItem(ctx context.Context, item *types.Item) error {
	return notImplemented()
}
func (f *fakeGateway) CreateItems(ctx context.Context, items []*types.Item) error {
	return notImplemented()
}
func (f *fakeGateway) GetItem(ctx context.Context, listID int64, parentItemID *int64, itemKey string) (*types.Item, error) {
	return nil, notImplemented()
}
func (f *fakeGateway) GetItemByID(ctx context.Context, id int64) (*types.Item, error) {
	return nil, notImplemented()
}
func (f *fakeGateway) GetChildren(ctx context.Context, listID int64, parentItemID *int64) ([]*types.Item, error) {
	return nil, notImplemented()
}
func (f *fakeGateway) NextPosition(ctx context.Context, listID int64, parentItemID *int64) (int, error) {
	return 0, notImplemented()
}
func (f *fakeGateway) UpdateItemStatus(ctx context.Context, id int64, status types.ItemStatus, states map[string]bool, startedAt, completedAt *time.Time) error {
	return notImplemented()
}
func (f *fakeGateway) UpdateItemContent(ctx context.Context, id int64, content string) error {
	return notImplemented()
}
func (f *fakeGateway) RenameItem(ctx context.Context, id int64, newKey string) error {
	return notImplemented()
}
func (f *fakeGateway) MoveItem(ctx context.Context, id int64, newParentItemID *int64, newPosition int) error {
	return notImplemented()
}
func (f *fakeGateway) DeleteItemCascade(ctx context.Context, id int64) error { return notImplemented() }
func (f *fakeGateway) SetListProperty(ctx context.Context, listID int64, key, value string) error {
	return notImplemented()
}
func (f *fakeGateway) GetListProperty(ctx context.Context, listID int64, key string) (string, bool, error) {
	return "", false, notImplemented()
}
func (f *fakeGateway) GetListProperties(ctx context.Context, listID int64) (map[string]string, error) {
	return nil, notImplemented()
}
func (f *fakeGateway) DeleteListProperty(ctx context.Context, listID int64, key string) error {
	return notImplemented()
}
func (f *fakeGateway) SetItemProperty(ctx context.Context, itemID int64, key, value string) error {
	return notImplemented()
}
func (f *fakeGateway) GetItemProperty(ctx context.Context, itemID int64, key string) (string, bool, error) {
	return "", false, notImplemented()
}
func (f *fakeGateway) GetItemProperties(ctx context.Context, itemID int64) (map[string]string, error) {
	return nil, notImplemented()
}
func (f *fakeGateway) DeleteItemProperty(ctx context.Context, itemID int64, key string) error {
	return notImplemented()
}
func (f *fakeGateway) GetAllItemsProperties(ctx context.Context, listID int64, status *types.ItemStatus, limit *int) ([]types.ItemWithProperty, error) {
	return nil, notImplemented()
}
func (f *fakeGateway) AddDependency(ctx context.Context, dep *types.Dependency) error {
	return notImplemented()
}
func (f *fakeGateway) RemoveDependency(ctx context.Context, dependentID, requiredID int64) error {
	return notImplemented()
}
func (f *fakeGateway) DependencyExists(ctx context.Context, dependentID, requiredID int64) (bool, error) {
	return false, notImplemented()
}
func (f *fakeGateway) GetBlockedBy(ctx context.Context, itemID int64) ([]*types.Item, error) {
	return nil, notImplemented()
}
func (f *fakeGateway) CreateTag(ctx context.Context, name, color string) (*types.Tag, error) {
	return nil, notImplemented()
}
func (f *fakeGateway) GetTagByName(ctx context.Context, name string) (*types.Tag, error) {
	return nil, notImplemented()
}
func (f *fakeGateway) ListTags(ctx context.Context) ([]*types.Tag, error) {
	return nil, notImplemented()
}
func (f *fakeGateway) AddTagToList(ctx context.Context, listID, tagID int64) error {
	return notImplemented()
}
func (f *fakeGateway) RemoveTagFromList(ctx context.Context, listID, tagID int64) error {
	return notImplemented()
}
func (f *fakeGateway) GetTagsForList(ctx context.Context, listID int64) ([]*types.Tag, error) {
	return nil, notImplemented()
}
func (f *fakeGateway) GetTagNamesForList(ctx context.Context, listID int64) ([]string, error) {
	return nil, notImplemented()
}
func (f *fakeGateway) ListKeysWithAnyTag(ctx context.Context, tagNames []string) (map[int64]bool, error) {
	return nil, notImplemented()
}
func (f *fakeGateway) AppendHistory(ctx context.Context, entry *types.HistoryEntry) error {
	return notImplemented()
}
func (f *fakeGateway) GetItemHistory(ctx context.Context, itemID int64) ([]*types.HistoryEntry, error) {
	return nil, notImplemented()
}
func (f *fakeGateway) GetListHistory(ctx context.Context, listID int64) ([]*types.HistoryEntry, error) {
	return nil, notImplemented()
}

func item(id int64, parent *int64, status types.ItemStatus, position int) *types.Item {
	return &types.Item{ID: id, ParentItemID: parent, Status: status, Position: position}
}

func ptr(v int64) *int64 { return &v }

func TestHierarchicalOrderInterleavesSubtrees(t *testing.T) {
	items := []*types.Item{
		item(1, nil, types.StatusPending, 1),
		item(2, nil, types.StatusPending, 2),
		item(3, ptr(1), types.StatusPending, 1),
		item(4, ptr(1), types.StatusPending, 2),
	}
	ordered := HierarchicalOrder(items)
	var ids []int64
	for _, it := range ordered {
		ids = append(ids, it.ID)
	}
	want := []int64{1, 3, 4, 2}
	if len(ids) != len(want) {
		t.Fatalf("HierarchicalOrder() returned %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("HierarchicalOrder() = %v, want %v", ids, want)
		}
	}
}

func TestNextPendingSkipsBlocked(t *testing.T) {
	g := &fakeGateway{
		items: []*types.Item{
			item(1, nil, types.StatusPending, 1),
			item(2, nil, types.StatusPending, 2),
		},
		edges: map[int64][]int64{
			1: {2}, // item 1 requires item 2
		},
	}
	got, err := NextPending(context.Background(), g, 1)
	if err != nil {
		t.Fatalf("NextPending() error = %v", err)
	}
	if got == nil || got.ID != 2 {
		t.Fatalf("NextPending() = %v, want item 2 (item 1 is blocked)", got)
	}
}

func TestNextPendingNothingActionable(t *testing.T) {
	g := &fakeGateway{
		items: []*types.Item{
			item(1, nil, types.StatusCompleted, 1),
		},
	}
	got, err := NextPending(context.Background(), g, 1)
	if err != nil {
		t.Fatalf("NextPending() error = %v", err)
	}
	if got != nil {
		t.Fatalf("NextPending() = %v, want nil", got)
	}
}

func TestNextPendingHierarchicalPrioritizesInProgressSubtree(t *testing.T) {
	// Root 1 has an in-progress child (3) and a pending child (4); root 2
	// is a plain pending leaf that sorts after root 1 by position. Root 1's
	// pending child should win even though it is not root 1's first child.
	g := &fakeGateway{
		items: []*types.Item{
			item(1, nil, types.StatusInProgress, 1),
			item(2, nil, types.StatusPending, 2),
			item(3, ptr(1), types.StatusInProgress, 1),
			item(4, ptr(1), types.StatusPending, 2),
		},
	}
	got, err := NextPendingHierarchical(context.Background(), g, 1)
	if err != nil {
		t.Fatalf("NextPendingHierarchical() error = %v", err)
	}
	if got == nil || got.ID != 4 {
		t.Fatalf("NextPendingHierarchical() = %v, want item 4", got)
	}
}

func TestNextPendingHierarchicalFallsThroughToLaterRoot(t *testing.T) {
	g := &fakeGateway{
		items: []*types.Item{
			item(1, nil, types.StatusCompleted, 1),
			item(2, nil, types.StatusPending, 2),
		},
	}
	got, err := NextPendingHierarchical(context.Background(), g, 1)
	if err != nil {
		t.Fatalf("NextPendingHierarchical() error = %v", err)
	}
	if got == nil || got.ID != 2 {
		t.Fatalf("NextPendingHierarchical() = %v, want item 2", got)
	}
}

func TestWouldCycleDirectSelfReference(t *testing.T) {
	g := &fakeGateway{edges: map[int64][]int64{}}
	cycle, err := WouldCycle(context.Background(), g, 1, 1)
	if err != nil {
		t.Fatalf("WouldCycle() error = %v", err)
	}
	if !cycle {
		t.Fatal("WouldCycle() = false, want true for a self-referential edge")
	}
}

func TestWouldCycleTransitive(t *testing.T) {
	// Existing edges: 2 requires 3, 3 requires 1. Adding "1 requires 2" would
	// close the loop 1 -> 2 -> 3 -> 1.
	g := &fakeGateway{edges: map[int64][]int64{
		2: {3},
		3: {1},
	}}
	cycle, err := WouldCycle(context.Background(), g, 1, 2)
	if err != nil {
		t.Fatalf("WouldCycle() error = %v", err)
	}
	if !cycle {
		t.Fatal("WouldCycle() = false, want true for a transitive cycle")
	}
}

func TestWouldCycleIndependentChains(t *testing.T) {
	g := &fakeGateway{edges: map[int64][]int64{
		5: {6},
	}}
	cycle, err := WouldCycle(context.Background(), g, 1, 5)
	if err != nil {
		t.Fatalf("WouldCycle() error = %v", err)
	}
	if cycle {
		t.Fatal("WouldCycle() = true, want false for unrelated chains")
	}
}

func TestIsBlocked(t *testing.T) {
	g := &fakeGateway{
		items: []*types.Item{
			item(1, nil, types.StatusPending, 1),
			item(2, nil, types.StatusCompleted, 2),
			item(3, nil, types.StatusPending, 3),
		},
		edges: map[int64][]int64{
			1: {2}, // satisfied
			3: {2, 1},
		},
	}
	blocked, err := IsBlocked(context.Background(), g, 1)
	if err != nil {
		t.Fatalf("IsBlocked(1) error = %v", err)
	}
	if blocked {
		t.Error("IsBlocked(1) = true, want false: its only blocker is completed")
	}

	blocked, err = IsBlocked(context.Background(), g, 3)
	if err != nil {
		t.Fatalf("IsBlocked(3) error = %v", err)
	}
	if !blocked {
		t.Error("IsBlocked(3) = false, want true: item 1 is still pending")
	}
}
