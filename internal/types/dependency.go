package types

import "time"

// Dependency is a directed edge: DependentItemID requires RequiredItemID to
// reach StatusCompleted before the dependent can start. Endpoints may live
// in different lists.
type Dependency struct {
	DependentItemID int64     `json:"dependent_item_id"`
	RequiredItemID  int64     `json:"required_item_id"`
	CreatedAt       time.Time `json:"created_at"`
}
