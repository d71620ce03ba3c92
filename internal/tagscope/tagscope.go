// Package tagscope implements the forced-tag visibility gate: a
// process-wide, constructor-time set of tags that restricts which lists a
// Manager instance can see or create.
package tagscope

import "strings"

// Filter holds the immutable forced-tag set captured once at Manager
// construction. Reconstructing a Filter from the environment is
// config.Load's job; Filter itself never reads the environment so its
// behavior can't shift mid-session.
type Filter struct {
	forced map[string]bool
	list   []string
}

// New builds a Filter from an already-parsed, case-folded tag list (see
// config.parseForceTags). An empty slice disables filtering entirely.
func New(tags []string) *Filter {
	f := &Filter{forced: make(map[string]bool, len(tags))}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || f.forced[t] {
			continue
		}
		f.forced[t] = true
		f.list = append(f.list, t)
	}
	return f
}

// Active reports whether any forced tags are configured. When false, every
// Visible check trivially passes.
func (f *Filter) Active() bool {
	return len(f.forced) > 0
}

// Tags returns the forced tag set in insertion order. Callers must treat
// the result as read-only.
func (f *Filter) Tags() []string {
	return f.list
}

// Visible reports whether a list carrying listTags (case-folded tag names
// assigned to it) is visible under this filter: true when filtering is
// inactive, or when listTags intersects the forced set.
func (f *Filter) Visible(listTags []string) bool {
	if !f.Active() {
		return true
	}
	for _, t := range listTags {
		if f.forced[strings.ToLower(t)] {
			return true
		}
	}
	return false
}
