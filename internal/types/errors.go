package types

import "errors"

// Sentinel errors for the invariant-violation taxonomy. Manager and storage
// code wraps these with fmt.Errorf("...: %w", ...) for context; callers
// should match with errors.Is.
var (
	// ErrNotFound indicates the requested list/item/tag/dependency does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotFoundUnderParent indicates an item key exists, but not under the
	// parent key the caller supplied.
	ErrNotFoundUnderParent = errors.New("not found under parent")

	// ErrAlreadyExists indicates a duplicate key at the scope of uniqueness.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidArgument indicates a malformed key, unknown status, or other
	// caller-supplied value that fails validation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrHasSubitems indicates a manual status change was attempted on a
	// non-leaf item; its status is derived instead.
	ErrHasSubitems = errors.New("item has subitems")

	// ErrIncompletePrecondition indicates an archive was attempted without
	// force while items remain incomplete.
	ErrIncompletePrecondition = errors.New("incomplete precondition")

	// ErrWouldCycle indicates a dependency insertion would create a cycle.
	ErrWouldCycle = errors.New("would create dependency cycle")

	// ErrAccessDenied indicates the tag-scope filter excludes the target list.
	// Manager operations surface this as ErrNotFound to avoid leaking existence.
	ErrAccessDenied = errors.New("access denied")

	// ErrStorage wraps an underlying database error that isn't one of the
	// above invariant violations.
	ErrStorage = errors.New("storage error")
)

// Is reports whether err is, or wraps, target. It's a thin wrapper over
// errors.Is kept here so call sites can say types.Is(err, types.ErrNotFound)
// without an extra "errors" import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
