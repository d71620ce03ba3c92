// Package validation holds the small set of predicates the manager applies
// to caller-supplied keys and statuses before they reach storage.
package validation

import (
	"fmt"
	"regexp"

	"github.com/todoit/todoit/internal/types"
)

// keyPattern restricts list/item/tag keys to a conservative identifier
// shape: letters, digits, underscore and hyphen, not starting with a digit
// so generated keys never collide with positional arguments in the CLI.
var keyPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// Key validates a list_key, item_key or tag name candidate.
func Key(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s: %w: must not be empty", field, types.ErrInvalidArgument)
	}
	if len(value) > 200 {
		return fmt.Errorf("%s: %w: exceeds 200 characters", field, types.ErrInvalidArgument)
	}
	if !keyPattern.MatchString(value) {
		return fmt.Errorf("%s: %w: %q must start with a letter or underscore and contain only letters, digits, '_' or '-'", field, types.ErrInvalidArgument, value)
	}
	return nil
}

// ItemStatus validates that status is one of the known item statuses.
func ItemStatus(status types.ItemStatus) error {
	if !status.Valid() {
		return fmt.Errorf("status: %w: unknown status %q", types.ErrInvalidArgument, status)
	}
	return nil
}

// Position validates a caller-supplied explicit position; zero means
// "assign automatically" and is left to the caller to interpret.
func Position(position int) error {
	if position < 0 {
		return fmt.Errorf("position: %w: must not be negative", types.ErrInvalidArgument)
	}
	return nil
}

// Content validates item content is non-empty once whitespace-trimmed
// concerns are handled by the caller.
func Content(content string) error {
	if content == "" {
		return fmt.Errorf("content: %w: must not be empty", types.ErrInvalidArgument)
	}
	return nil
}
