// Package store provides error definitions for store mutations
package store

import (
	"fmt"
)

// ValidationError reports a Set rejected by the store's rule set.
type ValidationError struct {
	// Field names the first rule-violating field
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on field %q", e.Field)
}
