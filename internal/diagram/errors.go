package diagram

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every storage backend. Backends wrap these
// with context; callers test with errors.Is.
var (
	// ErrNotFound means an operation targeted an id absent from the
	// active backend.
	ErrNotFound = errors.New("diagram not found")

	// ErrQuotaExceeded means the local vault rejected a write because
	// it would exceed the configured storage budget.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// ValidationError describes a field value rejected before any
// persistence attempt.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
