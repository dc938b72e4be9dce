package statuspad

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a user id is not in the directory
	ErrNotFound = errors.New("not found")
	// ErrTokenMissing is returned when no credential header is presented
	ErrTokenMissing = errors.New("authentication token missing")
	// ErrTokenInvalid is returned when the presented credential does not
	// match the accepted token
	ErrTokenInvalid = errors.New("authentication token invalid")
	// ErrForbidden is returned when an authenticated identity lacks the
	// role an operation requires
	ErrForbidden = errors.New("forbidden")
	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
)

// ValidationError carries per-field reasons for a rejected request payload.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(e.Details))
	for f := range e.Details {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Details[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
