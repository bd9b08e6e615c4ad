package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrBadRequest signals a malformed id, body or page window.
	ErrBadRequest = errors.New("bad request")
	// ErrUnsupportedMediaType signals a missing or non-JSON content type.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	// ErrValidationFailed signals a rejected create/update/delete check.
	ErrValidationFailed = errors.New("validation failed")
	// ErrNotFound signals a missing row, a missing parent or an ownership mismatch.
	// The three cases are intentionally indistinguishable to callers.
	ErrNotFound = errors.New("not found")
	// ErrStorage signals a constraint violation or connectivity fault during a mutation.
	ErrStorage = errors.New("storage failure")
	// ErrInternal signals an unexpected failure while counting or listing.
	ErrInternal = errors.New("internal error")
)

// ValidationErrors maps a field name (or "" for the whole record) to a message.
// An empty map means the check passed.
type ValidationErrors map[string]string

// Add records a message for field, keeping the first one reported.
func (v ValidationErrors) Add(field, message string) ValidationErrors {
	if v == nil {
		v = ValidationErrors{}
	}
	if _, ok := v[field]; !ok {
		v[field] = message
	}
	return v
}

// Empty reports whether no field errors were recorded.
func (v ValidationErrors) Empty() bool { return len(v) == 0 }

// Err returns nil for an empty set, otherwise a *ValidationError.
func (v ValidationErrors) Err() error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Fields: v}
}

// ValidationError wraps ErrValidationFailed with the offending fields.
type ValidationError struct {
	Fields ValidationErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" {
			parts = append(parts, e.Fields[k])
			continue
		}
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }
