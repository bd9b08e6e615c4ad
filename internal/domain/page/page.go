// Package page holds list window arithmetic.
package page

import (
	"fmt"

	"github.com/kailas-cloud/crudex/internal/domain"
)

// Paging defaults.
const (
	DefaultLimit int64 = 50
	MaxLimit     int64 = 250
)

// Limits bounds a window. The zero value uses the package defaults.
type Limits struct {
	Default int64
	Max     int64
}

// DefaultLimits returns the package defaults.
func DefaultLimits() Limits {
	return Limits{Default: DefaultLimit, Max: MaxLimit}
}

func (l Limits) normalized() Limits {
	if l.Max <= 0 {
		l.Max = MaxLimit
	}
	if l.Default <= 0 || l.Default > l.Max {
		l.Default = min(DefaultLimit, l.Max)
	}
	return l
}

// Window is an offset/limit slice of a list result.
type Window struct {
	offset int64
	limit  int64
}

// New validates offset and limit; nil values take defaults.
// A negative offset or a limit outside [1, max] fails with domain.ErrBadRequest.
func New(offset, limit *int64, l Limits) (Window, error) {
	l = l.normalized()

	w := Window{offset: 0, limit: l.Default}
	if offset != nil {
		w.offset = *offset
	}
	if limit != nil {
		w.limit = *limit
	}

	if w.offset < 0 {
		return Window{}, fmt.Errorf("offset must be >= 0, got %d: %w", w.offset, domain.ErrBadRequest)
	}
	if w.limit < 1 || w.limit > l.Max {
		return Window{}, fmt.Errorf("limit must be between 1 and %d, got %d: %w", l.Max, w.limit, domain.ErrBadRequest)
	}
	return w, nil
}

// Offset returns the number of rows skipped.
func (w Window) Offset() int64 { return w.offset }

// Limit returns the maximum number of rows returned.
func (w Window) Limit() int64 { return w.limit }

// Meta describes a returned page for response headers.
type Meta struct {
	Total    int64
	Size     int
	MaxLimit int64
}
