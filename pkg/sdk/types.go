package crudex

import "github.com/kailas-cloud/crudex/internal/domain/library"

// Author is a top-level resource.
type Author = library.Author

// Book is a resource owned by an Author.
type Book = library.Book

// ListOptions selects one window of a list. Nil Offset and Limit use the
// defaults; Search is split on whitespace and matched against every
// searchable column; Order names one sortable column.
type ListOptions struct {
	Offset *int64
	Limit  *int64
	Search string
	Order  string
}

// Page is one window of a list result.
type Page[E any] struct {
	Items []E
	// Total is the unfiltered row count of the table.
	Total    int64
	MaxLimit int64
}

// Int64 returns a pointer to v, for ListOptions.
func Int64(v int64) *int64 { return &v }
