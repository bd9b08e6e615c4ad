// Package app is the composition root: it binds the example entity types to
// their repositories, services and routes.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/crudex/internal/db"
	"github.com/kailas-cloud/crudex/internal/domain/library"
	"github.com/kailas-cloud/crudex/internal/domain/page"
	authorrepo "github.com/kailas-cloud/crudex/internal/repository/author"
	bookrepo "github.com/kailas-cloud/crudex/internal/repository/book"
	chiTransport "github.com/kailas-cloud/crudex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/crudex/internal/usecase/health"
	"github.com/kailas-cloud/crudex/internal/usecase/resource"
)

// Route prefixes of the example resources.
const (
	AuthorsPath = "/authors"
	BooksPath   = "/books"
)

// Options configures Handler.
type Options struct {
	BasePath string
	Limits   page.Limits
	Gatherer prometheus.Gatherer
}

// EnsureSchema creates the example tables when missing.
func EnsureSchema(ctx context.Context, d *db.DB) error {
	stmts := append(authorrepo.Schema(d.Driver()), bookrepo.Schema(d.Driver())...)
	if err := d.EnsureSchema(ctx, stmts...); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Services holds the wired resource services of the example entities.
type Services struct {
	Authors     *resource.Service[library.Author]
	Books       *resource.Service[library.Book]
	AuthorBooks *resource.NestedService[library.Book, library.Author]
	Health      *healthuc.Service
}

// NewServices binds repositories on d to their services.
func NewServices(d *db.DB, limits page.Limits) *Services {
	authors := authorrepo.New(d)
	books := bookrepo.New(d)

	authorSvc := resource.New(resource.Definition[library.Author]{
		Name:      "author",
		Store:     authors,
		Validator: library.AuthorRules{},
		Fields:    library.AuthorFields,
	}).WithLimits(limits)

	bookSvc := resource.New(resource.Definition[library.Book]{
		Name:      "book",
		Store:     books,
		Validator: library.BookRules{},
		Fields:    library.BookFields,
	}).WithLimits(limits)

	return &Services{
		Authors:     authorSvc,
		Books:       bookSvc,
		AuthorBooks: resource.NewNested[library.Book, library.Author](bookSvc, authors, books),
		Health: healthuc.New(d).
			WithCheck("author", countCheck(authors)).
			WithCheck("book", countCheck(books)),
	}
}

// Handler wires repositories, services and routes into one HTTP handler.
//
//	/authors/                      author operations
//	/authors/{parent_id}/books/    book operations, always scoped to one author
func Handler(d *db.DB, logger *zap.Logger, opts Options) http.Handler {
	svc := NewServices(d, opts.Limits)

	server := chiTransport.NewServer(svc.Health, opts.Gatherer)
	return server.Router(logger, opts.BasePath, func(r chi.Router) {
		chiTransport.Mount(r, AuthorsPath, svc.Authors)
		chiTransport.MountNested(r, AuthorsPath, BooksPath, svc.AuthorBooks)
	})
}

type counter interface {
	Count(ctx context.Context) (int64, error)
}

// countCheck reports a table as healthy when it can be counted.
func countCheck(c counter) healthuc.CheckFunc {
	return func(ctx context.Context) error {
		if _, err := c.Count(ctx); err != nil {
			return fmt.Errorf("count: %w", err)
		}
		return nil
	}
}
