package resource

import (
	"context"

	"github.com/kailas-cloud/crudex/internal/domain"
	"github.com/kailas-cloud/crudex/internal/domain/page"
	"github.com/kailas-cloud/crudex/internal/domain/query"
)

// Entity is a record value exchanged between the dispatcher and storage.
// WithID returns a copy carrying the given identifier.
type Entity[E any] interface {
	WithID(id int64) E
}

// Child is an entity scoped to a parent row through a foreign key.
type Child[E any] interface {
	Entity[E]
	WithParentID(id int64) E
}

// Store defines the persistence contract every entity type implements.
// FetchOne returns domain.ErrNotFound when no row matches.
type Store[E any] interface {
	Insert(ctx context.Context, e E) (int64, error)
	FetchOne(ctx context.Context, id int64) (E, error)
	Update(ctx context.Context, e E) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, w page.Window, f query.Filter) ([]E, error)
}

// ParentStore confirms ownership of a child row with a single join.
// It returns the parent snapshot, or an error when the child does not
// belong to parentID.
type ParentStore[P any] interface {
	FetchParent(ctx context.Context, parentID, childID int64) (P, error)
}

// Finder fetches a single row by id.
type Finder[E any] interface {
	FetchOne(ctx context.Context, id int64) (E, error)
}

// Validator holds the per-entity checks run before every mutation.
// Checks are pure: they must not touch storage.
type Validator[E any] interface {
	CheckCreate(candidate E) domain.ValidationErrors
	CheckUpdate(candidate, previous E) domain.ValidationErrors
	CheckDelete(previous E) domain.ValidationErrors
}

// NoValidation accepts every mutation. Use it for entities without rules.
type NoValidation[E any] struct{}

// CheckCreate always passes.
func (NoValidation[E]) CheckCreate(E) domain.ValidationErrors { return nil }

// CheckUpdate always passes.
func (NoValidation[E]) CheckUpdate(_, _ E) domain.ValidationErrors { return nil }

// CheckDelete always passes.
func (NoValidation[E]) CheckDelete(E) domain.ValidationErrors { return nil }

// Definition binds an entity type to its storage, rules and searchable fields.
type Definition[E any] struct {
	// Name labels logs and metrics, e.g. "author".
	Name      string
	Store     Store[E]
	Validator Validator[E]
	Fields    query.Fields
}
