// Package resource implements the generic create/retrieve/update/delete/list
// flow shared by every entity type, including nested (parent-scoped) resources.
package resource

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/crudex/internal/domain"
	"github.com/kailas-cloud/crudex/internal/domain/page"
	"github.com/kailas-cloud/crudex/internal/domain/query"
	"github.com/kailas-cloud/crudex/internal/logger"
)

// ListParams carries the raw list query parameters.
type ListParams struct {
	Offset *int64
	Limit  *int64
	Search string
	Order  string
}

// Page is one window of a list result.
type Page[E any] struct {
	Items []E
	Meta  page.Meta
}

// Service runs the per-operation sequences for one entity type.
type Service[E Entity[E]] struct {
	def    Definition[E]
	limits page.Limits
}

// New creates a resource service. A nil validator means no rules apply.
func New[E Entity[E]](def Definition[E]) *Service[E] {
	if def.Validator == nil {
		def.Validator = NoValidation[E]{}
	}
	return &Service[E]{def: def, limits: page.DefaultLimits()}
}

// WithLimits configures the page size bounds.
func (s *Service[E]) WithLimits(l page.Limits) *Service[E] {
	if l.Default > 0 {
		s.limits.Default = l.Default
	}
	if l.Max > 0 {
		s.limits.Max = l.Max
	}
	return s
}

// Name returns the entity name.
func (s *Service[E]) Name() string { return s.def.Name }

// Limits returns the configured page bounds.
func (s *Service[E]) Limits() page.Limits { return s.limits }

// Create validates and inserts a candidate, returning the assigned id.
func (s *Service[E]) Create(ctx context.Context, candidate E) (int64, error) {
	if err := s.def.Validator.CheckCreate(candidate).Err(); err != nil {
		return 0, fmt.Errorf("check create %s: %w", s.def.Name, err)
	}

	id, err := s.def.Store.Insert(ctx, candidate)
	if err != nil {
		return 0, storageFailure("insert "+s.def.Name, err)
	}

	logger.FromContext(ctx).Debug("resource created",
		zap.String("resource", s.def.Name),
		zap.Int64("id", id),
	)
	return id, nil
}

// Retrieve returns the row with the given id.
func (s *Service[E]) Retrieve(ctx context.Context, id int64) (E, error) {
	e, err := s.def.Store.FetchOne(ctx, id)
	if err != nil {
		var zero E
		return zero, s.notFound(ctx, "fetch", id, err)
	}
	return e, nil
}

// Update validates a candidate against the stored row and writes it.
// The candidate's id is replaced by id.
func (s *Service[E]) Update(ctx context.Context, id int64, candidate E) (E, error) {
	var zero E

	previous, err := s.def.Store.FetchOne(ctx, id)
	if err != nil {
		return zero, s.notFound(ctx, "fetch", id, err)
	}

	candidate = candidate.WithID(id)
	if err := s.def.Validator.CheckUpdate(candidate, previous).Err(); err != nil {
		return zero, fmt.Errorf("check update %s %d: %w", s.def.Name, id, err)
	}

	if err := s.def.Store.Update(ctx, candidate); err != nil {
		return zero, storageFailure(fmt.Sprintf("update %s %d", s.def.Name, id), err)
	}

	logger.FromContext(ctx).Debug("resource updated",
		zap.String("resource", s.def.Name),
		zap.Int64("id", id),
	)
	return candidate, nil
}

// Delete validates and removes the row with the given id.
func (s *Service[E]) Delete(ctx context.Context, id int64) error {
	previous, err := s.def.Store.FetchOne(ctx, id)
	if err != nil {
		return s.notFound(ctx, "fetch", id, err)
	}

	if err := s.def.Validator.CheckDelete(previous).Err(); err != nil {
		return fmt.Errorf("check delete %s %d: %w", s.def.Name, id, err)
	}

	if err := s.def.Store.Delete(ctx, id); err != nil {
		return storageFailure(fmt.Sprintf("delete %s %d", s.def.Name, id), err)
	}

	logger.FromContext(ctx).Debug("resource deleted",
		zap.String("resource", s.def.Name),
		zap.Int64("id", id),
	)
	return nil
}

// List returns one window of rows matching the search parameters.
func (s *Service[E]) List(ctx context.Context, p ListParams) (Page[E], error) {
	return s.list(ctx, p, nil)
}

func (s *Service[E]) list(ctx context.Context, p ListParams, parentID *int64) (Page[E], error) {
	w, err := page.New(p.Offset, p.Limit, s.limits)
	if err != nil {
		return Page[E]{}, fmt.Errorf("list %s: %w", s.def.Name, err)
	}

	total, err := s.def.Store.Count(ctx)
	if err != nil {
		return Page[E]{}, fmt.Errorf("count %s: %w: %w", s.def.Name, domain.ErrInternal, err)
	}
	if total <= 0 {
		return Page[E]{}, fmt.Errorf("count %s is zero: %w", s.def.Name, domain.ErrNotFound)
	}

	f, err := query.Compile(query.Request{
		Search:   p.Search,
		Order:    p.Order,
		ParentID: parentID,
	}, s.def.Fields)
	if err != nil {
		return Page[E]{}, fmt.Errorf("compile %s filter: %w: %w", s.def.Name, domain.ErrInternal, err)
	}

	items, err := s.def.Store.List(ctx, w, f)
	if err != nil {
		return Page[E]{}, fmt.Errorf("list %s: %w: %w", s.def.Name, domain.ErrInternal, err)
	}
	if len(items) == 0 {
		return Page[E]{}, fmt.Errorf("list %s is empty: %w", s.def.Name, domain.ErrNotFound)
	}

	return Page[E]{
		Items: items,
		Meta: page.Meta{
			Total:    total,
			Size:     len(items),
			MaxLimit: s.limits.Max,
		},
	}, nil
}

// notFound collapses any fetch failure into domain.ErrNotFound.
func (s *Service[E]) notFound(ctx context.Context, op string, id int64, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s %s %d: %w", op, s.def.Name, id, err)
	}
	logger.FromContext(ctx).Warn("fetch failed, reporting not found",
		zap.String("resource", s.def.Name),
		zap.Int64("id", id),
		zap.Error(err),
	)
	return fmt.Errorf("%s %s %d: %w: %w", op, s.def.Name, id, domain.ErrNotFound, err)
}

func storageFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}
