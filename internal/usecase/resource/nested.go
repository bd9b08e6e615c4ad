package resource

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/crudex/internal/domain"
	"github.com/kailas-cloud/crudex/internal/logger"
)

// NestedService runs the sub_* operations for a child entity E owned by
// parent entity P. Every operation checks the parent first; any failure of
// that check is reported as domain.ErrNotFound without further detail.
type NestedService[E Child[E], P any] struct {
	children *Service[E]
	parents  Finder[P]
	owner    ParentStore[P]
}

// NewNested creates a nested service on top of the child's flat service.
func NewNested[E Child[E], P any](children *Service[E], parents Finder[P], owner ParentStore[P]) *NestedService[E, P] {
	return &NestedService[E, P]{children: children, parents: parents, owner: owner}
}

// Children returns the underlying flat service.
func (s *NestedService[E, P]) Children() *Service[E] { return s.children }

// MatchParent confirms that childID belongs to parentID and returns the parent.
func (s *NestedService[E, P]) MatchParent(ctx context.Context, parentID, childID int64) (P, error) {
	p, err := s.owner.FetchParent(ctx, parentID, childID)
	if err != nil {
		var zero P
		return zero, s.collapse(ctx, "match parent", parentID, err, zap.Int64("child_id", childID))
	}
	return p, nil
}

func (s *NestedService[E, P]) requireParent(ctx context.Context, parentID int64) error {
	if _, err := s.parents.FetchOne(ctx, parentID); err != nil {
		return s.collapse(ctx, "fetch parent", parentID, err)
	}
	return nil
}

// Create inserts a child under parentID. The candidate's foreign key is
// overwritten with parentID.
func (s *NestedService[E, P]) Create(ctx context.Context, parentID int64, candidate E) (int64, error) {
	if err := s.requireParent(ctx, parentID); err != nil {
		return 0, err
	}
	return s.children.Create(ctx, candidate.WithParentID(parentID))
}

// Retrieve returns child id if it belongs to parentID.
func (s *NestedService[E, P]) Retrieve(ctx context.Context, parentID, id int64) (E, error) {
	if _, err := s.MatchParent(ctx, parentID, id); err != nil {
		var zero E
		return zero, err
	}
	return s.children.Retrieve(ctx, id)
}

// Update writes child id if it belongs to parentID. The child stays under parentID.
func (s *NestedService[E, P]) Update(ctx context.Context, parentID, id int64, candidate E) (E, error) {
	if _, err := s.MatchParent(ctx, parentID, id); err != nil {
		var zero E
		return zero, err
	}
	return s.children.Update(ctx, id, candidate.WithParentID(parentID))
}

// Delete removes child id if it belongs to parentID.
func (s *NestedService[E, P]) Delete(ctx context.Context, parentID, id int64) error {
	if _, err := s.MatchParent(ctx, parentID, id); err != nil {
		return err
	}
	return s.children.Delete(ctx, id)
}

// List returns the children of parentID matching the search parameters.
func (s *NestedService[E, P]) List(ctx context.Context, parentID int64, p ListParams) (Page[E], error) {
	if err := s.requireParent(ctx, parentID); err != nil {
		return Page[E]{}, err
	}
	return s.children.list(ctx, p, &parentID)
}

func (s *NestedService[E, P]) collapse(ctx context.Context, op string, parentID int64, err error, fields ...zap.Field) error {
	if !errors.Is(err, domain.ErrNotFound) {
		logger.FromContext(ctx).Warn("parent check failed, reporting not found",
			append([]zap.Field{
				zap.String("resource", s.children.Name()),
				zap.Int64("parent_id", parentID),
				zap.Error(err),
			}, fields...)...,
		)
	}
	return fmt.Errorf("%s %s %d: %w", op, s.children.Name(), parentID, domain.ErrNotFound)
}
