package crudex

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/crudex/internal/usecase/resource"
)

// Resources runs the flat operations of one entity type.
type Resources[E resource.Entity[E]] struct {
	svc *resource.Service[E]
	obs *observer
}

// Create validates and inserts e, returning it with its assigned id.
func (r *Resources[E]) Create(ctx context.Context, e E) (_ E, err error) {
	defer r.observe("create", time.Now(), &err)

	id, err := r.svc.Create(ctx, e)
	if err != nil {
		var zero E
		return zero, fmt.Errorf("create: %w", err)
	}
	return e.WithID(id), nil
}

// Get returns the row with the given id.
func (r *Resources[E]) Get(ctx context.Context, id int64) (_ E, err error) {
	defer r.observe("get", time.Now(), &err)

	e, err := r.svc.Retrieve(ctx, id)
	if err != nil {
		return e, fmt.Errorf("get %d: %w", id, err)
	}
	return e, nil
}

// Update replaces the row with the given id and returns what was written.
func (r *Resources[E]) Update(ctx context.Context, id int64, e E) (_ E, err error) {
	defer r.observe("update", time.Now(), &err)

	out, err := r.svc.Update(ctx, id, e)
	if err != nil {
		return out, fmt.Errorf("update %d: %w", id, err)
	}
	return out, nil
}

// Delete removes the row with the given id.
func (r *Resources[E]) Delete(ctx context.Context, id int64) (err error) {
	defer r.observe("delete", time.Now(), &err)

	if err = r.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %d: %w", id, err)
	}
	return nil
}

// List returns one window of rows. An empty table or window is ErrNotFound.
func (r *Resources[E]) List(ctx context.Context, opts ListOptions) (_ Page[E], err error) {
	defer r.observe("list", time.Now(), &err)

	p, err := r.svc.List(ctx, listParams(opts))
	if err != nil {
		return Page[E]{}, fmt.Errorf("list: %w", err)
	}
	return toPage(p), nil
}

func (r *Resources[E]) observe(op string, start time.Time, err *error) {
	r.obs.observe(r.svc.Name()+"."+op, start, *err)
}

// Children runs the operations of a child entity type scoped to one parent.
// A child that belongs to another parent is reported as ErrNotFound.
type Children[E resource.Child[E], P any] struct {
	svc      *resource.NestedService[E, P]
	parentID int64
	obs      *observer
}

// ParentID returns the parent the operations are scoped to.
func (c *Children[E, P]) ParentID() int64 { return c.parentID }

// Create inserts e under the parent, returning it with its assigned id.
func (c *Children[E, P]) Create(ctx context.Context, e E) (_ E, err error) {
	defer c.observe("create", time.Now(), &err)

	id, err := c.svc.Create(ctx, c.parentID, e)
	if err != nil {
		var zero E
		return zero, fmt.Errorf("create under %d: %w", c.parentID, err)
	}
	return e.WithParentID(c.parentID).WithID(id), nil
}

// Get returns child id.
func (c *Children[E, P]) Get(ctx context.Context, id int64) (_ E, err error) {
	defer c.observe("get", time.Now(), &err)

	e, err := c.svc.Retrieve(ctx, c.parentID, id)
	if err != nil {
		return e, fmt.Errorf("get %d/%d: %w", c.parentID, id, err)
	}
	return e, nil
}

// Update replaces child id. The child stays under the parent.
func (c *Children[E, P]) Update(ctx context.Context, id int64, e E) (_ E, err error) {
	defer c.observe("update", time.Now(), &err)

	out, err := c.svc.Update(ctx, c.parentID, id, e)
	if err != nil {
		return out, fmt.Errorf("update %d/%d: %w", c.parentID, id, err)
	}
	return out, nil
}

// Delete removes child id.
func (c *Children[E, P]) Delete(ctx context.Context, id int64) (err error) {
	defer c.observe("delete", time.Now(), &err)

	if err = c.svc.Delete(ctx, c.parentID, id); err != nil {
		return fmt.Errorf("delete %d/%d: %w", c.parentID, id, err)
	}
	return nil
}

// List returns one window of the parent's children.
func (c *Children[E, P]) List(ctx context.Context, opts ListOptions) (_ Page[E], err error) {
	defer c.observe("list", time.Now(), &err)

	p, err := c.svc.List(ctx, c.parentID, listParams(opts))
	if err != nil {
		return Page[E]{}, fmt.Errorf("list under %d: %w", c.parentID, err)
	}
	return toPage(p), nil
}

func (c *Children[E, P]) observe(op string, start time.Time, err *error) {
	c.obs.observe(c.svc.Children().Name()+".sub_"+op, start, *err)
}

func listParams(o ListOptions) resource.ListParams {
	return resource.ListParams{
		Offset: o.Offset,
		Limit:  o.Limit,
		Search: o.Search,
		Order:  o.Order,
	}
}

func toPage[E any](p resource.Page[E]) Page[E] {
	return Page[E]{
		Items:    p.Items,
		Total:    p.Meta.Total,
		MaxLimit: p.Meta.MaxLimit,
	}
}
