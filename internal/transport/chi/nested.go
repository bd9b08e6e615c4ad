package chi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/crudex/internal/metrics"
	"github.com/kailas-cloud/crudex/internal/usecase/resource"
)

// Operation names of the parent-scoped variants.
const (
	opSubCreate   = "sub_create"
	opSubRetrieve = "sub_retrieve"
	opSubUpdate   = "sub_update"
	opSubDelete   = "sub_delete"
	opSubList     = "sub_list"
)

// MountNested registers the parent-scoped operations of svc, e.g. with
// parent "/authors" and child "/books":
//
//	POST   /authors/{parent_id}/books/      sub_create
//	GET    /authors/{parent_id}/books/      sub_list
//	GET    /authors/{parent_id}/books/{id}  sub_retrieve
//	PUT    /authors/{parent_id}/books/{id}  sub_update
//	DELETE /authors/{parent_id}/books/{id}  sub_delete
func MountNested[E resource.Child[E], P any](r chi.Router, parent, child string, svc *resource.NestedService[E, P]) {
	h := &nestedHandler[E, P]{svc: svc, name: svc.Children().Name()}
	r.Route(parent+"/{"+paramParentID+"}"+child, func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{"+paramID+"}", h.retrieve)
		r.Put("/{"+paramID+"}", h.update)
		r.Delete("/{"+paramID+"}", h.delete)
	})
}

type nestedHandler[E resource.Child[E], P any] struct {
	svc  *resource.NestedService[E, P]
	name string
}

func (h *nestedHandler[E, P]) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	metrics.ObserveOperation(h.name, op, err)
	handleDomainError(w, r, err)
}

// ids binds the parent id and, when withChild is set, the child id.
func ids(r *http.Request, withChild bool) (parentID, id int64, err error) {
	parentID, err = bindID(r, paramParentID)
	if err != nil || !withChild {
		return parentID, 0, err
	}
	id, err = bindID(r, paramID)
	return parentID, id, err
}

func (h *nestedHandler[E, P]) create(w http.ResponseWriter, r *http.Request) {
	parentID, _, err := ids(r, false)
	if err != nil {
		h.fail(w, r, opSubCreate, err)
		return
	}
	candidate, err := decodeBody[E](w, r)
	if err != nil {
		h.fail(w, r, opSubCreate, err)
		return
	}

	id, err := h.svc.Create(r.Context(), parentID, candidate)
	if err != nil {
		h.fail(w, r, opSubCreate, err)
		return
	}

	metrics.ObserveOperation(h.name, opSubCreate, nil)
	w.Header().Set("Location", itemLocation(r.URL.Path, id))
	w.Header().Set(HeaderItemID, strconv.FormatInt(id, 10))
	writeJSON(w, http.StatusCreated, candidate.WithParentID(parentID).WithID(id))
}

func (h *nestedHandler[E, P]) retrieve(w http.ResponseWriter, r *http.Request) {
	parentID, id, err := ids(r, true)
	if err != nil {
		h.fail(w, r, opSubRetrieve, err)
		return
	}

	e, err := h.svc.Retrieve(r.Context(), parentID, id)
	if err != nil {
		h.fail(w, r, opSubRetrieve, err)
		return
	}

	metrics.ObserveOperation(h.name, opSubRetrieve, nil)
	writeJSON(w, http.StatusOK, e)
}

func (h *nestedHandler[E, P]) update(w http.ResponseWriter, r *http.Request) {
	parentID, id, err := ids(r, true)
	if err != nil {
		h.fail(w, r, opSubUpdate, err)
		return
	}
	candidate, err := decodeBody[E](w, r)
	if err != nil {
		h.fail(w, r, opSubUpdate, err)
		return
	}

	e, err := h.svc.Update(r.Context(), parentID, id, candidate)
	if err != nil {
		h.fail(w, r, opSubUpdate, err)
		return
	}

	metrics.ObserveOperation(h.name, opSubUpdate, nil)
	writeJSON(w, http.StatusOK, e)
}

func (h *nestedHandler[E, P]) delete(w http.ResponseWriter, r *http.Request) {
	parentID, id, err := ids(r, true)
	if err != nil {
		h.fail(w, r, opSubDelete, err)
		return
	}

	if err := h.svc.Delete(r.Context(), parentID, id); err != nil {
		h.fail(w, r, opSubDelete, err)
		return
	}

	metrics.ObserveOperation(h.name, opSubDelete, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (h *nestedHandler[E, P]) list(w http.ResponseWriter, r *http.Request) {
	parentID, _, err := ids(r, false)
	if err != nil {
		h.fail(w, r, opSubList, err)
		return
	}
	p, err := bindListParams(r)
	if err != nil {
		h.fail(w, r, opSubList, err)
		return
	}

	res, err := h.svc.List(r.Context(), parentID, p)
	if err != nil {
		h.fail(w, r, opSubList, err)
		return
	}

	metrics.ObserveOperation(h.name, opSubList, nil)
	setPagingHeaders(w, res.Meta)
	writeJSON(w, http.StatusOK, res.Items)
}
