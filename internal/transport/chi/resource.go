package chi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/crudex/internal/metrics"
	"github.com/kailas-cloud/crudex/internal/usecase/resource"
)

// Operation names used as metric labels.
const (
	opCreate   = "create"
	opRetrieve = "retrieve"
	opUpdate   = "update"
	opDelete   = "delete"
	opList     = "list"
)

// Mount registers the five flat operations of svc under pattern, e.g. "/authors":
//
//	POST   {pattern}/      create
//	GET    {pattern}/      list
//	GET    {pattern}/{id}  retrieve
//	PUT    {pattern}/{id}  update
//	DELETE {pattern}/{id}  delete
func Mount[E resource.Entity[E]](r chi.Router, pattern string, svc *resource.Service[E]) {
	h := &resourceHandler[E]{svc: svc}
	r.Route(pattern, func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{"+paramID+"}", h.retrieve)
		r.Put("/{"+paramID+"}", h.update)
		r.Delete("/{"+paramID+"}", h.delete)
	})
}

type resourceHandler[E resource.Entity[E]] struct {
	svc *resource.Service[E]
}

func (h *resourceHandler[E]) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	metrics.ObserveOperation(h.svc.Name(), op, err)
	handleDomainError(w, r, err)
}

func (h *resourceHandler[E]) create(w http.ResponseWriter, r *http.Request) {
	candidate, err := decodeBody[E](w, r)
	if err != nil {
		h.fail(w, r, opCreate, err)
		return
	}

	id, err := h.svc.Create(r.Context(), candidate)
	if err != nil {
		h.fail(w, r, opCreate, err)
		return
	}

	metrics.ObserveOperation(h.svc.Name(), opCreate, nil)
	w.Header().Set("Location", itemLocation(r.URL.Path, id))
	w.Header().Set(HeaderItemID, strconv.FormatInt(id, 10))
	writeJSON(w, http.StatusCreated, candidate.WithID(id))
}

func (h *resourceHandler[E]) retrieve(w http.ResponseWriter, r *http.Request) {
	id, err := bindID(r, paramID)
	if err != nil {
		h.fail(w, r, opRetrieve, err)
		return
	}

	e, err := h.svc.Retrieve(r.Context(), id)
	if err != nil {
		h.fail(w, r, opRetrieve, err)
		return
	}

	metrics.ObserveOperation(h.svc.Name(), opRetrieve, nil)
	writeJSON(w, http.StatusOK, e)
}

func (h *resourceHandler[E]) update(w http.ResponseWriter, r *http.Request) {
	id, err := bindID(r, paramID)
	if err != nil {
		h.fail(w, r, opUpdate, err)
		return
	}
	candidate, err := decodeBody[E](w, r)
	if err != nil {
		h.fail(w, r, opUpdate, err)
		return
	}

	e, err := h.svc.Update(r.Context(), id, candidate)
	if err != nil {
		h.fail(w, r, opUpdate, err)
		return
	}

	metrics.ObserveOperation(h.svc.Name(), opUpdate, nil)
	writeJSON(w, http.StatusOK, e)
}

func (h *resourceHandler[E]) delete(w http.ResponseWriter, r *http.Request) {
	id, err := bindID(r, paramID)
	if err != nil {
		h.fail(w, r, opDelete, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, r, opDelete, err)
		return
	}

	metrics.ObserveOperation(h.svc.Name(), opDelete, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (h *resourceHandler[E]) list(w http.ResponseWriter, r *http.Request) {
	p, err := bindListParams(r)
	if err != nil {
		h.fail(w, r, opList, err)
		return
	}

	res, err := h.svc.List(r.Context(), p)
	if err != nil {
		h.fail(w, r, opList, err)
		return
	}

	metrics.ObserveOperation(h.svc.Name(), opList, nil)
	setPagingHeaders(w, res.Meta)
	writeJSON(w, http.StatusOK, res.Items)
}
