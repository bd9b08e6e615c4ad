package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/crudex/internal/domain"
	"github.com/kailas-cloud/crudex/internal/usecase/resource"
)

// Path parameter names.
const (
	paramID       = "id"
	paramParentID = "parent_id"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// bindID reads an integer path parameter.
func bindID(r *http.Request, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w: %w", name, domain.ErrBadRequest, err)
	}
	return id, nil
}

// bindListParams reads offset, limit, search and order from the query string.
func bindListParams(r *http.Request) (resource.ListParams, error) {
	var (
		p      resource.ListParams
		search *string
		order  *string
	)
	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "offset", q, &p.Offset); err != nil {
		return p, fmt.Errorf("invalid offset: %w: %w", domain.ErrBadRequest, err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &p.Limit); err != nil {
		return p, fmt.Errorf("invalid limit: %w: %w", domain.ErrBadRequest, err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "search", q, &search); err != nil {
		return p, fmt.Errorf("invalid search: %w: %w", domain.ErrBadRequest, err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "order", q, &order); err != nil {
		return p, fmt.Errorf("invalid order: %w: %w", domain.ErrBadRequest, err)
	}

	if search != nil {
		p.Search = *search
	}
	if order != nil {
		p.Order = *order
	}
	return p, nil
}

// decodeBody requires a JSON content type and decodes exactly one value.
func decodeBody[E any](w http.ResponseWriter, r *http.Request) (E, error) {
	var v E

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return v, fmt.Errorf("content type %q: %w", r.Header.Get("Content-Type"), domain.ErrUnsupportedMediaType)
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, fmt.Errorf("empty body: %w", domain.ErrBadRequest)
		}
		return v, fmt.Errorf("decode body: %w: %w", domain.ErrBadRequest, err)
	}
	if dec.More() {
		return v, fmt.Errorf("decode body: trailing data: %w", domain.ErrBadRequest)
	}
	return v, nil
}
