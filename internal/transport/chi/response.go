package chi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kailas-cloud/crudex/internal/domain/page"
)

// Response headers.
const (
	HeaderItemID         = "X-Item-ID"
	HeaderPagingTotal    = "X-Paging-Total"
	HeaderPagingSize     = "X-Paging-Size"
	HeaderPagingMaxLimit = "X-Paging-MaxLimit"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func setPagingHeaders(w http.ResponseWriter, m page.Meta) {
	h := w.Header()
	h.Set(HeaderPagingTotal, strconv.FormatInt(m.Total, 10))
	h.Set(HeaderPagingSize, strconv.Itoa(m.Size))
	h.Set(HeaderPagingMaxLimit, strconv.FormatInt(m.MaxLimit, 10))
}

// itemLocation returns collectionPath with id appended, e.g. /authors/7.
func itemLocation(collectionPath string, id int64) string {
	if collectionPath == "" || collectionPath[len(collectionPath)-1] != '/' {
		collectionPath += "/"
	}
	return collectionPath + strconv.FormatInt(id, 10)
}
