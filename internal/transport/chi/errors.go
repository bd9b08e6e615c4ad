package chi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/crudex/internal/db"
	"github.com/kailas-cloud/crudex/internal/domain"
	"github.com/kailas-cloud/crudex/internal/logger"
)

// ErrorCode is the machine-readable error kind in a response body.
type ErrorCode string

// Error codes returned to clients.
const (
	CodeBadRequest           ErrorCode = "bad_request"
	CodeUnsupportedMediaType ErrorCode = "unsupported_media_type"
	CodeValidationFailed     ErrorCode = "validation_failed"
	CodeNotFound             ErrorCode = "not_found"
	CodeStorageFailure       ErrorCode = "storage_failure"
	CodeInternalError        ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// errorHandlers is ordered: storage and internal failures may wrap ErrNotFound
// and must win over it.
var errorHandlers = []errorHandler{
	sentinelHandler(domain.ErrBadRequest, http.StatusBadRequest, CodeBadRequest),
	sentinelHandler(domain.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, CodeUnsupportedMediaType),
	validationHandler,
	sentinelHandler(domain.ErrStorage, http.StatusNotAcceptable, CodeStorageFailure),
	sentinelHandler(domain.ErrInternal, http.StatusInternalServerError, CodeInternalError),
	sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrBadRequest,
		domain.ErrUnsupportedMediaType,
		domain.ErrValidationFailed,
		domain.ErrStorage,
		domain.ErrInternal,
		domain.ErrNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler answers 422 with the offending fields in the body.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrValidationFailed) {
		return false
	}
	resp := ErrorResponse{Code: CodeValidationFailed, Message: msg}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp.Fields = ve.Fields
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
	return true
}

// handleDomainError maps err to a status and body. Client faults and
// constraint violations log at Warn; everything else logs at Error.
func handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	msg := safeDomainMessage(err)

	if serverFault(err) {
		log.Error("request failed", zap.Error(err))
	} else {
		log.Warn("request rejected", zap.Error(err))
	}

	for _, h := range errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func serverFault(err error) bool {
	switch {
	case errors.Is(err, domain.ErrStorage):
		return !db.IsConstraintViolation(err)
	case errors.Is(err, domain.ErrInternal):
		return true
	case errors.Is(err, domain.ErrBadRequest),
		errors.Is(err, domain.ErrUnsupportedMediaType),
		errors.Is(err, domain.ErrValidationFailed),
		errors.Is(err, domain.ErrNotFound):
		return false
	default:
		return true
	}
}
