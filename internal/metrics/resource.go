package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/crudex/internal/domain"
)

// Operation outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeBadRequest  = "bad_request"
	OutcomeInvalid     = "invalid"
	OutcomeNotFound    = "not_found"
	OutcomeStorage     = "storage_error"
	OutcomeInternal    = "internal_error"
	OutcomeUnsupported = "unsupported_media_type"
)

var (
	// ResourceOperationsTotal counts dispatcher operations per resource.
	ResourceOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resource_operations_total",
			Help:      "Total resource operations by resource, operation and outcome",
		},
		[]string{"resource", "operation", "outcome"},
	)

	// DBQueryDuration observes SQL statement latency.
	DBQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "SQL statement duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"op"},
	)
)

// Outcome classifies an operation error into a bounded label value.
// Order matters: storage and internal failures may also wrap ErrNotFound.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrBadRequest):
		return OutcomeBadRequest
	case errors.Is(err, domain.ErrUnsupportedMediaType):
		return OutcomeUnsupported
	case errors.Is(err, domain.ErrValidationFailed):
		return OutcomeInvalid
	case errors.Is(err, domain.ErrStorage):
		return OutcomeStorage
	case errors.Is(err, domain.ErrInternal):
		return OutcomeInternal
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeInternal
	}
}

// ObserveOperation counts one dispatcher operation.
func ObserveOperation(resource, operation string, err error) {
	ResourceOperationsTotal.WithLabelValues(resource, operation, Outcome(err)).Inc()
}

// ObserveQuery records the duration of one SQL statement started at start.
func ObserveQuery(op string, start time.Time) {
	DBQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
