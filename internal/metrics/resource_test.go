package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/crudex/internal/domain"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, OutcomeOK},
		{"bad request", fmt.Errorf("window: %w", domain.ErrBadRequest), OutcomeBadRequest},
		{"media type", domain.ErrUnsupportedMediaType, OutcomeUnsupported},
		{"validation", domain.ValidationErrors{"name": "required"}.Err(), OutcomeInvalid},
		{"not found", fmt.Errorf("fetch: %w", domain.ErrNotFound), OutcomeNotFound},
		{"storage", fmt.Errorf("insert: %w: %w", domain.ErrStorage, errors.New("constraint")), OutcomeStorage},
		{"storage wrapping not found", fmt.Errorf("%w: %w", domain.ErrStorage, domain.ErrNotFound), OutcomeStorage},
		{"internal", fmt.Errorf("count: %w", domain.ErrInternal), OutcomeInternal},
		{"unknown", errors.New("boom"), OutcomeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Outcome(tt.err); got != tt.want {
				t.Errorf("Outcome() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestObserveOperation(t *testing.T) {
	before := testutil.ToFloat64(ResourceOperationsTotal.WithLabelValues("widget", "create", OutcomeOK))
	ObserveOperation("widget", "create", nil)
	after := testutil.ToFloat64(ResourceOperationsTotal.WithLabelValues("widget", "create", OutcomeOK))

	if after-before != 1 {
		t.Errorf("expected counter to grow by 1, got %f", after-before)
	}
}

func TestObserveQuery(t *testing.T) {
	ObserveQuery("SELECT", time.Now().Add(-5*time.Millisecond))

	if testutil.CollectAndCount(DBQueryDuration) == 0 {
		t.Error("expected db_query_duration_seconds to have observations")
	}
}

func TestRegister_Twice(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := Register(reg); err != nil {
		t.Fatalf("second register must be tolerated: %v", err)
	}
}
