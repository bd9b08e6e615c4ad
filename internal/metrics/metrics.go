// Package metrics holds the Prometheus collectors exported by the server.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "crudex"

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		httpRequestDuration,
		httpRequestsTotal,
		ResourceOperationsTotal,
		DBQueryDuration,
	}
}

// Register adds every collector to reg. Collectors already present are
// left in place, so calling Register twice is harmless.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return fmt.Errorf("register metric: %w", err)
		}
	}
	return nil
}

// MustRegister is Register that panics on failure. Call it once from main.
func MustRegister(reg prometheus.Registerer) {
	if err := Register(reg); err != nil {
		panic(err)
	}
}
