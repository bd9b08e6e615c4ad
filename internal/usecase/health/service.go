package health

import (
	"context"
	"sort"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the database answers but a component check failed.
	Degraded Status = "degraded"
	// Unhealthy indicates the database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db     DBPinger
	checks map[string]Checker
}

// New creates a Service around the database pinger.
func New(db DBPinger) *Service {
	return &Service{db: db, checks: make(map[string]Checker)}
}

// WithCheck adds a named component check. Names must not be "database".
func (s *Service) WithCheck(name string, c Checker) *Service {
	if name != "" && name != "database" && c != nil {
		s.checks[name] = c
	}
	return s
}

// Names returns the registered component names in sorted order.
func (s *Service) Names() []string {
	names := make([]string, 0, len(s.checks))
	for n := range s.checks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Check runs the database ping and then every component check.
// Component checks are skipped when the database is down.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.checks)+1)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		for name := range s.checks {
			checks[name] = CheckError
		}
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks["database"] = CheckOK

	status := Healthy
	for _, name := range s.Names() {
		if err := s.checks[name].Check(ctx); err != nil {
			checks[name] = CheckError
			status = Degraded
			continue
		}
		checks[name] = CheckOK
	}

	return Report{Status: status, Checks: checks}
}
