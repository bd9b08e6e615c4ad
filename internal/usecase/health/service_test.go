package health

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockChecker struct {
	err   error
	calls int
}

func (m *mockChecker) Check(_ context.Context) error {
	m.calls++
	return m.err
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}).WithCheck("author", &mockChecker{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.Checks["author"] != CheckOK {
		t.Errorf("expected author %q, got %q", CheckOK, r.Checks["author"])
	}
}

func TestCheck_DBError(t *testing.T) {
	component := &mockChecker{}
	svc := New(&mockDBPinger{err: errors.New("conn refused")}).WithCheck("author", component)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
	if r.Checks["author"] != CheckError {
		t.Errorf("expected author %q, got %q", CheckError, r.Checks["author"])
	}
	if component.calls != 0 {
		t.Errorf("component checks must be skipped when the database is down, got %d calls", component.calls)
	}
}

func TestCheck_ComponentError(t *testing.T) {
	svc := New(&mockDBPinger{}).
		WithCheck("author", &mockChecker{}).
		WithCheck("book", &mockChecker{err: errors.New("no such table: book")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["author"] != CheckOK {
		t.Errorf("expected author %q, got %q", CheckOK, r.Checks["author"])
	}
	if r.Checks["book"] != CheckError {
		t.Errorf("expected book %q, got %q", CheckError, r.Checks["book"])
	}
}

func TestCheck_DatabaseOnly(t *testing.T) {
	r := New(&mockDBPinger{}).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if len(r.Checks) != 1 {
		t.Errorf("expected only the database check, got %v", r.Checks)
	}
}

func TestWithCheck_IgnoresReservedAndEmpty(t *testing.T) {
	svc := New(&mockDBPinger{}).
		WithCheck("database", &mockChecker{}).
		WithCheck("", &mockChecker{}).
		WithCheck("book", nil).
		WithCheck("book", CheckFunc(func(context.Context) error { return nil })).
		WithCheck("author", &mockChecker{})

	if got, want := svc.Names(), []string{"author", "book"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
