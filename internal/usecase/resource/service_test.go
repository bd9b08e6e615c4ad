package resource

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/crudex/internal/domain"
	"github.com/kailas-cloud/crudex/internal/domain/page"
	"github.com/kailas-cloud/crudex/internal/domain/query"
)

// --- Fixtures ---

type item struct {
	ID     int64
	Parent int64
	Name   string
	Frozen bool
}

func (i item) WithID(id int64) item {
	i.ID = id
	return i
}

func (i item) WithParentID(id int64) item {
	i.Parent = id
	return i
}

type owner struct {
	ID int64
}

// --- Mocks ---

type mockStore struct {
	insertID  int64
	insertErr error
	inserted  []item

	fetchResult item
	fetchErr    error

	updateErr error
	updated   []item

	deleteErr error
	deleted   []int64

	countResult int64
	countErr    error

	listResult []item
	listErr    error
	listWindow page.Window
	listFilter query.Filter
}

func (m *mockStore) Insert(_ context.Context, e item) (int64, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	m.inserted = append(m.inserted, e)
	return m.insertID, nil
}

func (m *mockStore) FetchOne(_ context.Context, _ int64) (item, error) {
	return m.fetchResult, m.fetchErr
}

func (m *mockStore) Update(_ context.Context, e item) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, e)
	return nil
}

func (m *mockStore) Delete(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockStore) Count(_ context.Context) (int64, error) {
	return m.countResult, m.countErr
}

func (m *mockStore) List(_ context.Context, w page.Window, f query.Filter) ([]item, error) {
	m.listWindow = w
	m.listFilter = f
	return m.listResult, m.listErr
}

// rules rejects empty names and unfreezing.
type rules struct{}

func (rules) CheckCreate(c item) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if c.Name == "" {
		errs = errs.Add("name", "required")
	}
	return errs
}

func (rules) CheckUpdate(c, prev item) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if prev.Frozen && !c.Frozen {
		errs = errs.Add("frozen", "cannot be cleared")
	}
	return errs
}

func (rules) CheckDelete(prev item) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if prev.Frozen {
		errs = errs.Add("", "frozen items cannot be deleted")
	}
	return errs
}

func newTestService(store *mockStore) *Service[item] {
	return New(Definition[item]{
		Name:      "item",
		Store:     store,
		Validator: rules{},
		Fields: query.Fields{
			Text:    []string{"name"},
			Numeric: []string{"id"},
			Order:   []string{"name"},
		},
	})
}

func i64(v int64) *int64 { return &v }

// --- Create ---

func TestCreate_Success(t *testing.T) {
	store := &mockStore{insertID: 7}
	svc := newTestService(store)

	id, err := svc.Create(context.Background(), item{Name: "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Errorf("id = %d, want 7", id)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(store.inserted))
	}
}

func TestCreate_ValidationFailedSkipsInsert(t *testing.T) {
	store := &mockStore{insertID: 7}
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), item{})
	if !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Fields["name"] != "required" {
		t.Errorf("fields = %v", ve.Fields)
	}
	if len(store.inserted) != 0 {
		t.Error("insert must not run when validation fails")
	}
}

func TestCreate_StorageFailure(t *testing.T) {
	store := &mockStore{insertErr: errors.New("UNIQUE constraint failed")}
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), item{Name: "a"})
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestCreate_NilValidatorAcceptsEverything(t *testing.T) {
	store := &mockStore{insertID: 1}
	svc := New(Definition[item]{Name: "item", Store: store})

	if _, err := svc.Create(context.Background(), item{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- Retrieve ---

func TestRetrieve_Success(t *testing.T) {
	store := &mockStore{fetchResult: item{ID: 3, Name: "c"}}
	svc := newTestService(store)

	got, err := svc.Retrieve(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "c" {
		t.Errorf("Name = %q, want c", got.Name)
	}
}

func TestRetrieve_AnyFetchErrorIsNotFound(t *testing.T) {
	for _, fetchErr := range []error{domain.ErrNotFound, errors.New("connection reset")} {
		svc := newTestService(&mockStore{fetchErr: fetchErr})
		if _, err := svc.Retrieve(context.Background(), 1); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("fetch error %v: expected ErrNotFound, got %v", fetchErr, err)
		}
	}
}

// --- Update ---

func TestUpdate_Success(t *testing.T) {
	store := &mockStore{fetchResult: item{ID: 4, Name: "old"}}
	svc := newTestService(store)

	got, err := svc.Update(context.Background(), 4, item{ID: 99, Name: "new"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 4 {
		t.Errorf("ID = %d, want path id 4", got.ID)
	}
	if len(store.updated) != 1 || store.updated[0].ID != 4 {
		t.Errorf("updated = %+v", store.updated)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	store := &mockStore{fetchErr: domain.ErrNotFound}
	svc := newTestService(store)

	_, err := svc.Update(context.Background(), 4, item{Name: "new"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(store.updated) != 0 {
		t.Error("update must not run when the row is missing")
	}
}

func TestUpdate_ComparesAgainstPrevious(t *testing.T) {
	store := &mockStore{fetchResult: item{ID: 4, Name: "x", Frozen: true}}
	svc := newTestService(store)

	_, err := svc.Update(context.Background(), 4, item{Name: "x", Frozen: false})
	if !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if len(store.updated) != 0 {
		t.Error("update must not run when validation fails")
	}
}

func TestUpdate_StorageFailure(t *testing.T) {
	store := &mockStore{fetchResult: item{ID: 4}, updateErr: errors.New("disk full")}
	svc := newTestService(store)

	_, err := svc.Update(context.Background(), 4, item{Name: "x"})
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

// --- Delete ---

func TestDelete_Success(t *testing.T) {
	store := &mockStore{fetchResult: item{ID: 5}}
	svc := newTestService(store)

	if err := svc.Delete(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != 5 {
		t.Errorf("deleted = %v", store.deleted)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService(&mockStore{fetchErr: domain.ErrNotFound})
	if err := svc.Delete(context.Background(), 5); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_Rejected(t *testing.T) {
	store := &mockStore{fetchResult: item{ID: 5, Frozen: true}}
	svc := newTestService(store)

	if err := svc.Delete(context.Background(), 5); !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if len(store.deleted) != 0 {
		t.Error("delete must not run when validation fails")
	}
}

func TestDelete_StorageFailure(t *testing.T) {
	store := &mockStore{fetchResult: item{ID: 5}, deleteErr: errors.New("locked")}
	svc := newTestService(store)

	if err := svc.Delete(context.Background(), 5); !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

// --- List ---

func TestList_Success(t *testing.T) {
	store := &mockStore{
		countResult: 100,
		listResult:  []item{{ID: 6}, {ID: 7}},
	}
	svc := newTestService(store)

	p, err := svc.List(context.Background(), ListParams{Offset: i64(5), Limit: i64(2), Search: "x", Order: "name"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Meta.Total != 100 || p.Meta.Size != 2 || p.Meta.MaxLimit != page.MaxLimit {
		t.Errorf("meta = %+v", p.Meta)
	}
	if store.listWindow.Offset() != 5 || store.listWindow.Limit() != 2 {
		t.Errorf("window = %+v", store.listWindow)
	}
	if store.listFilter.SQL() != "WHERE (name LIKE ?) ORDER BY name" {
		t.Errorf("filter = %q", store.listFilter.SQL())
	}
}

func TestList_Errors(t *testing.T) {
	tests := []struct {
		name    string
		store   *mockStore
		params  ListParams
		wantErr error
	}{
		{"bad window", &mockStore{countResult: 1}, ListParams{Limit: i64(0)}, domain.ErrBadRequest},
		{"negative offset", &mockStore{countResult: 1}, ListParams{Offset: i64(-1)}, domain.ErrBadRequest},
		{"zero count", &mockStore{countResult: 0}, ListParams{}, domain.ErrNotFound},
		{"count error", &mockStore{countErr: errors.New("boom")}, ListParams{}, domain.ErrInternal},
		{"empty page", &mockStore{countResult: 3}, ListParams{Offset: i64(10)}, domain.ErrNotFound},
		{"list error", &mockStore{countResult: 3, listErr: errors.New("boom")}, ListParams{}, domain.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.store)
			_, err := svc.List(context.Background(), tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestList_CustomLimits(t *testing.T) {
	store := &mockStore{countResult: 1, listResult: []item{{ID: 1}}}
	svc := newTestService(store).WithLimits(page.Limits{Default: 10, Max: 20})

	p, err := svc.List(context.Background(), ListParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.listWindow.Limit() != 10 {
		t.Errorf("limit = %d, want 10", store.listWindow.Limit())
	}
	if p.Meta.MaxLimit != 20 {
		t.Errorf("MaxLimit = %d, want 20", p.Meta.MaxLimit)
	}

	if _, err := svc.List(context.Background(), ListParams{Limit: i64(21)}); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest above custom max, got %v", err)
	}
}
