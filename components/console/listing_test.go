package console

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/goliatone/go-hotel-admin/pkg/hotelapi"
)

type record struct {
	ID   string
	Name string
}

type recordDraft struct {
	Name string
	Err  error
}

func (d *recordDraft) Payload() (map[string]any, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	return map[string]any{"name": d.Name}, nil
}

type recordBackend struct {
	mu      sync.Mutex
	records []record
	fetches []QueryParams
	fetchFn func(params QueryParams) (hotelapi.Page[record], error)

	createErr error
	updateErr error
	deleteErr error

	creates int
	updates int
	deletes int
}

func (b *recordBackend) fetch(_ context.Context, params QueryParams) (hotelapi.Page[record], error) {
	b.mu.Lock()
	b.fetches = append(b.fetches, params)
	fn := b.fetchFn
	records := append([]record(nil), b.records...)
	b.mu.Unlock()
	if fn != nil {
		return fn(params)
	}
	return hotelapi.Page[record]{
		Items: records,
		Pagination: hotelapi.Pagination{
			CurrentPage:  params.Page,
			TotalPages:   1,
			TotalItems:   len(records),
			ItemsPerPage: params.Limit,
		},
	}, nil
}

func (b *recordBackend) fetchCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.fetches)
}

func (b *recordBackend) lastFetch() QueryParams {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fetches[len(b.fetches)-1]
}

func newRecordListing(t *testing.T, backend *recordBackend, notifier Notifier) *Listing[record, *recordDraft] {
	t.Helper()
	listing, err := NewListing(ListingOptions[record, *recordDraft]{
		Entity:   "records",
		Singular: "Record",
		Fetch:    backend.fetch,
		Create: func(context.Context, map[string]any) error {
			backend.mu.Lock()
			defer backend.mu.Unlock()
			backend.creates++
			return backend.createErr
		},
		Update: func(context.Context, string, map[string]any) error {
			backend.mu.Lock()
			defer backend.mu.Unlock()
			backend.updates++
			return backend.updateErr
		},
		Delete: func(context.Context, string) error {
			backend.mu.Lock()
			defer backend.mu.Unlock()
			backend.deletes++
			return backend.deleteErr
		},
		ID:        func(r record) string { return r.ID },
		NewDraft:  func() *recordDraft { return &recordDraft{} },
		DraftFrom: func(r record) *recordDraft { return &recordDraft{Name: r.Name} },
		Columns: []Column{
			{Field: "name", Sortable: true},
			{Field: "createdAt", Sortable: true},
		},
		Notifier: notifier,
	})
	if err != nil {
		t.Fatalf("NewListing returned error: %v", err)
	}
	return listing
}

func TestListingDefaultsAndFirstFetch(t *testing.T) {
	backend := &recordBackend{records: []record{{ID: "1", Name: "a"}}}
	listing := newRecordListing(t, backend, nil)

	if err := listing.EnsureFetched(context.Background()); err != nil {
		t.Fatalf("EnsureFetched returned error: %v", err)
	}
	params := backend.lastFetch()
	if params.Page != 1 || params.Limit != 10 {
		t.Fatalf("unexpected defaults: page=%d limit=%d", params.Page, params.Limit)
	}
	if params.Sort != "createdAt" || params.Order != Descending {
		t.Fatalf("unexpected default sort: %s %s", params.Sort, params.Order)
	}

	if err := listing.EnsureFetched(context.Background()); err != nil {
		t.Fatalf("EnsureFetched returned error: %v", err)
	}
	if backend.fetchCount() != 1 {
		t.Fatalf("expected a single fetch, got %d", backend.fetchCount())
	}
}

func TestListingSetPage(t *testing.T) {
	backend := &recordBackend{}
	listing := newRecordListing(t, backend, nil)

	if err := listing.SetPage(context.Background(), 3); err != nil {
		t.Fatalf("SetPage returned error: %v", err)
	}
	if got := backend.lastFetch().Page; got != 3 {
		t.Fatalf("expected fetch for page 3, got %d", got)
	}
}

func TestListingToggleSort(t *testing.T) {
	backend := &recordBackend{}
	listing := newRecordListing(t, backend, nil)
	ctx := context.Background()

	// New field activates ascending.
	if err := listing.ToggleSort(ctx, "name"); err != nil {
		t.Fatalf("ToggleSort returned error: %v", err)
	}
	params := backend.lastFetch()
	if params.Sort != "name" || params.Order != Ascending {
		t.Fatalf("expected name asc, got %s %s", params.Sort, params.Order)
	}

	// Same field flips direction.
	if err := listing.ToggleSort(ctx, "name"); err != nil {
		t.Fatalf("ToggleSort returned error: %v", err)
	}
	if params = backend.lastFetch(); params.Order != Descending {
		t.Fatalf("expected name desc, got %s", params.Order)
	}
	if err := listing.ToggleSort(ctx, "name"); err != nil {
		t.Fatalf("ToggleSort returned error: %v", err)
	}
	if params = backend.lastFetch(); params.Order != Ascending {
		t.Fatalf("expected name asc after second toggle, got %s", params.Order)
	}
}

func TestListingFilterResetsPage(t *testing.T) {
	backend := &recordBackend{}
	listing := newRecordListing(t, backend, nil)
	ctx := context.Background()

	if err := listing.SetPage(ctx, 4); err != nil {
		t.Fatalf("SetPage returned error: %v", err)
	}
	if err := listing.SetFilter(ctx, "name", "smith"); err != nil {
		t.Fatalf("SetFilter returned error: %v", err)
	}
	params := backend.lastFetch()
	if params.Page != 1 {
		t.Fatalf("expected filter change to reset to page 1, got %d", params.Page)
	}
	if params.Filters["name"] != "smith" {
		t.Fatalf("expected filter applied, got %q", params.Filters["name"])
	}
}

func TestListingFetchFailureKeepsPage(t *testing.T) {
	backend := &recordBackend{records: []record{{ID: "1", Name: "kept"}}}
	flashes := NewFlashHub()
	listing := newRecordListing(t, backend, flashes)
	ctx := context.Background()

	if err := listing.Fetch(ctx); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	backend.mu.Lock()
	backend.fetchFn = func(QueryParams) (hotelapi.Page[record], error) {
		return hotelapi.Page[record]{}, errors.New("boom")
	}
	backend.mu.Unlock()

	if err := listing.Fetch(ctx); err == nil {
		t.Fatalf("expected fetch error")
	}

	view := listing.Snapshot()
	if len(view.Items) != 1 || view.Items[0].Name != "kept" {
		t.Fatalf("expected previous page to remain displayed, got %+v", view.Items)
	}
	queued := flashes.Drain()
	if len(queued) != 1 || queued[0].Level != FlashError {
		t.Fatalf("expected one error flash, got %+v", queued)
	}
	if queued[0].Message != "Failed to load records" {
		t.Fatalf("unexpected flash message %q", queued[0].Message)
	}
}

func TestListingStaleFetchDiscarded(t *testing.T) {
	backend := &recordBackend{}
	listing := newRecordListing(t, backend, nil)
	ctx := context.Background()

	release := make(chan struct{})
	started := make(chan struct{})
	backend.mu.Lock()
	backend.fetchFn = func(params QueryParams) (hotelapi.Page[record], error) {
		if params.Page == 1 {
			close(started)
			<-release
			return hotelapi.Page[record]{
				Items:      []record{{ID: "stale", Name: "stale"}},
				Pagination: hotelapi.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 1, ItemsPerPage: 10},
			}, nil
		}
		return hotelapi.Page[record]{
			Items:      []record{{ID: "fresh", Name: "fresh"}},
			Pagination: hotelapi.Pagination{CurrentPage: 2, TotalPages: 2, TotalItems: 11, ItemsPerPage: 10},
		}, nil
	}
	backend.mu.Unlock()

	done := make(chan error)
	go func() { done <- listing.Fetch(ctx) }()
	<-started

	if err := listing.SetPage(ctx, 2); err != nil {
		t.Fatalf("SetPage returned error: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("stale fetch returned error: %v", err)
	}

	view := listing.Snapshot()
	if len(view.Items) != 1 || view.Items[0].ID != "fresh" {
		t.Fatalf("expected the later fetch to win, got %+v", view.Items)
	}
}

func TestListingSaveSuccessClosesModalAndRefetchesOnce(t *testing.T) {
	backend := &recordBackend{}
	flashes := NewFlashHub()
	listing := newRecordListing(t, backend, flashes)
	ctx := context.Background()

	listing.OpenCreate()
	listing.SetDraft(&recordDraft{Name: "new"})
	before := backend.fetchCount()

	if err := listing.Save(ctx); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if backend.creates != 1 {
		t.Fatalf("expected one create, got %d", backend.creates)
	}
	if got := backend.fetchCount() - before; got != 1 {
		t.Fatalf("expected exactly one refetch, got %d", got)
	}

	view := listing.Snapshot()
	if view.ModalOpen {
		t.Fatalf("expected modal closed after save")
	}
	queued := flashes.Drain()
	if len(queued) != 1 || queued[0].Message != "Record created" {
		t.Fatalf("expected created flash, got %+v", queued)
	}
}

func TestListingSaveFailureKeepsModalAndDraft(t *testing.T) {
	backend := &recordBackend{createErr: &hotelapi.ValidationError{
		Fields: []hotelapi.FieldError{{Field: "name", Message: "name is taken"}},
	}}
	flashes := NewFlashHub()
	listing := newRecordListing(t, backend, flashes)
	ctx := context.Background()

	listing.OpenCreate()
	listing.SetDraft(&recordDraft{Name: "dupe"})
	before := backend.fetchCount()

	if err := listing.Save(ctx); err == nil {
		t.Fatalf("expected save error")
	}

	view := listing.Snapshot()
	if !view.ModalOpen {
		t.Fatalf("expected modal to stay open on failure")
	}
	if view.Draft == nil || view.Draft.Name != "dupe" {
		t.Fatalf("expected draft unchanged, got %+v", view.Draft)
	}
	if backend.fetchCount() != before {
		t.Fatalf("expected no refetch on failure")
	}
	queued := flashes.Drain()
	if len(queued) != 1 || queued[0].Message != "name is taken" {
		t.Fatalf("expected backend reason surfaced, got %+v", queued)
	}
}

func TestListingSaveFailureFallbackMessage(t *testing.T) {
	backend := &recordBackend{createErr: errors.New("connection reset")}
	flashes := NewFlashHub()
	listing := newRecordListing(t, backend, flashes)

	listing.OpenCreate()
	listing.SetDraft(&recordDraft{Name: "x"})
	if err := listing.Save(context.Background()); err == nil {
		t.Fatalf("expected save error")
	}
	queued := flashes.Drain()
	if len(queued) != 1 || queued[0].Message != "Operation failed" {
		t.Fatalf("expected generic failure message, got %+v", queued)
	}
}

func TestListingEditSavesViaUpdate(t *testing.T) {
	backend := &recordBackend{records: []record{{ID: "7", Name: "old"}}}
	flashes := NewFlashHub()
	listing := newRecordListing(t, backend, flashes)
	ctx := context.Background()

	if err := listing.Fetch(ctx); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !listing.OpenEditByID("7") {
		t.Fatalf("expected record found")
	}
	view := listing.Snapshot()
	if !view.Editing || view.Draft.Name != "old" {
		t.Fatalf("expected edit draft pre-populated, got %+v", view.Draft)
	}

	listing.SetDraft(&recordDraft{Name: "new"})
	if err := listing.Save(ctx); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if backend.updates != 1 || backend.creates != 0 {
		t.Fatalf("expected update path, creates=%d updates=%d", backend.creates, backend.updates)
	}
	queued := flashes.Drain()
	if len(queued) != 1 || queued[0].Message != "Record updated" {
		t.Fatalf("expected updated flash, got %+v", queued)
	}
}

func TestListingDeleteClosesOnlyOnSuccess(t *testing.T) {
	backend := &recordBackend{records: []record{{ID: "9", Name: "target"}}, deleteErr: errors.New("boom")}
	flashes := NewFlashHub()
	listing := newRecordListing(t, backend, flashes)
	ctx := context.Background()

	if err := listing.Fetch(ctx); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !listing.RequestDeleteByID("9") {
		t.Fatalf("expected record staged")
	}

	if err := listing.ConfirmDelete(ctx); err == nil {
		t.Fatalf("expected delete error")
	}
	if view := listing.Snapshot(); view.DeleteTarget == nil {
		t.Fatalf("expected dialog to stay open on failure")
	}
	queued := flashes.Drain()
	if len(queued) != 1 || queued[0].Message != "Delete failed" {
		t.Fatalf("expected delete failure flash, got %+v", queued)
	}

	backend.mu.Lock()
	backend.deleteErr = nil
	backend.mu.Unlock()
	if err := listing.ConfirmDelete(ctx); err != nil {
		t.Fatalf("ConfirmDelete returned error: %v", err)
	}
	if view := listing.Snapshot(); view.DeleteTarget != nil {
		t.Fatalf("expected dialog closed after success")
	}
	queued = flashes.Drain()
	if len(queued) != 1 || queued[0].Message != "Record deleted" {
		t.Fatalf("expected deleted flash, got %+v", queued)
	}
}

func TestListingCancelDiscardsDraft(t *testing.T) {
	backend := &recordBackend{}
	listing := newRecordListing(t, backend, nil)

	listing.OpenCreate()
	listing.SetDraft(&recordDraft{Name: "wip"})
	listing.Cancel()

	view := listing.Snapshot()
	if view.ModalOpen || view.Draft != nil {
		t.Fatalf("expected modal closed and draft discarded, got %+v", view)
	}
	if backend.creates != 0 {
		t.Fatalf("expected no create call")
	}
}

func TestListingEmptyFlag(t *testing.T) {
	backend := &recordBackend{}
	listing := newRecordListing(t, backend, nil)

	if view := listing.Snapshot(); view.Empty {
		t.Fatalf("empty must be false before the first fetch")
	}
	if err := listing.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if view := listing.Snapshot(); !view.Empty {
		t.Fatalf("empty must be true after fetching zero records")
	}
}

func TestListingColumnLabelsDerived(t *testing.T) {
	backend := &recordBackend{}
	listing := newRecordListing(t, backend, nil)

	view := listing.Snapshot()
	if view.Columns[0].Label != "Name" {
		t.Fatalf("expected derived label Name, got %q", view.Columns[0].Label)
	}
	if view.Columns[1].Label != "Created At" {
		t.Fatalf("expected derived label Created At, got %q", view.Columns[1].Label)
	}
}
