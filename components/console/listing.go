package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ettle/strcase"

	"github.com/goliatone/go-hotel-admin/pkg/hotelapi"
)

// SortOrder is the direction applied to the single active sort field.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

func (o SortOrder) flipped() SortOrder {
	if o == Ascending {
		return Descending
	}
	return Ascending
}

// QueryParams describes exactly what the displayed page was fetched with.
type QueryParams struct {
	Page    int
	Limit   int
	Sort    string
	Order   SortOrder
	Filters map[string]string
}

func (p QueryParams) clone() QueryParams {
	filters := make(map[string]string, len(p.Filters))
	for k, v := range p.Filters {
		filters[k] = v
	}
	p.Filters = filters
	return p
}

// Draft is the typed staging object bound to a create/edit form. Payload
// coerces string form inputs into the wire types the backend expects.
type Draft interface {
	Payload() (map[string]any, error)
}

// Column describes one table column for the list view.
type Column struct {
	Field    string
	Label    string
	Sortable bool
}

// FilterField describes one input in the filter bar. Kind is "text",
// "select", or "number"; Options populates selects.
type FilterField struct {
	Key         string
	Label       string
	Kind        string
	Options     []string
	Placeholder string
}

// ListingOptions configures one entity's list-management controller.
type ListingOptions[T any, D Draft] struct {
	Entity   string
	Singular string

	Fetch  func(ctx context.Context, params QueryParams) (hotelapi.Page[T], error)
	Create func(ctx context.Context, payload map[string]any) error
	Update func(ctx context.Context, id string, payload map[string]any) error
	Delete func(ctx context.Context, id string) error
	ID     func(record T) string

	NewDraft  func() D
	DraftFrom func(record T) D

	Columns     []Column
	Filters     []FilterField
	DefaultSort string
	PageSize    int

	Validator DraftValidator
	Notifier  Notifier
	Telemetry Telemetry
}

// Listing is the single source of truth for one entity's list view: query
// parameters, fetch lifecycle, and create/update/delete lifecycle. Each
// instance owns its state exclusively.
type Listing[T any, D Draft] struct {
	opts ListingOptions[T, D]

	mu      sync.Mutex
	params  QueryParams
	page    hotelapi.Page[T]
	fetched bool
	loading bool
	seq     uint64

	modalOpen bool
	editingID string
	draft     D
	saving    bool

	deleteTarget *T
	deleting     bool
}

// NewListing wires a controller for one entity.
func NewListing[T any, D Draft](opts ListingOptions[T, D]) (*Listing[T, D], error) {
	if opts.Fetch == nil {
		return nil, errors.New("console: listing fetch is required")
	}
	if opts.ID == nil {
		return nil, errors.New("console: listing id accessor is required")
	}
	if opts.Entity == "" {
		opts.Entity = "records"
	}
	if opts.Singular == "" {
		opts.Singular = strcase.ToCase(opts.Entity, strcase.TitleCase, ' ')
	}
	if opts.DefaultSort == "" {
		opts.DefaultSort = "createdAt"
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	for i, col := range opts.Columns {
		if col.Label == "" {
			opts.Columns[i].Label = strcase.ToCase(col.Field, strcase.TitleCase, ' ')
		}
	}
	opts.Notifier = normalizeNotifier(opts.Notifier)
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Listing[T, D]{
		opts: opts,
		params: QueryParams{
			Page:    1,
			Limit:   opts.PageSize,
			Sort:    opts.DefaultSort,
			Order:   Descending,
			Filters: map[string]string{},
		},
	}, nil
}

// Fetch loads the page described by the current query parameters. Each call
// carries a sequence number; a resolution that is no longer the latest issued
// is discarded, so rapid filter changes cannot regress the displayed list.
// On failure the previous page stays displayed and an error notification is
// emitted.
func (l *Listing[T, D]) Fetch(ctx context.Context) error {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.loading = true
	params := l.params.clone()
	l.mu.Unlock()

	page, err := l.opts.Fetch(ctx, params)

	l.mu.Lock()
	if seq != l.seq {
		l.mu.Unlock()
		l.opts.Telemetry.Record(ctx, "console.list.stale_fetch", map[string]any{
			"entity": l.opts.Entity,
			"seq":    seq,
		})
		return nil
	}
	l.loading = false
	if err != nil {
		l.mu.Unlock()
		l.opts.Notifier.Notify(ctx, NewFlash(FlashError, "Failed to load "+l.opts.Entity))
		return err
	}
	l.page = page
	l.fetched = true
	l.mu.Unlock()
	l.opts.Telemetry.Record(ctx, "console.list.fetch", map[string]any{
		"entity": l.opts.Entity,
		"page":   params.Page,
		"total":  page.Pagination.TotalItems,
	})
	return nil
}

// EnsureFetched loads the first page if nothing has been fetched yet.
func (l *Listing[T, D]) EnsureFetched(ctx context.Context) error {
	l.mu.Lock()
	done := l.fetched
	l.mu.Unlock()
	if done {
		return nil
	}
	return l.Fetch(ctx)
}

// SetFilter updates one filter field, resets to the first page, and fetches.
func (l *Listing[T, D]) SetFilter(ctx context.Context, key, value string) error {
	l.mu.Lock()
	l.params.Filters[key] = value
	l.params.Page = 1
	l.mu.Unlock()
	return l.Fetch(ctx)
}

// ToggleSort flips the direction when field is already active, otherwise
// activates the field ascending, then fetches. A single sort field is active
// at a time.
func (l *Listing[T, D]) ToggleSort(ctx context.Context, field string) error {
	l.mu.Lock()
	if l.params.Sort == field {
		l.params.Order = l.params.Order.flipped()
	} else {
		l.params.Sort = field
		l.params.Order = Ascending
	}
	l.mu.Unlock()
	return l.Fetch(ctx)
}

// SetPage navigates to page n and fetches. The pagination control clamps n;
// an out-of-range value is forwarded to the backend as-is.
func (l *Listing[T, D]) SetPage(ctx context.Context, n int) error {
	l.mu.Lock()
	l.params.Page = n
	l.mu.Unlock()
	return l.Fetch(ctx)
}

// OpenCreate opens the modal with an empty draft.
func (l *Listing[T, D]) OpenCreate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.editingID = ""
	l.draft = l.opts.NewDraft()
	l.modalOpen = true
}

// OpenEdit opens the modal pre-populated from the record.
func (l *Listing[T, D]) OpenEdit(record T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.editingID = l.opts.ID(record)
	l.draft = l.opts.DraftFrom(record)
	l.modalOpen = true
}

// OpenEditByID opens edit mode for a record on the displayed page.
func (l *Listing[T, D]) OpenEditByID(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, record := range l.page.Items {
		if l.opts.ID(record) == id {
			l.editingID = id
			l.draft = l.opts.DraftFrom(record)
			l.modalOpen = true
			return true
		}
	}
	return false
}

// SetDraft replaces the staged draft with form-bound values.
func (l *Listing[T, D]) SetDraft(draft D) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.draft = draft
	l.modalOpen = true
}

// Cancel closes the modal and discards the draft.
func (l *Listing[T, D]) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closeModalLocked()
}

func (l *Listing[T, D]) closeModalLocked() {
	l.modalOpen = false
	l.editingID = ""
	var zero D
	l.draft = zero
}

// Save submits the staged draft: update when editing, create otherwise. The
// draft is coerced and validated before it goes on the wire. On success the
// modal closes and the list is refetched exactly once; on failure the modal
// stays open with the draft unchanged and the error is surfaced as a
// notification.
func (l *Listing[T, D]) Save(ctx context.Context) error {
	l.mu.Lock()
	if !l.modalOpen {
		l.mu.Unlock()
		return errors.New("console: no draft staged")
	}
	draft := l.draft
	editingID := l.editingID
	l.saving = true
	l.mu.Unlock()

	err := l.submit(ctx, draft, editingID)

	l.mu.Lock()
	l.saving = false
	if err != nil {
		l.mu.Unlock()
		l.opts.Notifier.Notify(ctx, NewFlash(FlashError, saveFailureMessage(err)))
		return err
	}
	l.closeModalLocked()
	l.mu.Unlock()

	if editingID != "" {
		l.opts.Notifier.Notify(ctx, NewFlash(FlashSuccess, l.opts.Singular+" updated"))
	} else {
		l.opts.Notifier.Notify(ctx, NewFlash(FlashSuccess, l.opts.Singular+" created"))
	}
	l.opts.Telemetry.Record(ctx, "console.list.save", map[string]any{
		"entity": l.opts.Entity,
		"update": editingID != "",
	})
	return l.Fetch(ctx)
}

func (l *Listing[T, D]) submit(ctx context.Context, draft D, editingID string) error {
	payload, err := draft.Payload()
	if err != nil {
		return err
	}
	if l.opts.Validator != nil {
		if err := l.opts.Validator.Validate(l.opts.Entity, payload); err != nil {
			return err
		}
	}
	if editingID != "" {
		if l.opts.Update == nil {
			return fmt.Errorf("console: %s update not configured", l.opts.Entity)
		}
		return l.opts.Update(ctx, editingID, payload)
	}
	if l.opts.Create == nil {
		return fmt.Errorf("console: %s create not configured", l.opts.Entity)
	}
	return l.opts.Create(ctx, payload)
}

// RequestDelete stages a record for deletion, opening the confirm dialog.
func (l *Listing[T, D]) RequestDelete(record T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.deleteTarget = &record
}

// RequestDeleteByID stages a record from the displayed page.
func (l *Listing[T, D]) RequestDeleteByID(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.page.Items {
		if l.opts.ID(l.page.Items[i]) == id {
			record := l.page.Items[i]
			l.deleteTarget = &record
			return true
		}
	}
	return false
}

// CancelDelete clears the staged target, closing the confirm dialog.
func (l *Listing[T, D]) CancelDelete() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.deleteTarget = nil
}

// ConfirmDelete deletes the staged record. The dialog closes only on
// success; on failure the target stays staged and the error is surfaced.
func (l *Listing[T, D]) ConfirmDelete(ctx context.Context) error {
	l.mu.Lock()
	if l.deleteTarget == nil {
		l.mu.Unlock()
		return nil
	}
	id := l.opts.ID(*l.deleteTarget)
	l.deleting = true
	l.mu.Unlock()

	var err error
	if l.opts.Delete == nil {
		err = fmt.Errorf("console: %s delete not configured", l.opts.Entity)
	} else {
		err = l.opts.Delete(ctx, id)
	}

	l.mu.Lock()
	l.deleting = false
	if err != nil {
		l.mu.Unlock()
		l.opts.Notifier.Notify(ctx, NewFlash(FlashError, deleteFailureMessage(err)))
		return err
	}
	l.deleteTarget = nil
	l.mu.Unlock()

	l.opts.Notifier.Notify(ctx, NewFlash(FlashSuccess, l.opts.Singular+" deleted"))
	l.opts.Telemetry.Record(ctx, "console.list.delete", map[string]any{
		"entity": l.opts.Entity,
		"id":     id,
	})
	return l.Fetch(ctx)
}

func saveFailureMessage(err error) string {
	if reason := hotelapi.Reason(err); reason != "" {
		return reason
	}
	return "Operation failed"
}

func deleteFailureMessage(err error) string {
	if reason := hotelapi.Reason(err); reason != "" {
		return reason
	}
	return "Delete failed"
}

// ColumnView is a table header cell with its sort indicator resolved.
type ColumnView struct {
	Field    string
	Label    string
	Sortable bool
	Active   bool
	Order    SortOrder
}

// FilterView is a filter bar input with its current value resolved.
type FilterView struct {
	FilterField
	Value string
}

// ListingView is an immutable snapshot of the controller for rendering.
type ListingView[T any, D Draft] struct {
	Entity       string
	Singular     string
	Items        []T
	Pagination   hotelapi.Pagination
	Window       PageWindow
	Params       QueryParams
	Columns      []ColumnView
	Filters      []FilterView
	Loading      bool
	Empty        bool
	ModalOpen    bool
	Editing      bool
	EditingID    string
	Draft        D
	Saving       bool
	DeleteTarget *T
	Deleting     bool
}

// Snapshot captures the current state for the presentation layer.
func (l *Listing[T, D]) Snapshot() ListingView[T, D] {
	l.mu.Lock()
	defer l.mu.Unlock()
	columns := make([]ColumnView, len(l.opts.Columns))
	for i, col := range l.opts.Columns {
		columns[i] = ColumnView{
			Field:    col.Field,
			Label:    col.Label,
			Sortable: col.Sortable,
			Active:   l.params.Sort == col.Field,
			Order:    l.params.Order,
		}
	}
	filters := make([]FilterView, len(l.opts.Filters))
	for i, field := range l.opts.Filters {
		filters[i] = FilterView{FilterField: field, Value: l.params.Filters[field.Key]}
	}
	return ListingView[T, D]{
		Entity:       l.opts.Entity,
		Singular:     l.opts.Singular,
		Items:        append([]T(nil), l.page.Items...),
		Pagination:   l.page.Pagination,
		Window:       Window(l.page.Pagination),
		Params:       l.params.clone(),
		Columns:      columns,
		Filters:      filters,
		Loading:      l.loading,
		Empty:        l.fetched && len(l.page.Items) == 0,
		ModalOpen:    l.modalOpen,
		Editing:      l.editingID != "",
		EditingID:    l.editingID,
		Draft:        l.draft,
		Saving:       l.saving,
		DeleteTarget: l.deleteTarget,
		Deleting:     l.deleting,
	}
}
