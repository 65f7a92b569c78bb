package console

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goliatone/go-hotel-admin/pkg/hotelapi"
)

// BookingDraft is the typed staging object for the booking form. Numeric
// fields hold the raw string form-input value and are coerced in Payload.
type BookingDraft struct {
	User         string
	RoomNumber   string
	RoomType     string
	CheckInDate  string
	CheckOutDate string
	Guests       string
	TotalPrice   string
	Status       string
	Notes        string
}

// NewBookingDraft returns the create-mode defaults.
func NewBookingDraft() *BookingDraft {
	return &BookingDraft{
		RoomType: "single",
		Status:   "pending",
		Guests:   "1",
	}
}

// BookingDraftFrom pre-populates a draft for edit mode, rendering dates in
// the yyyy-mm-dd shape date inputs expect.
func BookingDraftFrom(b hotelapi.Booking) *BookingDraft {
	draft := &BookingDraft{
		User:       b.User.ID,
		RoomNumber: b.RoomNumber,
		RoomType:   b.RoomType,
		Guests:     strconv.Itoa(b.Guests),
		TotalPrice: strconv.FormatFloat(b.TotalPrice, 'f', -1, 64),
		Status:     b.Status,
		Notes:      b.Notes,
	}
	if !b.CheckInDate.IsZero() {
		draft.CheckInDate = b.CheckInDate.Format("2006-01-02")
	}
	if !b.CheckOutDate.IsZero() {
		draft.CheckOutDate = b.CheckOutDate.Format("2006-01-02")
	}
	return draft
}

// Payload converts the draft to the wire shape, coercing guests to an
// integer and totalPrice to a float.
func (d *BookingDraft) Payload() (map[string]any, error) {
	guests := 1
	if d.Guests != "" {
		parsed, err := strconv.Atoi(d.Guests)
		if err != nil {
			return nil, fmt.Errorf("console: guests must be a whole number: %w", err)
		}
		guests = parsed
	}
	price := 0.0
	if d.TotalPrice != "" {
		parsed, err := strconv.ParseFloat(d.TotalPrice, 64)
		if err != nil {
			return nil, fmt.Errorf("console: total price must be a number: %w", err)
		}
		price = parsed
	}
	payload := map[string]any{
		"user":         d.User,
		"roomNumber":   d.RoomNumber,
		"roomType":     d.RoomType,
		"checkInDate":  d.CheckInDate,
		"checkOutDate": d.CheckOutDate,
		"guests":       guests,
		"totalPrice":   price,
		"status":       d.Status,
	}
	if d.Notes != "" {
		payload["notes"] = d.Notes
	}
	return payload, nil
}

var bookingDraftSchema = map[string]any{
	"type":     "object",
	"required": []any{"user", "roomNumber", "roomType", "checkInDate", "checkOutDate", "status"},
	"properties": map[string]any{
		"user":         map[string]any{"type": "string", "minLength": 1},
		"roomNumber":   map[string]any{"type": "string", "minLength": 1},
		"roomType":     map[string]any{"type": "string", "enum": []any{"single", "double", "suite", "deluxe"}},
		"checkInDate":  map[string]any{"type": "string", "minLength": 10},
		"checkOutDate": map[string]any{"type": "string", "minLength": 10},
		"guests":       map[string]any{"type": "integer", "minimum": 1},
		"totalPrice":   map[string]any{"type": "number", "minimum": 0},
		"status":       map[string]any{"type": "string", "enum": []any{"pending", "confirmed", "cancelled", "completed"}},
		"notes":        map[string]any{"type": "string"},
	},
}

// BookingsListingOptions configures NewBookingsListing.
type BookingsListingOptions struct {
	API       hotelapi.BookingAPI
	Notifier  Notifier
	Telemetry Telemetry
	Validator DraftValidator
	PageSize  int
}

// NewBookingsListing builds the list-management controller for the Bookings
// screen.
func NewBookingsListing(opts BookingsListingOptions) (*Listing[hotelapi.Booking, *BookingDraft], error) {
	validator := opts.Validator
	if validator == nil {
		sv := NewSchemaValidator()
		sv.Register("bookings", bookingDraftSchema)
		validator = sv
	}
	return NewListing(ListingOptions[hotelapi.Booking, *BookingDraft]{
		Entity:   "bookings",
		Singular: "Booking",
		Fetch: func(ctx context.Context, params QueryParams) (hotelapi.Page[hotelapi.Booking], error) {
			return opts.API.ListBookings(ctx, hotelapi.BookingQuery{
				ListQuery: listQueryFrom(params),
				Status:    params.Filters["status"],
				RoomType:  params.Filters["roomType"],
				MinPrice:  params.Filters["minPrice"],
				MaxPrice:  params.Filters["maxPrice"],
			})
		},
		Create: func(ctx context.Context, payload map[string]any) error {
			_, err := opts.API.CreateBooking(ctx, payload)
			return err
		},
		Update: func(ctx context.Context, id string, payload map[string]any) error {
			_, err := opts.API.UpdateBooking(ctx, id, payload)
			return err
		},
		Delete:    opts.API.DeleteBooking,
		ID:        func(b hotelapi.Booking) string { return b.ID },
		NewDraft:  NewBookingDraft,
		DraftFrom: BookingDraftFrom,
		Columns: []Column{
			{Field: "user", Label: "Guest"},
			{Field: "roomNumber", Label: "Room", Sortable: true},
			{Field: "roomType", Label: "Type"},
			{Field: "checkInDate", Label: "Check-in", Sortable: true},
			{Field: "checkOutDate", Label: "Check-out"},
			{Field: "totalPrice", Label: "Price", Sortable: true},
			{Field: "status", Sortable: true},
		},
		Filters: []FilterField{
			{Key: "status", Label: "Status", Kind: "select", Options: hotelapi.BookingStatuses},
			{Key: "roomType", Label: "Room Type", Kind: "select", Options: hotelapi.RoomTypes},
			{Key: "minPrice", Label: "Min Price", Kind: "number", Placeholder: "0"},
			{Key: "maxPrice", Label: "Max Price", Kind: "number", Placeholder: "1000"},
		},
		PageSize:  opts.PageSize,
		Validator: validator,
		Notifier:  opts.Notifier,
		Telemetry: opts.Telemetry,
	})
}
