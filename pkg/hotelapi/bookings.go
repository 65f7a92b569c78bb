package hotelapi

import (
	"context"
	"net/http"
)

type bookingListEnvelope struct {
	Bookings   []Booking  `json:"bookings"`
	Pagination Pagination `json:"pagination"`
}

type bookingEnvelope struct {
	Data Booking `json:"data"`
}

// ListBookings fetches one page of the bookings collection.
func (c *Client) ListBookings(ctx context.Context, query BookingQuery) (Page[Booking], error) {
	var resp bookingListEnvelope
	if err := c.do(ctx, http.MethodGet, "/bookings", query.Values(), nil, &resp); err != nil {
		return Page[Booking]{}, err
	}
	return Page[Booking]{Items: resp.Bookings, Pagination: resp.Pagination}, nil
}

// GetBooking fetches a single booking by id.
func (c *Client) GetBooking(ctx context.Context, id string) (Booking, error) {
	var resp bookingEnvelope
	if err := c.do(ctx, http.MethodGet, "/bookings/"+id, nil, nil, &resp); err != nil {
		return Booking{}, err
	}
	return resp.Data, nil
}

// ListUserBookings fetches the bookings that belong to one guest.
func (c *Client) ListUserBookings(ctx context.Context, userID string, query BookingQuery) (Page[Booking], error) {
	var resp bookingListEnvelope
	if err := c.do(ctx, http.MethodGet, "/bookings/user/"+userID, query.Values(), nil, &resp); err != nil {
		return Page[Booking]{}, err
	}
	return Page[Booking]{Items: resp.Bookings, Pagination: resp.Pagination}, nil
}

// CreateBooking creates a booking from an already-coerced payload.
func (c *Client) CreateBooking(ctx context.Context, payload map[string]any) (Booking, error) {
	var resp bookingEnvelope
	if err := c.do(ctx, http.MethodPost, "/bookings", nil, payload, &resp); err != nil {
		return Booking{}, err
	}
	return resp.Data, nil
}

// UpdateBooking replaces a booking's editable fields.
func (c *Client) UpdateBooking(ctx context.Context, id string, payload map[string]any) (Booking, error) {
	var resp bookingEnvelope
	if err := c.do(ctx, http.MethodPut, "/bookings/"+id, nil, payload, &resp); err != nil {
		return Booking{}, err
	}
	return resp.Data, nil
}

// DeleteBooking removes a booking.
func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/bookings/"+id, nil, nil, nil)
}
