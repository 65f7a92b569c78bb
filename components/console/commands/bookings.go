package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	console "github.com/goliatone/go-hotel-admin/components/console"
	"github.com/goliatone/go-hotel-admin/pkg/hotelapi"
)

// SaveBookingInput carries the booking form values as submitted. Numeric
// fields stay strings; the draft coerces them before they go on the wire.
type SaveBookingInput struct {
	User         string `json:"user"`
	RoomNumber   string `json:"roomNumber"`
	RoomType     string `json:"roomType"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Guests       string `json:"guests"`
	TotalPrice   string `json:"totalPrice"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
}

// SaveBookingCommand stages the form values on the bookings listing and
// submits them.
type SaveBookingCommand struct {
	listing   *console.Listing[hotelapi.Booking, *console.BookingDraft]
	telemetry Telemetry
}

// NewSaveBookingCommand builds a command instance.
func NewSaveBookingCommand(listing *console.Listing[hotelapi.Booking, *console.BookingDraft], telemetry Telemetry) *SaveBookingCommand {
	return &SaveBookingCommand{listing: listing, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveBookingInput] = (*SaveBookingCommand)(nil)

// Execute stages and submits the draft.
func (c *SaveBookingCommand) Execute(ctx context.Context, msg SaveBookingInput) error {
	if c.listing == nil {
		return errors.New("save booking command requires listing")
	}
	c.listing.SetDraft(&console.BookingDraft{
		User:         msg.User,
		RoomNumber:   msg.RoomNumber,
		RoomType:     msg.RoomType,
		CheckInDate:  msg.CheckInDate,
		CheckOutDate: msg.CheckOutDate,
		Guests:       msg.Guests,
		TotalPrice:   msg.TotalPrice,
		Status:       msg.Status,
		Notes:        msg.Notes,
	})
	if err := c.listing.Save(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.booking_save", map[string]any{"room": msg.RoomNumber})
	return nil
}

// DeleteBookingInput identifies the booking to delete. An empty ID confirms
// the already staged target.
type DeleteBookingInput struct {
	ID string `json:"id"`
}

// DeleteBookingCommand confirms a staged booking deletion.
type DeleteBookingCommand struct {
	listing   *console.Listing[hotelapi.Booking, *console.BookingDraft]
	telemetry Telemetry
}

// NewDeleteBookingCommand builds a command instance.
func NewDeleteBookingCommand(listing *console.Listing[hotelapi.Booking, *console.BookingDraft], telemetry Telemetry) *DeleteBookingCommand {
	return &DeleteBookingCommand{listing: listing, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteBookingInput] = (*DeleteBookingCommand)(nil)

// Execute deletes the staged booking.
func (c *DeleteBookingCommand) Execute(ctx context.Context, msg DeleteBookingInput) error {
	if c.listing == nil {
		return errors.New("delete booking command requires listing")
	}
	if msg.ID != "" {
		c.listing.RequestDeleteByID(msg.ID)
	}
	if err := c.listing.ConfirmDelete(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.booking_delete", map[string]any{"id": msg.ID})
	return nil
}
