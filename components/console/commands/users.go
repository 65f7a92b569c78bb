package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	console "github.com/goliatone/go-hotel-admin/components/console"
	"github.com/goliatone/go-hotel-admin/pkg/hotelapi"
)

// SaveUserInput carries the user form values as submitted.
type SaveUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// SaveUserCommand stages the form values on the users listing and submits
// them. The listing decides between create and update from its own modal
// state.
type SaveUserCommand struct {
	listing   *console.Listing[hotelapi.User, *console.UserDraft]
	telemetry Telemetry
}

// NewSaveUserCommand builds a command instance.
func NewSaveUserCommand(listing *console.Listing[hotelapi.User, *console.UserDraft], telemetry Telemetry) *SaveUserCommand {
	return &SaveUserCommand{listing: listing, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveUserInput] = (*SaveUserCommand)(nil)

// Execute stages and submits the draft.
func (c *SaveUserCommand) Execute(ctx context.Context, msg SaveUserInput) error {
	if c.listing == nil {
		return errors.New("save user command requires listing")
	}
	c.listing.SetDraft(&console.UserDraft{
		Name:     msg.Name,
		Email:    msg.Email,
		Password: msg.Password,
		Phone:    msg.Phone,
		Role:     msg.Role,
	})
	if err := c.listing.Save(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.user_save", map[string]any{"email": msg.Email})
	return nil
}

// DeleteUserInput identifies the user to delete. An empty ID confirms the
// already staged target.
type DeleteUserInput struct {
	ID string `json:"id"`
}

// DeleteUserCommand confirms a staged user deletion.
type DeleteUserCommand struct {
	listing   *console.Listing[hotelapi.User, *console.UserDraft]
	telemetry Telemetry
}

// NewDeleteUserCommand builds a command instance.
func NewDeleteUserCommand(listing *console.Listing[hotelapi.User, *console.UserDraft], telemetry Telemetry) *DeleteUserCommand {
	return &DeleteUserCommand{listing: listing, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteUserInput] = (*DeleteUserCommand)(nil)

// Execute deletes the staged user.
func (c *DeleteUserCommand) Execute(ctx context.Context, msg DeleteUserInput) error {
	if c.listing == nil {
		return errors.New("delete user command requires listing")
	}
	if msg.ID != "" {
		c.listing.RequestDeleteByID(msg.ID)
	}
	if err := c.listing.ConfirmDelete(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.user_delete", map[string]any{"id": msg.ID})
	return nil
}
