package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-hotel-admin/pkg/hotelapi"
)

// sessionService is the slice of the session store commands need.
type sessionService interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, input hotelapi.RegisterInput) error
	Logout(ctx context.Context)
}

// LoginInput carries sign-in form values.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginCommand wraps SessionStore.Login so transports can invoke sign-in
// without linking directly against the store.
type LoginCommand struct {
	session   sessionService
	telemetry Telemetry
}

// NewLoginCommand builds a command instance.
func NewLoginCommand(session sessionService, telemetry Telemetry) *LoginCommand {
	return &LoginCommand{session: session, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LoginInput] = (*LoginCommand)(nil)

// Execute signs the operator in.
func (c *LoginCommand) Execute(ctx context.Context, msg LoginInput) error {
	if c.session == nil {
		return errors.New("login command requires session store")
	}
	if err := c.session.Login(ctx, msg.Email, msg.Password); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.login", map[string]any{"email": msg.Email})
	return nil
}

// RegisterInput carries sign-up form values.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// RegisterCommand wraps SessionStore.Register.
type RegisterCommand struct {
	session   sessionService
	telemetry Telemetry
}

// NewRegisterCommand builds a command instance.
func NewRegisterCommand(session sessionService, telemetry Telemetry) *RegisterCommand {
	return &RegisterCommand{session: session, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RegisterInput] = (*RegisterCommand)(nil)

// Execute creates the account and signs it in.
func (c *RegisterCommand) Execute(ctx context.Context, msg RegisterInput) error {
	if c.session == nil {
		return errors.New("register command requires session store")
	}
	input := hotelapi.RegisterInput{
		Name:     msg.Name,
		Email:    msg.Email,
		Password: msg.Password,
		Phone:    msg.Phone,
	}
	if err := c.session.Register(ctx, input); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.register", map[string]any{"email": msg.Email})
	return nil
}

// LogoutInput is the (empty) logout message.
type LogoutInput struct{}

// LogoutCommand wraps SessionStore.Logout.
type LogoutCommand struct {
	session   sessionService
	telemetry Telemetry
}

// NewLogoutCommand builds a command instance.
func NewLogoutCommand(session sessionService, telemetry Telemetry) *LogoutCommand {
	return &LogoutCommand{session: session, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LogoutInput] = (*LogoutCommand)(nil)

// Execute clears the session.
func (c *LogoutCommand) Execute(ctx context.Context, _ LogoutInput) error {
	if c.session == nil {
		return errors.New("logout command requires session store")
	}
	c.session.Logout(ctx)
	c.telemetry.Record(ctx, "console.command.logout", nil)
	return nil
}
