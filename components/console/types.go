package console

import (
	"context"
	"time"
)

// AuthState tracks where the session is in its lifecycle.
type AuthState int

const (
	// Unauthenticated means no usable credentials are held.
	Unauthenticated AuthState = iota
	// Loading means a persisted token is being verified against the backend.
	Loading
	// Authenticated means the backend confirmed the held credentials.
	Authenticated
)

func (s AuthState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Identity is the signed-in operator as reported by the backend.
type Identity struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Role  string `json:"role" yaml:"role"`
}

// Session couples the identity with its credential token. ExpiresAt is taken
// from the token's claims when it parses as a JWT; zero otherwise.
type Session struct {
	Identity  Identity  `json:"identity" yaml:"identity"`
	Token     string    `json:"token" yaml:"token"`
	ExpiresAt time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// Authenticated reports whether the session holds a credential token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// CredentialStore mirrors the session into durable client-side storage so it
// survives restarts. Load returns ok=false when nothing is persisted.
type CredentialStore interface {
	Load() (Session, bool, error)
	Save(session Session) error
	Clear() error
}

// DraftValidator checks an entity payload before it is submitted.
type DraftValidator interface {
	Validate(entity string, payload map[string]any) error
}

// Notifier surfaces user-visible notifications (the toast equivalent).
type Notifier interface {
	Notify(ctx context.Context, flash Flash)
}
