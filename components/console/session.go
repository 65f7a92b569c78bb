package console

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/goliatone/go-hotel-admin/pkg/hotelapi"
)

var errMissingAuthAPI = errors.New("console: auth api not configured")

// SessionOptions configures the session store. Collaborators are provided via
// interface so applications can swap implementations.
type SessionOptions struct {
	Auth        hotelapi.AuthAPI
	Credentials CredentialStore
	Telemetry   Telemetry
}

// SessionStore owns the authenticated identity and credential token. It is
// the one piece of cross-page shared state; pages other than login/register
// only read from it.
type SessionStore struct {
	opts SessionOptions

	mu      sync.RWMutex
	state   AuthState
	session Session
}

// NewSessionStore builds a session store with safe defaults.
func NewSessionStore(opts SessionOptions) *SessionStore {
	if opts.Credentials == nil {
		opts.Credentials = NewMemoryCredentialStore()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &SessionStore{opts: opts, state: Unauthenticated}
}

// State returns the current lifecycle state.
func (s *SessionStore) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Current returns a copy of the active session.
func (s *SessionStore) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Token exposes the credential token for outbound request injection. It is
// the hotelapi.TokenSource for the client that backs this store.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// Login exchanges credentials for a session. Rejected credentials propagate
// as *hotelapi.AuthError; the state is left Unauthenticated.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	if s.opts.Auth == nil {
		return errMissingAuthAPI
	}
	creds, err := s.opts.Auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	s.adopt(ctx, creds, "login")
	return nil
}

// Register creates an account and signs it in.
func (s *SessionStore) Register(ctx context.Context, input hotelapi.RegisterInput) error {
	if s.opts.Auth == nil {
		return errMissingAuthAPI
	}
	creds, err := s.opts.Auth.Register(ctx, input)
	if err != nil {
		return err
	}
	s.adopt(ctx, creds, "register")
	return nil
}

// Logout clears the session and its persisted mirror synchronously. No
// network call is made.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.session = Session{}
	s.state = Unauthenticated
	s.mu.Unlock()
	_ = s.opts.Credentials.Clear()
	s.opts.Telemetry.Record(ctx, "console.session.logout", nil)
}

// Bootstrap restores a persisted session on startup. A persisted token is
// verified by refreshing the identity; any failure clears the credentials
// and lands Unauthenticated (the token is assumed invalid or expired).
func (s *SessionStore) Bootstrap(ctx context.Context) error {
	persisted, ok, err := s.opts.Credentials.Load()
	if err != nil || !ok || !persisted.Authenticated() {
		s.mu.Lock()
		s.state = Unauthenticated
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.session = persisted
	s.state = Loading
	s.mu.Unlock()

	if s.opts.Auth == nil {
		s.clearOnFailure(ctx)
		return errMissingAuthAPI
	}
	identity, err := s.opts.Auth.Me(ctx)
	if err != nil {
		s.clearOnFailure(ctx)
		return nil
	}

	s.mu.Lock()
	s.session.Identity = identityFrom(identity)
	s.state = Authenticated
	session := s.session
	s.mu.Unlock()
	_ = s.opts.Credentials.Save(session)
	s.opts.Telemetry.Record(ctx, "console.session.restore", map[string]any{"user": session.Identity.ID})
	return nil
}

func (s *SessionStore) adopt(ctx context.Context, creds hotelapi.Credentials, reason string) {
	session := Session{
		Identity:  identityFrom(creds.User),
		Token:     creds.Token,
		ExpiresAt: tokenExpiry(creds.Token),
	}
	s.mu.Lock()
	s.session = session
	s.state = Authenticated
	s.mu.Unlock()
	_ = s.opts.Credentials.Save(session)
	s.opts.Telemetry.Record(ctx, "console.session."+reason, map[string]any{"user": session.Identity.ID})
}

// clearOnFailure implements the fail-safe default: a credential that cannot
// be verified is treated as an implicit logout, not a blocking error.
func (s *SessionStore) clearOnFailure(ctx context.Context) {
	s.mu.Lock()
	s.session = Session{}
	s.state = Unauthenticated
	s.mu.Unlock()
	_ = s.opts.Credentials.Clear()
	s.opts.Telemetry.Record(ctx, "console.session.expired", nil)
}

func identityFrom(user hotelapi.User) Identity {
	return Identity{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
}

// tokenExpiry reads the exp claim without verifying the signature. The
// backend is the verifier; the console only needs the timestamp for display.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
