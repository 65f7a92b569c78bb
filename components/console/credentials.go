package console

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

// MemoryCredentialStore keeps the session in process memory only. It is the
// default when no durable store is configured, and what tests use.
type MemoryCredentialStore struct {
	mu      sync.RWMutex
	session Session
	ok      bool
}

// NewMemoryCredentialStore creates an empty in-memory store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{}
}

func (s *MemoryCredentialStore) Load() (Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.ok, nil
}

func (s *MemoryCredentialStore) Save(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	s.ok = true
	return nil
}

func (s *MemoryCredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{}
	s.ok = false
	return nil
}

// FileCredentialStore mirrors the session into a YAML file so it survives
// restarts. The file is created with owner-only permissions.
type FileCredentialStore struct {
	Path string
}

// NewFileCredentialStore builds a store writing to the given path.
func NewFileCredentialStore(path string) *FileCredentialStore {
	return &FileCredentialStore{Path: path}
}

func (s *FileCredentialStore) Load() (Session, bool, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("console: read credentials %s: %w", s.Path, err)
	}
	var session Session
	if err := yaml.Unmarshal(data, &session); err != nil {
		return Session{}, false, fmt.Errorf("console: parse credentials %s: %w", s.Path, err)
	}
	return session, session.Authenticated(), nil
}

func (s *FileCredentialStore) Save(session Session) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("console: mkdir %s: %w", filepath.Dir(s.Path), err)
	}
	data, err := yaml.Marshal(session)
	if err != nil {
		return fmt.Errorf("console: encode credentials: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("console: write credentials %s: %w", s.Path, err)
	}
	return nil
}

func (s *FileCredentialStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("console: remove credentials %s: %w", s.Path, err)
	}
	return nil
}

// KeyringCredentialStore mirrors the session into the operating system
// keyring under a service/account pair.
type KeyringCredentialStore struct {
	Service string
	Account string
}

// NewKeyringCredentialStore builds a keyring-backed store.
func NewKeyringCredentialStore(service, account string) *KeyringCredentialStore {
	if service == "" {
		service = "go-hotel-admin"
	}
	if account == "" {
		account = "session"
	}
	return &KeyringCredentialStore{Service: service, Account: account}
}

func (s *KeyringCredentialStore) Load() (Session, bool, error) {
	blob, err := keyring.Get(s.Service, s.Account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("console: keyring get: %w", err)
	}
	var session Session
	if err := yaml.Unmarshal([]byte(blob), &session); err != nil {
		return Session{}, false, fmt.Errorf("console: parse keyring credentials: %w", err)
	}
	return session, session.Authenticated(), nil
}

func (s *KeyringCredentialStore) Save(session Session) error {
	data, err := yaml.Marshal(session)
	if err != nil {
		return fmt.Errorf("console: encode credentials: %w", err)
	}
	if err := keyring.Set(s.Service, s.Account, string(data)); err != nil {
		return fmt.Errorf("console: keyring set: %w", err)
	}
	return nil
}

func (s *KeyringCredentialStore) Clear() error {
	if err := keyring.Delete(s.Service, s.Account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("console: keyring delete: %w", err)
	}
	return nil
}
