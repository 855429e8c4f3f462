package session

import (
	"fmt"
	"sync"

	"github.com/99designs/keyring"

	"github.com/achievify/goaltrack/internal/model"
)

const serviceName = "goaltrack"

// Keyring entry names for the two persisted session values.
const (
	keyToken = "auth-token"
	keyEmail = "user-email"
)

// Manager owns the active session and its durable copy in the system
// keyring. The token is never validated locally; validity is discovered
// lazily on the first authenticated call.
type Manager struct {
	mu      sync.RWMutex
	current model.Session
	open    func() (keyring.Keyring, error)
}

// NewManager creates a session manager backed by the system keyring.
func NewManager() *Manager {
	return &Manager{open: openKeyring}
}

// NewManagerWithKeyring creates a manager over the given keyring.
// Tests use this with an in-memory keyring to stay off the system
// keychain.
func NewManagerWithKeyring(ring keyring.Keyring) *Manager {
	return &Manager{open: func() (keyring.Keyring, error) { return ring, nil }}
}

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/goaltrack/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("goaltrack-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Current returns a copy of the active session.
func (m *Manager) Current() model.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Token returns the active bearer token, or "" when unauthenticated.
func (m *Manager) Token() string {
	return m.Current().Token
}

// Restore loads the persisted token and identity into the active
// session. A missing or partial keyring entry leaves the manager
// unauthenticated without error.
func (m *Manager) Restore() model.Session {
	ring, err := m.open()
	if err != nil {
		return model.Session{}
	}

	token, err := ring.Get(keyToken)
	if err != nil {
		return model.Session{}
	}
	email, err := ring.Get(keyEmail)
	if err != nil {
		return model.Session{}
	}

	s := model.Session{
		Token: string(token.Data),
		Email: string(email.Data),
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return s
}

// Establish stores the session in memory and in the keyring,
// overwriting any prior session.
func (m *Manager) Establish(token, email string) error {
	m.mu.Lock()
	m.current = model.Session{Token: token, Email: email}
	m.mu.Unlock()

	ring, err := m.open()
	if err != nil {
		return err
	}
	if err := ring.Set(keyring.Item{Key: keyToken, Data: []byte(token)}); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	if err := ring.Set(keyring.Item{Key: keyEmail, Data: []byte(email)}); err != nil {
		return fmt.Errorf("storing identity: %w", err)
	}
	return nil
}

// Clear wipes the session from memory and from the keyring. It is
// idempotent: clearing an absent session is not an error.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.current = model.Session{}
	m.mu.Unlock()

	ring, err := m.open()
	if err != nil {
		return
	}
	_ = ring.Remove(keyToken)
	_ = ring.Remove(keyEmail)
}
