package session

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstablishAndRestore(t *testing.T) {
	ring := keyring.NewArrayKeyring(nil)

	first := NewManagerWithKeyring(ring)
	require.NoError(t, first.Establish("tok-1", "user@example.com"))
	assert.Equal(t, "tok-1", first.Token())
	assert.True(t, first.Current().Active())

	// A fresh manager over the same keyring picks the session back up.
	second := NewManagerWithKeyring(ring)
	s := second.Restore()
	assert.Equal(t, "tok-1", s.Token)
	assert.Equal(t, "user@example.com", s.Email)
	assert.Equal(t, "tok-1", second.Token())
}

func TestRestoreWithEmptyKeyring(t *testing.T) {
	m := NewManagerWithKeyring(keyring.NewArrayKeyring(nil))

	s := m.Restore()

	assert.False(t, s.Active())
	assert.Empty(t, m.Token())
}

func TestClearIsIdempotent(t *testing.T) {
	ring := keyring.NewArrayKeyring(nil)
	m := NewManagerWithKeyring(ring)
	require.NoError(t, m.Establish("tok-1", "user@example.com"))

	m.Clear()
	m.Clear()

	assert.Empty(t, m.Token())
	assert.False(t, NewManagerWithKeyring(ring).Restore().Active())
}

func TestEstablishOverwritesPriorSession(t *testing.T) {
	ring := keyring.NewArrayKeyring(nil)
	m := NewManagerWithKeyring(ring)
	require.NoError(t, m.Establish("tok-1", "first@example.com"))
	require.NoError(t, m.Establish("tok-2", "second@example.com"))

	assert.Equal(t, "tok-2", m.Token())
	s := NewManagerWithKeyring(ring).Restore()
	assert.Equal(t, "second@example.com", s.Email)
}
