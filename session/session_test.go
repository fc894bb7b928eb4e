package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newSession(storage Storage, now time.Time) *Session {
	return New(storage, WithBcryptCost(bcrypt.MinCost), WithClock(func() time.Time { return now }))
}

func TestSession_Signup(t *testing.T) {
	storage := NewMemoryStorage()
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	s := newSession(storage, now)

	user, err := s.Signup("ana@example.com", "hunter2", "Ana")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, user, s.User())

	// stored user carries no password
	raw, ok, err := storage.Get(KeyUser)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, raw, "password")
	assert.NotContains(t, raw, "hunter2")

	// the users list keeps a hash, never the plain password
	users, _, _ := storage.Get(KeyUsers)
	assert.NotContains(t, users, "hunter2")
	assert.Contains(t, users, `"password"`)

	token, _, _ := storage.Get(KeyToken)
	assert.Equal(t, token, s.Token())
	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, now.Add(7*24*time.Hour), claims.ExpiresAt.Time.UTC())
}

func TestSession_SignupDuplicate(t *testing.T) {
	s := newSession(NewMemoryStorage(), time.Now())

	_, err := s.Signup("ana@example.com", "hunter2", "Ana")
	require.NoError(t, err)

	_, err = s.Signup("ana@example.com", "other", "Ana again")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestSession_Login(t *testing.T) {
	storage := NewMemoryStorage()
	s := newSession(storage, time.Now())

	signed, err := s.Signup("ana@example.com", "hunter2", "Ana")
	require.NoError(t, err)
	require.NoError(t, s.Logout())

	_, err = s.Login("ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login("ANA@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login("bob@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, s.User())

	user, err := s.Login("ana@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, signed.ID, user.ID)
	assert.NotEmpty(t, s.Token())
}

func TestSession_Logout(t *testing.T) {
	storage := NewMemoryStorage()
	s := newSession(storage, time.Now())

	_, err := s.Signup("ana@example.com", "hunter2", "Ana")
	require.NoError(t, err)
	require.NoError(t, s.Logout())

	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())
	_, ok, _ := storage.Get(KeyToken)
	assert.False(t, ok)
	_, ok, _ = storage.Get(KeyUser)
	assert.False(t, ok)

	// accounts survive a logout
	_, ok, _ = storage.Get(KeyUsers)
	assert.True(t, ok)
}

func TestSession_Restore(t *testing.T) {
	storage := NewMemoryStorage()

	user, err := newSession(storage, time.Now()).Restore()
	require.NoError(t, err)
	assert.Nil(t, user)

	signed, err := newSession(storage, time.Now()).Signup("ana@example.com", "hunter2", "Ana")
	require.NoError(t, err)

	restored := newSession(storage, time.Now())
	user, err = restored.Restore()
	require.NoError(t, err)
	assert.Equal(t, signed, user)
	assert.Equal(t, signed, restored.User())

	// a user without a token is not a session
	require.NoError(t, storage.Remove(KeyToken))
	user, err = newSession(storage, time.Now()).Restore()
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	storage := NewFileStorage(path)

	_, ok, err := storage.Get(KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.Set(KeyToken, "abc"))
	require.NoError(t, storage.Set(KeyUser, `{"id":"1"}`))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var values map[string]string
	require.NoError(t, json.Unmarshal(data, &values))
	assert.Equal(t, map[string]string{KeyToken: "abc", KeyUser: `{"id":"1"}`}, values)

	// a second handle sees the same values
	v, ok, err := NewFileStorage(path).Get(KeyUser)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"1"}`, v)

	require.NoError(t, storage.Remove(KeyToken))
	require.NoError(t, storage.Remove("missing"))
	_, ok, _ = storage.Get(KeyToken)
	assert.False(t, ok)
}

func TestFileStorage_Session(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	_, err := newSession(NewFileStorage(path), time.Now()).Signup("ana@example.com", "hunter2", "Ana")
	require.NoError(t, err)

	user, err := newSession(NewFileStorage(path), time.Now()).Restore()
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ana", user.Name)
}

func TestFileStorage_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, _, err := NewFileStorage(path).Get(KeyToken)
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	now := time.Now()
	token, err := GenerateToken("user-1", now)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	assert.Empty(t, parts[2], "unsigned token has no signature")

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)

	_, err = ParseToken("not a token")
	assert.Error(t, err)
}
