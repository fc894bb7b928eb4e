// Package session is a mocked authentication layer for the terminal client.
// Accounts live in local storage on the user's machine, and the token is an
// unsigned JWT that no server checks.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// Session errors
var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is the signed-in user as exposed to the rest of the client.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// account is a user plus the password hash, kept under KeyUsers only.
type account struct {
	User
	Password string `json:"password"`
}

// Session owns the current user and token.
type Session struct {
	storage Storage
	cost    int
	now     func() time.Time

	mu    sync.RWMutex
	user  *User
	token string
}

// Option configures a Session.
type Option func(*Session)

// WithBcryptCost sets the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(s *Session) {
		s.cost = cost
	}
}

// WithClock replaces time.Now for token expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New creates a signed-out session over storage.
func New(storage Storage, opts ...Option) *Session {
	s := &Session{
		storage: storage,
		cost:    bcrypt.DefaultCost,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore picks up a previous session when both token and user are stored.
// It returns nil without error when there is none.
func (s *Session) Restore() (*User, error) {
	token, hasToken, err := s.storage.Get(KeyToken)
	if err != nil {
		return nil, err
	}
	raw, hasUser, err := s.storage.Get(KeyUser)
	if err != nil {
		return nil, err
	}
	if !hasToken || !hasUser || token == "" {
		return nil, nil
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decoding stored user: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()

	u := user
	return &u, nil
}

// Signup registers a new local account and signs it in.
func (s *Session) Signup(email, password, name string) (*User, error) {
	accounts, err := s.accounts()
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Email == email {
			return nil, ErrUserExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	a := account{
		User:     User{ID: uuid.NewString(), Email: email, Name: name},
		Password: string(hash),
	}
	accounts = append(accounts, a)

	data, err := json.Marshal(accounts)
	if err != nil {
		return nil, err
	}
	if err := s.storage.Set(KeyUsers, string(data)); err != nil {
		return nil, err
	}

	log.Debug().Str("user", a.ID).Msg("account created")
	return s.start(a.User)
}

// Login signs in the account with exactly this email and password.
func (s *Session) Login(email, password string) (*User, error) {
	accounts, err := s.accounts()
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)) != nil {
			break
		}
		return s.start(a.User)
	}
	return nil, ErrInvalidCredentials
}

// Logout forgets the token and user.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.storage.Remove(KeyToken); err != nil {
		return err
	}
	return s.storage.Remove(KeyUser)
}

// User returns the signed-in user, nil when signed out.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the current mock token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) accounts() ([]account, error) {
	raw, ok, err := s.storage.Get(KeyUsers)
	if err != nil || !ok || raw == "" {
		return []account{}, err
	}
	var accounts []account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, fmt.Errorf("decoding stored users: %w", err)
	}
	return accounts, nil
}

// start issues a token and persists it with the password-free user.
func (s *Session) start(user User) (*User, error) {
	token, err := GenerateToken(user.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	if err := s.storage.Set(KeyToken, token); err != nil {
		return nil, err
	}
	if err := s.storage.Set(KeyUser, string(data)); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()

	u := user
	return &u, nil
}
