package authgate

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// User is a registered account. PasswordHash never leaves the server; the
// json tag keeps it out of any response that serializes a User directly.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserStore persists user records keyed by email.
//
// CreateUser must enforce email uniqueness atomically (a unique index, not a
// read-then-write) and return ErrUserExists on a duplicate. Emails are
// stored and matched exactly as given.
type UserStore interface {
	// CreateUser inserts a new user and returns the created record
	CreateUser(ctx context.Context, email, passwordHash string) (*User, error)

	// GetUserByEmail returns the user with the given email, or ErrUserNotFound
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// MemoryUserStore is a map-backed UserStore for development and tests.
// Safe for concurrent use.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[string]*User // keyed by email
}

// NewMemoryUserStore creates an empty in-memory user store
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]*User)}
}

func (s *MemoryUserStore) CreateUser(ctx context.Context, email, passwordHash string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; ok {
		return nil, ErrUserExists
	}
	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.users[email] = user
	copied := *user
	return &copied, nil
}

func (s *MemoryUserStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}
