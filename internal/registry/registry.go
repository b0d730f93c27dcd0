// Package registry implements an in-memory, append-only store of users
// together with two stateless helpers: price aggregation and token
// generation.
package registry

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/userregistry/internal/logging"
	"github.com/google/uuid"
)

// PasswordHasher turns a raw password into a salted hash and checks it later.
// *cryptox.PasswordHasher satisfies it.
type PasswordHasher interface {
	Hash(password []byte) (salt, key []byte, err error)
	Verify(password, salt, key []byte) bool
}

// Registry holds users in insertion order. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	users  []*User
	hasher PasswordHasher
	logger logging.Logger
	now    func() time.Time
}

// New returns an empty registry.
func New(hasher PasswordHasher, logger logging.Logger) *Registry {
	return &Registry{
		hasher: hasher,
		logger: logger.With("component", "registry"),
		now:    time.Now,
	}
}

// GetUserByID returns the first user whose ID equals id.
// ok is false when there is no such user.
func (r *Registry) GetUserByID(id string) (user *User, ok bool) {
	return r.find(func(u *User) bool { return u.ID == id })
}

// GetUserByEmail returns the first user registered with email.
func (r *Registry) GetUserByEmail(email string) (user *User, ok bool) {
	return r.find(func(u *User) bool { return u.Email == email })
}

func (r *Registry) find(match func(*User) bool) (*User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			return u, true
		}
	}
	return nil, false
}

// CreateUser hashes password, appends a new user and returns it.
//
// Neither the email format nor duplicates are checked and an empty password
// is accepted. The only error source is the hasher.
func (r *Registry) CreateUser(ctx context.Context, email, password string) (*User, error) {
	salt, hash, err := r.hasher.Hash([]byte(password))
	if err != nil {
		r.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordSalt: salt,
		PasswordHash: hash,
		CreatedAt:    r.now(),
	}

	r.mu.Lock()
	r.users = append(r.users, user)
	n := len(r.users)
	r.mu.Unlock()

	r.logger.Info(ctx, "user created", "user_id", user.ID, "users", n)

	return user, nil
}

// VerifyPassword reports whether password belongs to the user with id.
// Unknown ids yield false.
func (r *Registry) VerifyPassword(ctx context.Context, id, password string) bool {
	user, ok := r.GetUserByID(id)
	if !ok {
		r.logger.Debug(ctx, "password check for unknown user", "user_id", id)
		return false
	}

	valid := r.hasher.Verify([]byte(password), user.PasswordSalt, user.PasswordHash)
	if !valid {
		r.logger.Warn(ctx, "password mismatch", "user_id", id)
	}
	return valid
}

// Len returns the number of users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// Users returns the users in insertion order. The slice is a copy;
// the records themselves are shared.
func (r *Registry) Users() []*User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.users)
}
