// Package memory provides a mutex-guarded in-memory UserStore. It backs
// tests and secretless local runs; production uses the postgres adapter.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/lindenweb/authkit/core"
)

type Store struct {
	mu     sync.RWMutex
	users  map[string]*core.User // key: user ID
	emails map[string]string     // normalized email -> user ID
}

var _ core.UserStore = (*Store)(nil)

func New() *Store {
	return &Store{
		users:  make(map[string]*core.User),
		emails: make(map[string]string),
	}
}

// CreateUser inserts a record. The email conflict check and the insert happen
// under one lock, so concurrent registrations with the same email yield
// exactly one success.
func (s *Store) CreateUser(ctx context.Context, u *core.User) error {
	if err := ctx.Err(); err != nil {
		return storeErr(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[u.Email]; taken {
		return core.ErrUserExists
	}

	record := *u
	s.users[u.ID] = &record
	s.emails[u.Email] = u.ID
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr(err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	record := *user
	return &record, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr(err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	record := *s.users[id]
	return &record, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *core.User) error {
	if err := ctx.Err(); err != nil {
		return storeErr(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[u.ID]
	if !ok {
		return core.ErrUserNotFound
	}

	// Profile fields only; identifier, email, hash, and joined-at stay put.
	existing.Name = u.Name
	existing.LastName = u.LastName
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) (*core.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, core.ErrUserNotFound
	}

	delete(s.users, id)
	delete(s.emails, user.Email)
	record := *user
	return &record, nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
}
