package core

import "context"

// UserStore is the port to the backing persistence layer. It is the sole
// owner of persisted records; callers never cache them beyond a request.
//
// Every call is a single round trip. Implementations wrap native driver
// errors in ErrStoreUnavailable and honor context cancellation so a slow
// store surfaces a timeout instead of hanging the request.
type UserStore interface {
	// CreateUser inserts a new record. The caller has already generated the
	// ID. Returns ErrUserExists if the email is taken; the conflict check and
	// insert are atomic per email.
	CreateUser(ctx context.Context, u *User) error

	// GetUserByID returns the record or ErrUserNotFound.
	GetUserByID(ctx context.Context, id string) (*User, error)

	// GetUserByEmail returns the record or ErrUserNotFound. The email is
	// expected to be normalized by the caller.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// UpdateUser persists the mutable profile fields of an existing record.
	UpdateUser(ctx context.Context, u *User) error

	// DeleteUser removes the record and returns it, or ErrUserNotFound.
	DeleteUser(ctx context.Context, id string) (*User, error)
}
