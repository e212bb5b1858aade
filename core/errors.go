package core

import "errors"

// Authentication errors
var (
	ErrUserExists         = errors.New("email is already registered")   // 409 Conflict
	ErrUserNotFound       = errors.New("user not found")                // 404 Not Found
	ErrInvalidCredentials = errors.New("invalid email or password")     // 401 Unauthorized
)

// Session errors
var (
	ErrNoSession      = errors.New("no session token provided") // 401
	ErrInvalidSession = errors.New("invalid session token")     // 401
	ErrSessionExpired = errors.New("session expired")           // 401
)

// Validation errors (client input, resolved before any store access)
var (
	ErrEmailRequired    = errors.New("email is required")    // 400
	ErrInvalidEmail     = errors.New("invalid email format") // 400
	ErrPasswordRequired = errors.New("password is required") // 400
	ErrPasswordTooShort = errors.New("password is too short") // 400
	ErrPasswordTooLong  = errors.New("password is too long")  // 400
)

// Store errors. Adapters wrap native driver errors in ErrStoreUnavailable so
// callers never depend on the backing store's error types.
var (
	ErrStoreUnavailable = errors.New("user store unavailable") // 503
)

// Config errors (server-side configuration, fatal at startup)
var (
	ErrSecretRequired = errors.New("signing secret is required") // 500
	ErrSecretTooShort = errors.New("signing secret too short")   // 500
	ErrStoreRequired  = errors.New("user store is required")     // 500
)
