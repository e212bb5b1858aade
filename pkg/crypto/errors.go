package crypto

import "errors"

// Hashing errors
var (
	// ErrHashingFailure covers entropy failures during hashing and malformed
	// or unparseable stored hashes during verification. A plain mismatch is
	// not an error.
	ErrHashingFailure = errors.New("password hashing failure")
)

// Token errors
var (
	ErrNoSecret         = errors.New("signing secret is empty")
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token is expired")
)
