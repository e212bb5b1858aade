package core

import (
	"regexp"
	"strings"
)

const (
	// MinPasswordLength matches the registration form's minimum.
	MinPasswordLength = 8
	// MaxPasswordLength caps input size before hashing.
	MaxPasswordLength = 128
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?)+$`)

// NormalizeEmail lowercases and trims an email address. All store lookups and
// writes go through the normalized form so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail normalizes and validates an email address, returning the
// normalized form. Validation never touches the store.
func ValidateEmail(email string) (string, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return "", ErrEmailRequired
	}
	if !emailPattern.MatchString(normalized) {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// ValidatePassword checks length bounds only. Content is never restricted;
// any byte sequence within bounds hashes fine.
func ValidatePassword(password string) error {
	switch {
	case password == "":
		return ErrPasswordRequired
	case len(password) < MinPasswordLength:
		return ErrPasswordTooShort
	case len(password) > MaxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}
