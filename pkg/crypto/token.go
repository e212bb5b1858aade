package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set carried by a session token: subject (the user
// identifier), issued-at, and expires-at, all in whole seconds.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and validates HMAC-SHA256 signed session tokens.
// Tokens are never persisted; validation recomputes the signature against the
// process-wide secret. The secret is read once at startup and immutable
// thereafter; rotating it invalidates all outstanding tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// DefaultTTL is the token lifetime used when none is configured.
const DefaultTTL = time.Hour

// NewTokenService returns a service signing with secret. An empty secret is a
// configuration error; the process must not serve auth traffic without it.
func NewTokenService(secret []byte, ttl time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenService{secret: secret, ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue builds and signs a token asserting subject from now until now+TTL.
// Deterministic given identical inputs and secret.
func (s *TokenService) Issue(subject string, now time.Time) (string, error) {
	now = now.Truncate(time.Second)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return tokenString, nil
}

// Validate verifies the signature and expiry of tokenString at the given
// instant. A valid signature with a past expiry yields ErrTokenExpired,
// distinct from ErrInvalidSignature. A token is valid in [iat, exp).
func (s *TokenService) Validate(tokenString string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrInvalidSignature
		}
	}
	if !token.Valid {
		return nil, ErrInvalidSignature
	}

	return claims, nil
}
