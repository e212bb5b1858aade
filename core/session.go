package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lindenweb/authkit/pkg/crypto"
	"github.com/lindenweb/authkit/pkg/logging"
)

// CookieName is the cookie the session token travels in.
const CookieName = "auth_token"

// SessionConfig controls the session token lifetime and cookie attributes.
// One TTL drives both the token expiry and the cookie Max-Age, so the cookie
// never outlives the token it carries.
type SessionConfig struct {
	TTL          time.Duration
	CookieName   string
	CookiePath   string
	CookieSecure bool
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		TTL:          time.Hour,
		CookieName:   CookieName,
		CookiePath:   "/",
		CookieSecure: true,
	}
}

// SessionManager orchestrates registration, login, and session resumption
// over a user store, a password hasher, and a token service. It holds no
// mutable state of its own; every operation is a function of its input, the
// store, and the clock.
type SessionManager struct {
	store  UserStore
	hasher crypto.PasswordHasher
	tokens *crypto.TokenService
	config SessionConfig
	logger logging.Logger
	now    func() time.Time
}

func NewSessionManager(store UserStore, hasher crypto.PasswordHasher, tokens *crypto.TokenService, config SessionConfig, logger logging.Logger) *SessionManager {
	if config.CookieName == "" {
		config.CookieName = CookieName
	}
	if config.CookiePath == "" {
		config.CookiePath = "/"
	}
	if config.TTL <= 0 {
		config.TTL = tokens.TTL()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &SessionManager{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// CookieName reports the configured session cookie name. Transports read
// incoming tokens under this name, matching the cookies they set.
func (m *SessionManager) CookieName() string {
	return m.config.CookieName
}

// WithClock replaces the manager's time source. Intended for tests.
func (m *SessionManager) WithClock(now func() time.Time) *SessionManager {
	m.now = now
	return m
}

// Register validates the input locally, then creates the user and signs them
// in. Invalid input fails fast and never reaches the store. The identifier is
// generated here, not by the store; uniqueness of the email is enforced
// atomically by the store's create.
func (m *SessionManager) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email, err := ValidateEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := m.hasher.Hash(ctx, input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := m.now()
	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		JoinedAt:     now.UTC().Truncate(time.Second),
	}

	if err := m.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrUserExists) {
			m.logger.Warn(ctx, "registration conflict", "email", email)
			return nil, ErrUserExists
		}
		return nil, err
	}

	m.logger.Info(ctx, "user registered", "user_id", user.ID)
	return m.signIn(ctx, user, now)
}

// Login verifies the credentials against the stored hash and signs the user
// in. Unknown email and wrong password both surface ErrInvalidCredentials;
// the distinction lives in internal logs only, to avoid account enumeration.
func (m *SessionManager) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email, err := ValidateEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}

	user, err := m.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			m.logger.Warn(ctx, "login attempt for unknown email", "email", email)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := m.hasher.Verify(ctx, input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		m.logger.Warn(ctx, "login attempt with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return m.signIn(ctx, user, m.now())
}

// Resume re-validates a session token and returns the identity it asserts.
// The subject is looked up on every call, so tokens for deleted users are
// rejected here rather than trusted. When less than half the TTL remains, a
// fresh token and cookie are issued alongside the identity.
func (m *SessionManager) Resume(ctx context.Context, token string) (*ResumeResult, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	now := m.now()
	claims, err := m.tokens.Validate(token, now)
	if err != nil {
		if errors.Is(err, crypto.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		m.logger.Warn(ctx, "session token rejected", "reason", err)
		return nil, ErrInvalidSession
	}

	user, err := m.store.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Token outlived the account. There is no revocation list, so
			// this lookup is what keeps stale tokens from resolving.
			m.logger.Warn(ctx, "session for deleted user", "user_id", claims.Subject)
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	result := &ResumeResult{User: user}
	if remaining := claims.ExpiresAt.Time.Sub(now); remaining < m.config.TTL/2 {
		fresh, err := m.tokens.Issue(user.ID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to refresh token: %w", err)
		}
		result.Refreshed = true
		result.Token = fresh
		result.ExpiresAt = now.Truncate(time.Second).Add(m.config.TTL)
		result.Cookie = m.cookie(fresh)
	}
	return result, nil
}

// DeleteAccount removes the user record and returns the deleted identity.
// Outstanding tokens for the account die at the Resume lookup step.
func (m *SessionManager) DeleteAccount(ctx context.Context, id string) (*User, error) {
	user, err := m.store.DeleteUser(ctx, id)
	if err != nil {
		return nil, err
	}
	m.logger.Info(ctx, "account deleted", "user_id", id)
	return user, nil
}

// UpdateProfile updates the mutable profile fields of an existing user.
// Email, password hash, and joined-at are untouched.
func (m *SessionManager) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*User, error) {
	user, err := m.store.GetUserByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.LastName = input.LastName
	if err := m.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ClearCookie returns the set-cookie instruction that signs the client out.
func (m *SessionManager) ClearCookie() *SessionCookie {
	cookie := m.cookie("")
	cookie.MaxAge = -1
	return cookie
}

func (m *SessionManager) signIn(ctx context.Context, user *User, now time.Time) (*AuthResult, error) {
	token, err := m.tokens.Issue(user.ID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresAt: now.Truncate(time.Second).Add(m.config.TTL),
		Cookie:    m.cookie(token),
	}, nil
}

func (m *SessionManager) cookie(token string) *SessionCookie {
	return &SessionCookie{
		Name:     m.config.CookieName,
		Value:    token,
		Path:     m.config.CookiePath,
		MaxAge:   int(m.config.TTL.Seconds()),
		Secure:   m.config.CookieSecure,
		HTTPOnly: true,
		SameSite: "Lax",
	}
}
