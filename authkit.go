// Package authkit turns a submitted email/password pair into a verified
// identity: credential hashing, signed session tokens, cookie handling, and a
// narrow user-store contract. HTTP transports and database engines plug in
// through the adapters subpackages.
package authkit

import (
	"fmt"
	"time"

	"github.com/lindenweb/authkit/core"
	"github.com/lindenweb/authkit/pkg/crypto"
	"github.com/lindenweb/authkit/pkg/logging"
)

// interfaces
type (
	UserStore = core.UserStore

	PasswordHasher = crypto.PasswordHasher

	Logger = logging.Logger
)

// structs
type (
	SessionManager = core.SessionManager
	SessionConfig  = core.SessionConfig
	TokenService   = crypto.TokenService
)

type (
	User               = core.User
	Claims             = crypto.Claims
	RegisterInput      = core.RegisterInput
	LoginInput         = core.LoginInput
	UpdateProfileInput = core.UpdateProfileInput
	AuthResult         = core.AuthResult
	ResumeResult       = core.ResumeResult
	SessionCookie      = core.SessionCookie
)

const (
	// CookieName is the cookie the session token travels in.
	CookieName = core.CookieName

	defaultSecretLen = 32
)

// Constructors & helpers (convenience re-exports)
var (
	NewArgon2            = crypto.NewArgon2
	NewTokenService      = crypto.NewTokenService
	DefaultSessionConfig = core.DefaultSessionConfig
)

var (
	ErrUserExists         = core.ErrUserExists
	ErrUserNotFound       = core.ErrUserNotFound
	ErrInvalidCredentials = core.ErrInvalidCredentials
)

var (
	ErrNoSession      = core.ErrNoSession
	ErrInvalidSession = core.ErrInvalidSession
	ErrSessionExpired = core.ErrSessionExpired
)

var (
	ErrEmailRequired    = core.ErrEmailRequired
	ErrInvalidEmail     = core.ErrInvalidEmail
	ErrPasswordRequired = core.ErrPasswordRequired
	ErrPasswordTooShort = core.ErrPasswordTooShort
	ErrPasswordTooLong  = core.ErrPasswordTooLong
)

var (
	ErrStoreUnavailable = core.ErrStoreUnavailable
	ErrSecretRequired   = core.ErrSecretRequired
	ErrSecretTooShort   = core.ErrSecretTooShort
	ErrStoreRequired    = core.ErrStoreRequired
)

// Config assembles an Auth instance. Secret and Store are required;
// everything else has defaults.
type Config struct {
	Secret string
	Store  core.UserStore

	// Optional config
	SessionConfig *core.SessionConfig
	Hasher        crypto.PasswordHasher
	HashWorkers   int
	Logger        logging.Logger
}

// Auth bundles the wired session manager and its collaborators.
type Auth struct {
	Sessions *core.SessionManager
	Tokens   *crypto.TokenService
	Hasher   crypto.PasswordHasher
}

// New validates config and wires the session manager. The secret is read
// exactly once, here; a missing or short secret fails construction so the
// process never serves auth traffic without it.
func New(config Config) (*Auth, error) {
	if config.Secret == "" {
		return nil, ErrSecretRequired
	}
	if len(config.Secret) < defaultSecretLen {
		return nil, fmt.Errorf("%w - minimum of %d characters", ErrSecretTooShort, defaultSecretLen)
	}
	if config.Store == nil {
		return nil, ErrStoreRequired
	}

	// Set Defaults

	sessionConfig := config.SessionConfig
	if sessionConfig == nil {
		defaults := DefaultSessionConfig()
		sessionConfig = &defaults
	}
	if sessionConfig.TTL <= 0 {
		sessionConfig.TTL = time.Hour
	}

	hasher := config.Hasher
	if hasher == nil {
		hasher = crypto.NewPool(crypto.NewArgon2(), config.HashWorkers)
	}

	logger := config.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	tokens, err := crypto.NewTokenService([]byte(config.Secret), sessionConfig.TTL)
	if err != nil {
		return nil, err
	}

	sessions := core.NewSessionManager(config.Store, hasher, tokens, *sessionConfig, logger)

	return &Auth{
		Sessions: sessions,
		Tokens:   tokens,
		Hasher:   hasher,
	}, nil
}
