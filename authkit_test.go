package authkit_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	authkit "github.com/lindenweb/authkit"
	"github.com/lindenweb/authkit/adapters/memory"
	"github.com/lindenweb/authkit/pkg/crypto"
)

func testHasher() authkit.PasswordHasher {
	return crypto.NewPool(&crypto.Argon2{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}, 4)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  authkit.Config
		wantErr error
	}{
		{
			name:   "valid config",
			config: authkit.Config{Secret: strings.Repeat("s", 32), Store: memory.New()},
		},
		{
			name:    "missing secret",
			config:  authkit.Config{Store: memory.New()},
			wantErr: authkit.ErrSecretRequired,
		},
		{
			name:    "short secret",
			config:  authkit.Config{Secret: "too-short", Store: memory.New()},
			wantErr: authkit.ErrSecretTooShort,
		},
		{
			name:    "missing store",
			config:  authkit.Config{Secret: strings.Repeat("s", 32)},
			wantErr: authkit.ErrStoreRequired,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			auth, err := authkit.New(test.config)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, test.wantErr)
			}
			if test.wantErr != nil {
				return
			}
			if auth.Sessions == nil || auth.Tokens == nil || auth.Hasher == nil {
				t.Errorf("New() returned partially wired Auth: %+v", auth)
			}
		})
	}
}

// End-to-end flow through the facade: register, resume, sign in again, and
// confirm a wrong password never authenticates.
func TestAuth_Flow(t *testing.T) {
	auth, err := authkit.New(authkit.Config{
		Secret: strings.Repeat("s", 32),
		Store:  memory.New(),
		Hasher: testHasher(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	registered, err := auth.Sessions.Register(ctx, authkit.RegisterInput{
		Email:    "alice@example.com",
		Password: "SecurePass123!",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	resumed, err := auth.Sessions.Resume(ctx, registered.Token)
	if err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if resumed.User.ID != registered.User.ID {
		t.Errorf("Resume() identity = %q, want %q", resumed.User.ID, registered.User.ID)
	}

	loggedIn, err := auth.Sessions.Login(ctx, authkit.LoginInput{
		Email:    "alice@example.com",
		Password: "SecurePass123!",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if loggedIn.User.ID != registered.User.ID {
		t.Errorf("Login() identity = %q, want %q", loggedIn.User.ID, registered.User.ID)
	}

	_, err = auth.Sessions.Login(ctx, authkit.LoginInput{
		Email:    "alice@example.com",
		Password: "WrongPass123!",
	})
	if !errors.Is(err, authkit.ErrInvalidCredentials) {
		t.Fatalf("Login() with wrong password error = %v, want ErrInvalidCredentials", err)
	}
}
