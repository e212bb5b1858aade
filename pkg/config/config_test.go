package config

import (
	"testing"
	"time"
)

func clearAuthEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"AUTH_SECRET", "DATABASE_DSN", "HTTP_ADDR",
		"SESSION_TTL", "COOKIE_SECURE", "STORE_TIMEOUT", "HASH_WORKERS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	clearAuthEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail when AUTH_SECRET is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearAuthEnv(t)
	t.Setenv("AUTH_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", cfg.SessionTTL)
	}
	if !cfg.CookieSecure {
		t.Error("CookieSecure should default to true")
	}
	if cfg.StoreTimeout != 3*time.Second {
		t.Errorf("StoreTimeout = %v, want 3s", cfg.StoreTimeout)
	}
	if cfg.HashWorkers != 0 {
		t.Errorf("HashWorkers = %d, want 0", cfg.HashWorkers)
	}
	if cfg.DatabaseDSN != "" {
		t.Errorf("DatabaseDSN = %q, want empty", cfg.DatabaseDSN)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearAuthEnv(t)
	t.Setenv("AUTH_SECRET", "test-secret")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("STORE_TIMEOUT", "10s")
	t.Setenv("HASH_WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want :9090", cfg.HTTPAddr)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", cfg.SessionTTL)
	}
	if cfg.CookieSecure {
		t.Error("CookieSecure should be false")
	}
	if cfg.StoreTimeout != 10*time.Second {
		t.Errorf("StoreTimeout = %v, want 10s", cfg.StoreTimeout)
	}
	if cfg.HashWorkers != 8 {
		t.Errorf("HashWorkers = %d, want 8", cfg.HashWorkers)
	}
}

// Unparseable values fall back to the defaults rather than failing startup.
func TestLoad_MalformedValuesFallBack(t *testing.T) {
	clearAuthEnv(t)
	t.Setenv("AUTH_SECRET", "test-secret")
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("COOKIE_SECURE", "probably")
	t.Setenv("HASH_WORKERS", "lots")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h fallback", cfg.SessionTTL)
	}
	if !cfg.CookieSecure {
		t.Error("CookieSecure should fall back to true")
	}
	if cfg.HashWorkers != 0 {
		t.Errorf("HashWorkers = %d, want 0 fallback", cfg.HashWorkers)
	}
}
