// Package postgres implements the user store on PostgreSQL via the pgx
// stdlib driver. Migrations run at open time with goose.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/lindenweb/authkit/adapters/postgres/migrations"
	"github.com/lindenweb/authkit/core"
)

// DefaultTimeout bounds each store round trip when the caller's context
// carries no earlier deadline.
const DefaultTimeout = 3 * time.Second

type Store struct {
	db      *sql.DB
	timeout time.Duration
}

var _ core.UserStore = (*Store)(nil)

// New wraps an existing handle. A non-positive timeout falls back to
// DefaultTimeout.
func New(db *sql.DB, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Store{db: db, timeout: timeout}
}

// Open connects to dsn, applies pending migrations, and returns the store.
func Open(ctx context.Context, dsn string, timeout time.Duration) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	store := New(db, timeout)
	if err := store.runMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, s.db, ".")
}

// withTimeout derives the per-call deadline every query runs under.
func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}
