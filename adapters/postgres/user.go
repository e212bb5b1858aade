package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lindenweb/authkit/core"
)

// uniqueViolation is the PostgreSQL error code raised when the users_email
// unique index rejects an insert. The index is what makes the conflict check
// and insert atomic per email.
const uniqueViolation = "23505"

func (s *Store) CreateUser(ctx context.Context, u *core.User) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `INSERT INTO users (id, email, password_hash, name, last_name, joined_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Name, u.LastName, u.JoinedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return core.ErrUserExists
		}
		return wrapStoreErr(err)
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT id, email, password_hash, name, last_name, joined_at
	          FROM users WHERE id = $1`

	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT id, email, password_hash, name, last_name, joined_at
	          FROM users WHERE email = $1`

	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

func (s *Store) UpdateUser(ctx context.Context, u *core.User) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `UPDATE users SET name = $1, last_name = $2 WHERE id = $3`

	res, err := s.db.ExecContext(ctx, query, u.Name, u.LastName, u.ID)
	if err != nil {
		return wrapStoreErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapStoreErr(err)
	}
	if affected == 0 {
		return core.ErrUserNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) (*core.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM users WHERE id = $1
	          RETURNING id, email, password_hash, name, last_name, joined_at`

	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *Store) scanUser(row *sql.Row) (*core.User, error) {
	user := &core.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash,
		&user.Name, &user.LastName, &user.JoinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrUserNotFound
		}
		return nil, wrapStoreErr(err)
	}
	return user, nil
}

// wrapStoreErr hides driver error types behind the store taxonomy. Callers
// only ever see ErrStoreUnavailable for connectivity and timeout failures.
func wrapStoreErr(err error) error {
	return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
}
