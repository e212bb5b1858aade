package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindenweb/authkit/core"
)

var userColumns = []string{"id", "email", "password_hash", "name", "last_name", "joined_at"}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, DefaultTimeout), mock
}

func mockUser() *core.User {
	return &core.User{
		ID:           "11111111-1111-1111-1111-111111111111",
		Email:        "alice@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		Name:         "Alice",
		LastName:     "Archer",
		JoinedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func userRow(u *core.User) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).
		AddRow(u.ID, u.Email, u.PasswordHash, u.Name, u.LastName, u.JoinedAt)
}

func TestCreateUser(t *testing.T) {
	user := mockUser()

	tests := []struct {
		name    string
		execErr error
		wantErr error
	}{
		{name: "success"},
		{name: "unique violation maps to conflict", execErr: &pgconn.PgError{Code: uniqueViolation}, wantErr: core.ErrUserExists},
		{name: "driver failure maps to unavailable", execErr: sql.ErrConnDone, wantErr: core.ErrStoreUnavailable},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			store, mock := newMockStore(t)

			exec := mock.ExpectExec("INSERT INTO users").
				WithArgs(user.ID, user.Email, user.PasswordHash, user.Name, user.LastName, user.JoinedAt)
			if test.execErr != nil {
				exec.WillReturnError(test.execErr)
			} else {
				exec.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := store.CreateUser(context.Background(), user)

			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetUserByID(t *testing.T) {
	user := mockUser()

	t.Run("found", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT id, email, password_hash, name, last_name, joined_at").
			WithArgs(user.ID).
			WillReturnRows(userRow(user))

		got, err := store.GetUserByID(context.Background(), user.ID)

		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
		assert.Equal(t, user.PasswordHash, got.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT id, email, password_hash, name, last_name, joined_at").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(userColumns))

		_, err := store.GetUserByID(context.Background(), "missing")

		assert.ErrorIs(t, err, core.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver failure maps to unavailable", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT id, email, password_hash, name, last_name, joined_at").
			WithArgs(user.ID).
			WillReturnError(sql.ErrConnDone)

		_, err := store.GetUserByID(context.Background(), user.ID)

		assert.ErrorIs(t, err, core.ErrStoreUnavailable)
	})
}

func TestGetUserByEmail(t *testing.T) {
	user := mockUser()

	t.Run("found", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT id, email, password_hash, name, last_name, joined_at").
			WithArgs(user.Email).
			WillReturnRows(userRow(user))

		got, err := store.GetUserByEmail(context.Background(), user.Email)

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT id, email, password_hash, name, last_name, joined_at").
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns))

		_, err := store.GetUserByEmail(context.Background(), "nobody@example.com")

		assert.ErrorIs(t, err, core.ErrUserNotFound)
	})
}

func TestUpdateUser(t *testing.T) {
	user := mockUser()

	t.Run("success", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec("UPDATE users SET name").
			WithArgs(user.Name, user.LastName, user.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.UpdateUser(context.Background(), user)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows maps to not found", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec("UPDATE users SET name").
			WithArgs(user.Name, user.LastName, user.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.UpdateUser(context.Background(), user)

		assert.ErrorIs(t, err, core.ErrUserNotFound)
	})

	t.Run("driver failure maps to unavailable", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec("UPDATE users SET name").
			WithArgs(user.Name, user.LastName, user.ID).
			WillReturnError(sql.ErrConnDone)

		err := store.UpdateUser(context.Background(), user)

		assert.ErrorIs(t, err, core.ErrStoreUnavailable)
	})
}

func TestDeleteUser(t *testing.T) {
	user := mockUser()

	t.Run("returns the removed record", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("DELETE FROM users").
			WithArgs(user.ID).
			WillReturnRows(userRow(user))

		got, err := store.DeleteUser(context.Background(), user.ID)

		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("DELETE FROM users").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(userColumns))

		_, err := store.DeleteUser(context.Background(), "missing")

		assert.ErrorIs(t, err, core.ErrUserNotFound)
	})
}

func TestWrapStoreErr(t *testing.T) {
	err := wrapStoreErr(errors.New("connection refused"))

	assert.ErrorIs(t, err, core.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
}
