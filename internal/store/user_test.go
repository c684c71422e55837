package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/homebuddy/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "address", "role", "password_hash", "created_at", "updated_at",
	})
}

func newUserRepoMock(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepository(db), mock
}

func TestUserGetByEmail(t *testing.T) {
	repo, mock := newUserRepoMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM users\s+WHERE LOWER\(email\) = \$1`).
		WithArgs("alice@example.com").
		WillReturnRows(userRows().AddRow(
			1, "Alice", "Alice@Example.com", "0712345678", "1 Main Street",
			types.RoleUser, "$2a$10$hash", now, now,
		))

	user, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "Alice@Example.com", user.Email, "stored casing is preserved")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByEmailNotFound(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM users\s+WHERE LOWER\(email\) = \$1`).
		WithArgs("nobody@example.com").
		WillReturnRows(userRows())

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreate(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(
			"Alice", "alice@example.com", "0712345678", "1 Main Street",
			types.RoleUser, "$2a$10$hash", sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	user, err := repo.Create(context.Background(), types.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		Phone:        "0712345678",
		Address:      "1 Main Street",
		Role:         types.RoleUser,
		PasswordHash: "$2a$10$hash",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdate(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectExec(`UPDATE users`).
		WithArgs(
			"Alice", "alice@example.com", "0798765432", "1 Main Street",
			types.RoleUser, "$2a$10$hash", sqlmock.AnyArg(), 7,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.Update(context.Background(), types.User{
		ID:           7,
		Name:         "Alice",
		Email:        "alice@example.com",
		Phone:        "0798765432",
		Address:      "1 Main Street",
		Role:         types.RoleUser,
		PasswordHash: "$2a$10$hash",
	})
	require.NoError(t, err)
	assert.Equal(t, "0798765432", updated.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateMissingRow(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectExec(`UPDATE users`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), types.User{ID: 99, Role: types.RoleUser})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCountByRole(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery(`SELECT COUNT\(1\) FROM users WHERE role = \$1`).
		WithArgs(types.RoleAdmin).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountByRole(context.Background(), types.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
