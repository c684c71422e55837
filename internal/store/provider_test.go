package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/homebuddy/apiserver/types"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func providerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "full_name", "email", "phone", "service_id", "password_hash", "created_at", "updated_at",
	})
}

func newProviderRepoMock(t *testing.T) (*ProviderRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewProviderRepository(db), mock
}

func TestProviderGetByEmailExactCase(t *testing.T) {
	repo, mock := newProviderRepoMock(t)
	now := time.Now()

	// The lookup passes the email through untouched.
	mock.ExpectQuery(`SELECT (.+) FROM providers\s+WHERE email = \$1`).
		WithArgs("Dana@Cleaning.example").
		WillReturnRows(providerRows().AddRow(
			3, nil, "Dana Cleaning", "Dana@Cleaning.example", "0700000003",
			1, "$2a$10$hash", now, now,
		))

	provider, err := repo.GetByEmail(context.Background(), "Dana@Cleaning.example")
	require.NoError(t, err)
	assert.Equal(t, 3, provider.ID)
	assert.Nil(t, provider.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProviderGetByUserID(t *testing.T) {
	repo, mock := newProviderRepoMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM providers\s+WHERE user_id = \$1`).
		WithArgs(5).
		WillReturnRows(providerRows().AddRow(
			3, 5, "Pat Plumbing", "pat@plumbing.example", "0700000003",
			2, "$2a$10$hash", now, now,
		))

	provider, err := repo.GetByUserID(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, provider.UserID)
	assert.Equal(t, 5, *provider.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProviderCreateDuplicateEmail(t *testing.T) {
	repo, mock := newProviderRepoMock(t)

	mock.ExpectQuery(`INSERT INTO providers`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "providers_email_key"})

	_, err := repo.Create(context.Background(), types.Provider{
		FullName:  "Dana Cleaning",
		Email:     "dana@cleaning.example",
		ServiceID: 1,
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProviderListFilteredByService(t *testing.T) {
	repo, mock := newProviderRepoMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM providers\s+WHERE service_id = \$1`).
		WithArgs(2).
		WillReturnRows(providerRows().
			AddRow(1, nil, "Pat Plumbing", "pat@plumbing.example", "0700000001", 2, "h", now, now).
			AddRow(4, nil, "Pipe Pros", "pipes@example.com", "0700000004", 2, "h", now, now))

	providers, err := repo.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, providers, 2)
	assert.Equal(t, "Pipe Pros", providers[1].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
