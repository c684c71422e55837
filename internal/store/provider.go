package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/homebuddy/apiserver/types"
)

// ProviderRepository handles persistence for provider profiles.
type ProviderRepository struct {
	db *sql.DB
}

func NewProviderRepository(db *sql.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

const providerColumns = `id, user_id, full_name, email, phone, service_id, password_hash, created_at, updated_at`

func scanProvider(row *sql.Row) (types.Provider, error) {
	var provider types.Provider
	err := row.Scan(
		&provider.ID,
		&provider.UserID,
		&provider.FullName,
		&provider.Email,
		&provider.Phone,
		&provider.ServiceID,
		&provider.PasswordHash,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Provider{}, ErrNotFound
		}
		return types.Provider{}, err
	}
	return provider, nil
}

func (r *ProviderRepository) GetByID(ctx context.Context, id int) (types.Provider, error) {
	const query = `
		SELECT ` + providerColumns + `
		FROM providers
		WHERE id = $1`
	return scanProvider(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail looks a provider up by email. Matching is exact-case,
// unlike the user lookup.
func (r *ProviderRepository) GetByEmail(ctx context.Context, email string) (types.Provider, error) {
	const query = `
		SELECT ` + providerColumns + `
		FROM providers
		WHERE email = $1`
	return scanProvider(r.db.QueryRowContext(ctx, query, email))
}

// GetByUserID finds the provider profile linked to a user account.
func (r *ProviderRepository) GetByUserID(ctx context.Context, userID int) (types.Provider, error) {
	const query = `
		SELECT ` + providerColumns + `
		FROM providers
		WHERE user_id = $1`
	return scanProvider(r.db.QueryRowContext(ctx, query, userID))
}

// List returns all providers, optionally filtered by catalog service.
// Pass serviceID 0 for no filter.
func (r *ProviderRepository) List(ctx context.Context, serviceID int) ([]types.Provider, error) {
	query := `
		SELECT ` + providerColumns + `
		FROM providers
		ORDER BY id`
	args := []any{}
	if serviceID > 0 {
		query = `
		SELECT ` + providerColumns + `
		FROM providers
		WHERE service_id = $1
		ORDER BY id`
		args = append(args, serviceID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []types.Provider
	for rows.Next() {
		var provider types.Provider
		if err := rows.Scan(
			&provider.ID,
			&provider.UserID,
			&provider.FullName,
			&provider.Email,
			&provider.Phone,
			&provider.ServiceID,
			&provider.PasswordHash,
			&provider.CreatedAt,
			&provider.UpdatedAt,
		); err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return providers, nil
}

func (r *ProviderRepository) Create(ctx context.Context, provider types.Provider) (types.Provider, error) {
	now := time.Now()
	provider.CreatedAt = now
	provider.UpdatedAt = now

	const query = `
		INSERT INTO providers (user_id, full_name, email, phone, service_id, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		provider.UserID,
		provider.FullName,
		provider.Email,
		provider.Phone,
		provider.ServiceID,
		provider.PasswordHash,
		provider.CreatedAt,
		provider.UpdatedAt,
	).Scan(&provider.ID); err != nil {
		return types.Provider{}, uniqueViolation(err, "providers_email_key", ErrDuplicateEmail)
	}
	return provider, nil
}
