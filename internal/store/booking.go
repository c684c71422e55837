package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/homebuddy/apiserver/types"
)

// BookingRepository handles persistence for bookings.
type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, user_id, provider_id, service_id, status, scheduled_at, notes, created_at, updated_at`

func (r *BookingRepository) Get(ctx context.Context, id int) (types.Booking, error) {
	const query = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1`
	var booking types.Booking
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ProviderID,
		&booking.ServiceID,
		&booking.Status,
		&booking.ScheduledAt,
		&booking.Notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Booking{}, ErrNotFound
		}
		return types.Booking{}, err
	}
	return booking, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int) ([]types.Booking, error) {
	const query = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY scheduled_at DESC`
	return r.list(ctx, query, userID)
}

func (r *BookingRepository) ListByProvider(ctx context.Context, providerID int) ([]types.Booking, error) {
	const query = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE provider_id = $1
		ORDER BY scheduled_at DESC`
	return r.list(ctx, query, providerID)
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]types.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []types.Booking
	for rows.Next() {
		var booking types.Booking
		if err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.ProviderID,
			&booking.ServiceID,
			&booking.Status,
			&booking.ScheduledAt,
			&booking.Notes,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) Create(ctx context.Context, booking types.Booking) (types.Booking, error) {
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	const query = `
		INSERT INTO bookings (user_id, provider_id, service_id, status, scheduled_at, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		booking.UserID,
		booking.ProviderID,
		booking.ServiceID,
		booking.Status,
		booking.ScheduledAt,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	).Scan(&booking.ID); err != nil {
		return types.Booking{}, err
	}
	return booking, nil
}

// UpdateStatus transitions a booking to the given status.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	const query = `
		UPDATE bookings
		SET status = $1,
			updated_at = $2
		WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
