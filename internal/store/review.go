package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/homebuddy/apiserver/types"
)

// ReviewRepository handles persistence for reviews.
// Reviews are append-only: there are no update or delete operations.
type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) GetByBooking(ctx context.Context, bookingID int) (types.Review, error) {
	const query = `
		SELECT id, booking_id, user_id, provider_id, rating, comment, created_at
		FROM reviews
		WHERE booking_id = $1`
	var review types.Review
	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(
		&review.ID,
		&review.BookingID,
		&review.UserID,
		&review.ProviderID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Review{}, ErrNotFound
		}
		return types.Review{}, err
	}
	return review, nil
}

func (r *ReviewRepository) ListByProvider(ctx context.Context, providerID int) ([]types.Review, error) {
	const query = `
		SELECT id, booking_id, user_id, provider_id, rating, comment, created_at
		FROM reviews
		WHERE provider_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []types.Review
	for rows.Next() {
		var review types.Review
		if err := rows.Scan(
			&review.ID,
			&review.BookingID,
			&review.UserID,
			&review.ProviderID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review types.Review) (types.Review, error) {
	review.CreatedAt = time.Now()

	const query = `
		INSERT INTO reviews (booking_id, user_id, provider_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		review.BookingID,
		review.UserID,
		review.ProviderID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	).Scan(&review.ID); err != nil {
		return types.Review{}, uniqueViolation(err, "reviews_booking_id_key", ErrDuplicateReview)
	}
	return review, nil
}
