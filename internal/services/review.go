package services

import (
	"context"
	"errors"

	"github.com/homebuddy/apiserver/internal/store"
	"github.com/homebuddy/apiserver/types"
)

// Review validation failures.
var (
	ErrBookingNotCompleted = errors.New("booking is not completed")
	ErrNotBookingOwner     = errors.New("booking belongs to a different user")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	GetByBooking(ctx context.Context, bookingID int) (types.Review, error)
	ListByProvider(ctx context.Context, providerID int) ([]types.Review, error)
	Create(ctx context.Context, review types.Review) (types.Review, error)
}

// ReviewService encapsulates review use-cases. Reviews are immutable
// once created and limited to one per completed booking.
type ReviewService struct {
	reviews  ReviewRepository
	bookings BookingRepository
}

func NewReviewService(reviews ReviewRepository, bookings BookingRepository) *ReviewService {
	return &ReviewService{reviews: reviews, bookings: bookings}
}

func (s *ReviewService) ListByProvider(ctx context.Context, providerID int) ([]types.Review, error) {
	return s.reviews.ListByProvider(ctx, providerID)
}

// Create validates that the referenced booking is completed, owned by
// the reviewer, and not yet reviewed, then stores the review.
func (s *ReviewService) Create(ctx context.Context, review types.Review) (types.Review, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return types.Review{}, ErrInvalidRating
	}

	booking, err := s.bookings.Get(ctx, review.BookingID)
	if err != nil {
		return types.Review{}, err
	}
	if booking.UserID != review.UserID {
		return types.Review{}, ErrNotBookingOwner
	}
	if booking.Status != types.BookingCompleted {
		return types.Review{}, ErrBookingNotCompleted
	}

	if _, err := s.reviews.GetByBooking(ctx, review.BookingID); err == nil {
		return types.Review{}, store.ErrDuplicateReview
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.Review{}, err
	}

	review.ProviderID = booking.ProviderID
	return s.reviews.Create(ctx, review)
}
