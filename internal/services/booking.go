package services

import (
	"context"
	"errors"
	"time"

	"github.com/homebuddy/apiserver/internal/notify"
	"github.com/homebuddy/apiserver/types"
)

// ErrInvalidTransition is returned when a booking status change is not
// allowed from the booking's current state.
var ErrInvalidTransition = errors.New("invalid booking status transition")

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Get(ctx context.Context, id int) (types.Booking, error)
	ListByUser(ctx context.Context, userID int) ([]types.Booking, error)
	ListByProvider(ctx context.Context, providerID int) ([]types.Booking, error)
	Create(ctx context.Context, booking types.Booking) (types.Booking, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

// allowedTransitions holds the booking lifecycle:
// requested -> confirmed | cancelled, confirmed -> completed | cancelled.
var allowedTransitions = map[string][]string{
	types.BookingRequested: {types.BookingConfirmed, types.BookingCancelled},
	types.BookingConfirmed: {types.BookingCompleted, types.BookingCancelled},
}

// BookingService encapsulates booking use-cases and publishes lifecycle
// events through the notifier.
type BookingService struct {
	repo     BookingRepository
	notifier *notify.Notifier
}

func NewBookingService(repo BookingRepository, notifier *notify.Notifier) *BookingService {
	return &BookingService{repo: repo, notifier: notifier}
}

func (s *BookingService) Get(ctx context.Context, id int) (types.Booking, error) {
	return s.repo.Get(ctx, id)
}

func (s *BookingService) ListByUser(ctx context.Context, userID int) ([]types.Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *BookingService) ListByProvider(ctx context.Context, providerID int) ([]types.Booking, error) {
	return s.repo.ListByProvider(ctx, providerID)
}

// Create stores a new booking in the requested state.
func (s *BookingService) Create(ctx context.Context, booking types.Booking) (types.Booking, error) {
	booking.Status = types.BookingRequested
	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		return types.Booking{}, err
	}
	s.publish(ctx, created)
	return created, nil
}

// UpdateStatus transitions a booking along the lifecycle. Transitions
// outside allowedTransitions fail with ErrInvalidTransition.
func (s *BookingService) UpdateStatus(ctx context.Context, id int, status string) (types.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Booking{}, err
	}

	if !transitionAllowed(booking.Status, status) {
		return types.Booking{}, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return types.Booking{}, err
	}

	booking.Status = status
	booking.UpdatedAt = time.Now()
	s.publish(ctx, booking)
	return booking, nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *BookingService) publish(ctx context.Context, booking types.Booking) {
	s.notifier.BookingChanged(ctx, notify.BookingEvent{
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		ProviderID: booking.ProviderID,
		ServiceID:  booking.ServiceID,
		Status:     booking.Status,
		OccurredAt: time.Now(),
	})
}
