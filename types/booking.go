package types

import "time"

// Booking status lifecycle. A booking starts as requested, a provider
// confirms it, and a confirmed booking ends completed or cancelled.
// A requested booking may also be cancelled directly.
const (
	BookingRequested = "requested"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Booking represents a user's request for a provider to perform a
// catalog service on a scheduled date.
type Booking struct {
	// ID is the unique identifier of the booking.
	ID int `json:"id" db:"id"`

	// UserID identifies the user who made the booking.
	UserID int `json:"user_id" db:"user_id"`

	// ProviderID identifies the provider being booked.
	ProviderID int `json:"provider_id" db:"provider_id"`

	// ServiceID identifies the catalog service being booked.
	ServiceID int `json:"service_id" db:"service_id"`

	// Status is the current lifecycle state of the booking.
	Status string `json:"status" db:"status"`

	// ScheduledAt is the date and time the service is requested for.
	ScheduledAt time.Time `json:"scheduled_at" db:"scheduled_at"`

	// Notes carries free-form instructions from the user to the provider.
	Notes string `json:"notes" db:"notes"`

	// CreatedAt is the timestamp when the booking was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent status change.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
