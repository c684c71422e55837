package types

import "time"

// Review represents a user's rating of a completed booking.
// Reviews are immutable once created and limited to one per booking.
type Review struct {
	// ID is the unique identifier of the review.
	ID int `json:"id" db:"id"`

	// BookingID identifies the completed booking being reviewed.
	BookingID int `json:"booking_id" db:"booking_id"`

	// UserID identifies the reviewing user.
	UserID int `json:"user_id" db:"user_id"`

	// ProviderID identifies the reviewed provider.
	ProviderID int `json:"provider_id" db:"provider_id"`

	// Rating is the score given by the user, from 1 to 5.
	Rating int `json:"rating" db:"rating"`

	// Comment is the free-form review text.
	Comment string `json:"comment" db:"comment"`

	// CreatedAt is the timestamp when the review was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
