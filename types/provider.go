package types

import "time"

// Provider represents a service provider profile.
// A provider may optionally be linked to a User account; standalone
// provider profiles (no linked user) are also valid.
type Provider struct {
	// ID is the unique identifier of the provider.
	ID int `json:"id" db:"id"`

	// UserID references the linked user account, if any.
	// Nil for standalone provider profiles.
	UserID *int `json:"user_id" db:"user_id"`

	// FullName is the provider's display name.
	FullName string `json:"full_name" db:"full_name"`

	// Email is the provider's login email. Unlike users.email it is
	// stored and matched exactly as given (case-sensitive).
	Email string `json:"email" db:"email"`

	// Phone is the provider's contact number.
	Phone string `json:"phone" db:"phone"`

	// ServiceID references the catalog service this provider offers.
	ServiceID int `json:"service_id" db:"service_id"`

	// PasswordHash stores the hashed provider password.
	// Never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the provider profile was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent profile update.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
