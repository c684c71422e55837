package types

import "time"

// Roles a user account can carry. Accounts created through registration
// always start as RoleUser; RoleProvider is set when a provider profile
// is linked to the account.
const (
	RoleUser     = "user"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// User represents a customer account in the system.
// It contains identity, contact details, role, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Name is the user's display or full name.
	Name string `json:"name" db:"name"`

	// Email is the user's email address. Stored lowercased and trimmed;
	// uniqueness is enforced case-insensitively within the users table only.
	Email string `json:"email" db:"email"`

	// Phone is the user's contact number. Unique within the users table.
	Phone string `json:"phone" db:"phone"`

	// Address is the user's street address used for service bookings.
	Address string `json:"address" db:"address"`

	// Role indicates the user's authorization level
	// ("user", "provider", or "admin").
	Role string `json:"role" db:"role"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
