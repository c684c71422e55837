package types

import "time"

// Service represents an entry in the service catalog.
// The catalog is read-mostly and seeded at startup when empty.
type Service struct {
	// ID is the unique identifier of the service.
	ID int `json:"id" db:"id"`

	// Name is the display name of the service.
	Name string `json:"name" db:"name"`

	// Price is the base price of the service in whole currency units.
	Price int64 `json:"price" db:"price"`

	// Description is the customer-facing description of the service.
	Description string `json:"description" db:"description"`

	// CreatedAt is the timestamp when the service was added to the catalog.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent catalog update.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
