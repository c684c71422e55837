package types

import "time"

// Support ticket states.
const (
	TicketOpen   = "open"
	TicketClosed = "closed"
)

// SupportTicket represents a message sent to support, optionally tied
// to an authenticated user account.
type SupportTicket struct {
	// ID is the unique identifier of the ticket.
	ID int `json:"id" db:"id"`

	// Reference is the external ticket number quoted back to the
	// customer (a UUID).
	Reference string `json:"reference" db:"reference"`

	// UserID references the submitting user account, if authenticated.
	UserID *int `json:"user_id" db:"user_id"`

	// Subject is the short summary line of the ticket.
	Subject string `json:"subject" db:"subject"`

	// Message is the full ticket body.
	Message string `json:"message" db:"message"`

	// Status is "open" or "closed".
	Status string `json:"status" db:"status"`

	// CreatedAt is the timestamp when the ticket was opened.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent status change.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
