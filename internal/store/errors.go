package store

import (
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors surfaced by repositories.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when an email collides within a table.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicatePhone is returned when a phone number collides within a table.
	ErrDuplicatePhone = errors.New("phone number already registered")

	// ErrDuplicateReview is returned when a booking already has a review.
	ErrDuplicateReview = errors.New("booking already reviewed")
)

const pqUniqueViolation = "23505"

// uniqueViolation maps a postgres unique_violation on the named constraint
// to the given sentinel. Other errors pass through unchanged.
func uniqueViolation(err error, constraint string, sentinel error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation && pqErr.Constraint == constraint {
		return sentinel
	}
	return err
}
