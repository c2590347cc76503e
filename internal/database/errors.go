package database

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrRequestNotFound = errors.New("request not found")

	// ErrEmailTaken maps the unique email constraint.
	ErrEmailTaken = errors.New("email already in use")

	// ErrItemUnavailable is returned when the availability re-check
	// inside the booking transaction fails.
	ErrItemUnavailable = errors.New("item is not available")

	// ErrConcurrentModification signals a lost optimistic-update race,
	// e.g. two simultaneous decisions on the same booking.
	ErrConcurrentModification = errors.New("concurrent modification detected")
)
