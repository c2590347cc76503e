package service

import "errors"

var (
	// ErrOwnBooking: владелец не может бронировать свою вещь
	ErrOwnBooking = errors.New("owner cannot book own item")

	ErrInvalidTimeRange = errors.New("booking end must be after start")
	ErrTimeInPast       = errors.New("booking times must not be in the past")

	// ErrDuplicateDecision means the booking already left WAITING.
	ErrDuplicateDecision = errors.New("booking decision already made")

	ErrZeroItems        = errors.New("user has no items to view bookings for")
	ErrCommentNotAllowed = errors.New("user has no finished booking of this item")
	ErrEmptyComment     = errors.New("comment text must not be blank")
	ErrInvalidPagination = errors.New("invalid pagination parameters")
	ErrNotOwner         = errors.New("only the owner can edit the item")

	ErrEmptyName        = errors.New("name must not be blank")
	ErrEmptyEmail       = errors.New("email must not be blank")
	ErrInvalidEmail     = errors.New("email is malformed")
	ErrEmptyDescription = errors.New("description must not be blank")
	ErrMissingAvailable = errors.New("available flag is required")
)

// UnsupportedStateError surfaces an unknown booking state filter. The
// message format is part of the API contract.
type UnsupportedStateError struct {
	State string
}

func (e *UnsupportedStateError) Error() string {
	return "Unknown state: UNSUPPORTED_STATUS"
}
