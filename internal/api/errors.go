package api

import (
	"errors"
	"net/http"

	"shareit/internal/database"
	"shareit/internal/service"
)

// statusFor maps domain errors to HTTP status codes. Unknown errors
// fall through to 500.
func statusFor(err error) int {
	var unsupported *service.UnsupportedStateError
	if errors.As(err, &unsupported) {
		// Контракт API: неизвестный фильтр состояния отдается как 500
		return http.StatusInternalServerError
	}

	switch {
	case errors.Is(err, database.ErrUserNotFound),
		errors.Is(err, database.ErrItemNotFound),
		errors.Is(err, database.ErrBookingNotFound),
		errors.Is(err, database.ErrRequestNotFound),
		errors.Is(err, service.ErrOwnBooking):
		return http.StatusNotFound

	case errors.Is(err, service.ErrNotOwner):
		return http.StatusForbidden

	case errors.Is(err, database.ErrEmailTaken):
		return http.StatusConflict

	case errors.Is(err, database.ErrItemUnavailable),
		errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrTimeInPast),
		errors.Is(err, service.ErrDuplicateDecision),
		errors.Is(err, service.ErrZeroItems),
		errors.Is(err, service.ErrCommentNotAllowed),
		errors.Is(err, service.ErrEmptyComment),
		errors.Is(err, service.ErrInvalidPagination),
		errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrEmptyEmail),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrEmptyDescription),
		errors.Is(err, service.ErrMissingAvailable):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

func (s *HTTPServer) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeError(w, status, err.Error())
}
