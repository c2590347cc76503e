package service

import "shareit/internal/models"

// NormalizeState maps the raw state filter to a known bucket. A blank
// filter means ALL; anything unrecognized is rejected verbatim.
func NormalizeState(state string) (string, error) {
	if state == "" {
		return models.StateAll, nil
	}
	switch state {
	case models.StateAll, models.StateCurrent, models.StatePast,
		models.StateFuture, models.StateWaiting, models.StateRejected:
		return state, nil
	default:
		return "", &UnsupportedStateError{State: state}
	}
}

// NormalizePage validates from/size and snaps the offset to a page
// boundary, mirroring page-number based pagination.
func NormalizePage(from, size int) (models.Page, error) {
	if from < 0 || size <= 0 {
		return models.Page{}, ErrInvalidPagination
	}
	return models.NewPage(from, size), nil
}
