package api

import (
	"fmt"
	"net/http"
	"path/filepath"

	"shareit/internal/metrics"
	"shareit/internal/models"
)

// exportPageSize caps how many bookings land in one export file.
const exportPageSize = 1000

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var in models.CreateBookingInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.bookings.Create(r.Context(), bookerID, in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *HTTPServer) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var approved bool
	switch r.URL.Query().Get("approved") {
	case "true":
		approved = true
	case "false":
		approved = false
	default:
		writeError(w, http.StatusBadRequest, "approved must be true or false")
		return
	}

	booking, err := s.bookings.Approve(r.Context(), ownerID, bookingID, approved)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	metrics.IncBookingDecision(booking.Status)
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.bookings.FindByID(r.Context(), bookingID, userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleBookerBookings(w http.ResponseWriter, r *http.Request) {
	bookerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	from, size, err := pagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := s.bookings.FindByBooker(r.Context(), bookerID, r.URL.Query().Get("state"), from, size)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *HTTPServer) handleOwnerBookings(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	from, size, err := pagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := s.bookings.FindByOwner(r.Context(), ownerID, r.URL.Query().Get("state"), from, size)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *HTTPServer) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.exporter == nil {
		writeError(w, http.StatusNotImplemented, "export is not configured")
		return
	}

	bookings, err := s.bookings.FindByOwner(r.Context(), ownerID, r.URL.Query().Get("state"), 0, exportPageSize)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	path, err := s.exporter.BookingsToExcel(ownerID, bookings)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}
