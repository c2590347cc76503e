package api

import (
	"net/http"

	"shareit/internal/models"
)

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	requesterID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body struct {
		Description string `json:"description"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := s.requests.Save(r.Context(), requesterID, body.Description)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (s *HTTPServer) handleOwnRequests(w http.ResponseWriter, r *http.Request) {
	requesterID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	requests, err := s.requests.FindAllOwn(r.Context(), requesterID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if requests == nil {
		requests = []*models.ItemRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleOtherRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	from, size, err := pagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	requests, err := s.requests.FindAllFromOthers(r.Context(), userID, from, size)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if requests == nil {
		requests = []*models.ItemRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := s.requests.FindByID(r.Context(), userID, requestID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}
