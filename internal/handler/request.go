package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utch-club/tripsite-api/internal/domain"
)

// CreateRequest handles POST /api/requests: a member submitting a sign-up
// request. No officer gate; the trip's signup status is the gate.
func (s *Server) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var body domain.RequestInput
	if err := decodeJSON(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}

	request, err := s.requests.Create(r.Context(), body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"tripId": request.TripID, "requestId": request.RequestID})
}

// ListRequestsByTrip handles POST /api/requests/by-trip, officer-only.
func (s *Server) ListRequestsByTrip(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OfficerSecret string `json:"officerSecret"`
		TripID        string `json:"tripId"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}
	if !s.verifyOfficer(w, r, body.OfficerSecret) {
		return
	}

	requests, err := s.requests.ListByTrip(r.Context(), body.TripID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"requests": requests})
}

// UpdateRequestStatus handles PATCH /api/requests/{requestId}/status,
// officer-only.
func (s *Server) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OfficerSecret string `json:"officerSecret"`
		Status        string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}
	if !s.verifyOfficer(w, r, body.OfficerSecret) {
		return
	}

	requestID := chi.URLParam(r, "requestId")
	status, err := s.requests.UpdateStatus(r.Context(), requestID, body.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"requestId": requestID, "status": status})
}
