package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utch-club/tripsite-api/internal/domain"
)

// tripRequest is a trip mutation body: the trip fields plus the officer
// passcode that authorizes them.
type tripRequest struct {
	domain.TripInput
	OfficerSecret string `json:"officerSecret"`
}

// officerRequest is the bare officer-authorization body used by endpoints
// that carry no other fields.
type officerRequest struct {
	OfficerSecret string `json:"officerSecret"`
}

// ListTrips handles GET /api/trips: the public list of upcoming trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"trips": trips})
}

// ListTripsAdmin handles POST /api/trips/admin: every trip, officer-only.
func (s *Server) ListTripsAdmin(w http.ResponseWriter, r *http.Request) {
	var body officerRequest
	if err := decodeJSON(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}
	if !s.verifyOfficer(w, r, body.OfficerSecret) {
		return
	}

	trips, err := s.trips.ListAdmin(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"trips": trips})
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body tripRequest
	if err := decodeJSON(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}
	if !s.verifyOfficer(w, r, body.OfficerSecret) {
		return
	}

	trip, err := s.trips.Create(r.Context(), body.TripInput)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"trip": trip})
}

// UpdateTrip handles PATCH /api/trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var body tripRequest
	if err := decodeJSON(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}
	if !s.verifyOfficer(w, r, body.OfficerSecret) {
		return
	}

	trip, err := s.trips.Update(r.Context(), chi.URLParam(r, "tripId"), body.TripInput)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"trip": trip})
}

// DeleteTrip handles DELETE /api/trips/{tripId}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	var body officerRequest
	if err := decodeJSON(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}
	if !s.verifyOfficer(w, r, body.OfficerSecret) {
		return
	}

	if err := s.trips.Delete(r.Context(), chi.URLParam(r, "tripId")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]any{})
}
