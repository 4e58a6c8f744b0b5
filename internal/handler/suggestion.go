package handler

import (
	"net/http"

	"github.com/utch-club/tripsite-api/internal/domain"
)

// SubmitSuggestion handles POST /api/suggest.
func (s *Server) SubmitSuggestion(w http.ResponseWriter, r *http.Request) {
	var body domain.SuggestionInput
	if err := decodeJSON(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}

	if err := s.suggestions.Submit(r.Context(), body); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]any{})
}

// SubmitRsvp handles POST /api/rsvp, the legacy open RSVP form.
func (s *Server) SubmitRsvp(w http.ResponseWriter, r *http.Request) {
	var body domain.RsvpInput
	if err := decodeJSON(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}

	tripID, err := s.rsvps.Submit(r.Context(), body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"tripId": tripID})
}
