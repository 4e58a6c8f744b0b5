package handler

import "net/http"

// VerifyOfficer handles POST /api/officer/verify: the passcode check the
// admin page runs before unlocking officer forms. The gate rate-limits
// failed attempts per client address.
func (s *Server) VerifyOfficer(w http.ResponseWriter, r *http.Request) {
	var body officerRequest
	if err := decodeJSON(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}
	if !s.verifyOfficer(w, r, body.OfficerSecret) {
		return
	}
	writeSuccess(w, map[string]any{})
}

// RunSync handles POST /api/sync: an on-demand synchronous reconcile,
// officer-only.
func (s *Server) RunSync(w http.ResponseWriter, r *http.Request) {
	var body officerRequest
	if err := decodeJSON(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}
	if !s.verifyOfficer(w, r, body.OfficerSecret) {
		return
	}

	if err := s.sync.Sync(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]any{})
}
