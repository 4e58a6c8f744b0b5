package handler

import "net/http"

// GetSiteSettings handles GET /api/site-settings: public, the front end
// renders from these.
func (s *Server) GetSiteSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.Get(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"settings": settings})
}

// UpdateSiteSettings handles POST /api/site-settings, officer-only.
func (s *Server) UpdateSiteSettings(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OfficerSecret string            `json:"officerSecret"`
		Settings      map[string]string `json:"settings"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}
	if !s.verifyOfficer(w, r, body.OfficerSecret) {
		return
	}

	settings, err := s.settings.Update(r.Context(), body.Settings)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"settings": settings})
}
