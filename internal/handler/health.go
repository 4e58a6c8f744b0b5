package handler

import (
	"net/http"
	"time"
)

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]any{"timestamp": time.Now().UnixMilli()})
}
