package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/utch-club/tripsite-api/internal/domain"
)

// apiResponse is the envelope every endpoint speaks: successes wrap
// {ok:true, data}, failures {ok:false, error}.
type apiResponse struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, apiResponse{OK: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{OK: false, Error: message})
}

// writeServiceError maps a service error to its HTTP status via the domain
// sentinels and writes the envelope.
func writeServiceError(w http.ResponseWriter, err error) {
	writeError(w, statusForError(err), messageForError(err))
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// messageForError extracts the human-readable part of a wrapped sentinel
// error. Validation and rate-limit messages drop their sentinel prefix and
// any wrap chain before it ("service.TripService.Create: validation error:
// title is required" → "title is required"); integration errors keep the
// full chain for operator diagnosis.
func messageForError(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrValidation, domain.ErrRateLimited} {
		if !errors.Is(err, sentinel) {
			continue
		}
		if idx := strings.LastIndex(msg, sentinel.Error()+": "); idx >= 0 {
			return msg[idx+len(sentinel.Error())+2:]
		}
	}
	if errors.Is(err, domain.ErrAuthorization) {
		return "not authorized"
	}
	if errors.Is(err, domain.ErrNotFound) {
		return "not found"
	}
	return msg
}

// decodeJSON reads the request body into dst. An empty or malformed body is
// a validation failure.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body", domain.ErrValidation)
	}
	return nil
}

// clientAddr returns the caller's address for rate limiting. Behind chi's
// RealIP middleware RemoteAddr is a bare IP; a raw host:port from a direct
// connection is split down to its host.
func clientAddr(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
