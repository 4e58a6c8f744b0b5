// Package handler implements the HTTP handlers for the trip site API.
// Handlers are methods on Server, split into domain-specific files (trip.go,
// request.go, etc.) but sharing the same struct so they can access its
// dependencies. Defining the service interfaces here, in the consumer
// package, lets handler tests inject mocks without touching the service
// layer.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utch-club/tripsite-api/internal/domain"
)

// TripServicer defines the trip operations the handlers depend on.
type TripServicer interface {
	List(ctx context.Context) ([]domain.Trip, error)
	ListAdmin(ctx context.Context) ([]domain.Trip, error)
	Create(ctx context.Context, input domain.TripInput) (domain.Trip, error)
	Update(ctx context.Context, tripID string, input domain.TripInput) (domain.Trip, error)
	Delete(ctx context.Context, tripID string) error
}

// RequestServicer defines the sign-up request operations the handlers
// depend on.
type RequestServicer interface {
	Create(ctx context.Context, input domain.RequestInput) (domain.Request, error)
	ListByTrip(ctx context.Context, tripID string) ([]domain.Request, error)
	UpdateStatus(ctx context.Context, requestID, status string) (domain.RequestStatus, error)
}

// SettingsServicer defines the site settings operations the handlers
// depend on.
type SettingsServicer interface {
	Get(ctx context.Context) (domain.SiteSettings, error)
	Update(ctx context.Context, incoming map[string]string) (domain.SiteSettings, error)
}

// SuggestionServicer stores member trip suggestions.
type SuggestionServicer interface {
	Submit(ctx context.Context, input domain.SuggestionInput) error
}

// RsvpServicer stores legacy RSVP submissions.
type RsvpServicer interface {
	Submit(ctx context.Context, input domain.RsvpInput) (string, error)
}

// OfficerVerifier checks the officer passcode for a client address,
// enforcing the per-address lockout. Satisfied by *officer.Gate.
type OfficerVerifier interface {
	Verify(addr, passcode string) error
}

// SyncRunner runs one synchronous calendar reconcile, for the on-demand
// sync endpoint.
type SyncRunner interface {
	Sync(ctx context.Context) error
}

// Server holds the dependencies shared by all handlers.
type Server struct {
	trips       TripServicer
	requests    RequestServicer
	settings    SettingsServicer
	suggestions SuggestionServicer
	rsvps       RsvpServicer
	gate        OfficerVerifier
	sync        SyncRunner
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	trips TripServicer,
	requests RequestServicer,
	settings SettingsServicer,
	suggestions SuggestionServicer,
	rsvps RsvpServicer,
	gate OfficerVerifier,
	sync SyncRunner,
) *Server {
	return &Server{
		trips:       trips,
		requests:    requests,
		settings:    settings,
		suggestions: suggestions,
		rsvps:       rsvps,
		gate:        gate,
		sync:        sync,
	}
}

// Routes returns the router for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/trips", s.ListTrips)
		r.Post("/trips", s.CreateTrip)
		r.Post("/trips/admin", s.ListTripsAdmin)
		r.Patch("/trips/{tripId}", s.UpdateTrip)
		r.Delete("/trips/{tripId}", s.DeleteTrip)

		r.Post("/requests", s.CreateRequest)
		r.Post("/requests/by-trip", s.ListRequestsByTrip)
		r.Patch("/requests/{requestId}/status", s.UpdateRequestStatus)

		r.Get("/site-settings", s.GetSiteSettings)
		r.Post("/site-settings", s.UpdateSiteSettings)

		r.Post("/suggest", s.SubmitSuggestion)
		r.Post("/rsvp", s.SubmitRsvp)

		r.Post("/officer/verify", s.VerifyOfficer)
		r.Post("/sync", s.RunSync)
	})

	return r
}

// verifyOfficer runs the submitted passcode through the gate for the
// calling address. On failure it writes the mapped error response and
// reports false; callers return immediately.
func (s *Server) verifyOfficer(w http.ResponseWriter, r *http.Request, passcode string) bool {
	if err := s.gate.Verify(clientAddr(r), passcode); err != nil {
		writeServiceError(w, err)
		return false
	}
	return true
}
