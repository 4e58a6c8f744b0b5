package handler_test

import (
	"context"

	"github.com/utch-club/tripsite-api/internal/domain"
	"github.com/utch-club/tripsite-api/internal/handler"
)

// ---- service mocks ----

type mockTripService struct {
	listFn      func(ctx context.Context) ([]domain.Trip, error)
	listAdminFn func(ctx context.Context) ([]domain.Trip, error)
	createFn    func(ctx context.Context, input domain.TripInput) (domain.Trip, error)
	updateFn    func(ctx context.Context, tripID string, input domain.TripInput) (domain.Trip, error)
	deleteFn    func(ctx context.Context, tripID string) error
}

var _ handler.TripServicer = (*mockTripService)(nil)

func (m *mockTripService) List(ctx context.Context) ([]domain.Trip, error) {
	return m.listFn(ctx)
}

func (m *mockTripService) ListAdmin(ctx context.Context) ([]domain.Trip, error) {
	return m.listAdminFn(ctx)
}

func (m *mockTripService) Create(ctx context.Context, input domain.TripInput) (domain.Trip, error) {
	return m.createFn(ctx, input)
}

func (m *mockTripService) Update(ctx context.Context, tripID string, input domain.TripInput) (domain.Trip, error) {
	return m.updateFn(ctx, tripID, input)
}

func (m *mockTripService) Delete(ctx context.Context, tripID string) error {
	return m.deleteFn(ctx, tripID)
}

type mockRequestService struct {
	createFn       func(ctx context.Context, input domain.RequestInput) (domain.Request, error)
	listByTripFn   func(ctx context.Context, tripID string) ([]domain.Request, error)
	updateStatusFn func(ctx context.Context, requestID, status string) (domain.RequestStatus, error)
}

var _ handler.RequestServicer = (*mockRequestService)(nil)

func (m *mockRequestService) Create(ctx context.Context, input domain.RequestInput) (domain.Request, error) {
	return m.createFn(ctx, input)
}

func (m *mockRequestService) ListByTrip(ctx context.Context, tripID string) ([]domain.Request, error) {
	return m.listByTripFn(ctx, tripID)
}

func (m *mockRequestService) UpdateStatus(ctx context.Context, requestID, status string) (domain.RequestStatus, error) {
	return m.updateStatusFn(ctx, requestID, status)
}

type mockSettingsService struct {
	getFn    func(ctx context.Context) (domain.SiteSettings, error)
	updateFn func(ctx context.Context, incoming map[string]string) (domain.SiteSettings, error)
}

var _ handler.SettingsServicer = (*mockSettingsService)(nil)

func (m *mockSettingsService) Get(ctx context.Context) (domain.SiteSettings, error) {
	return m.getFn(ctx)
}

func (m *mockSettingsService) Update(ctx context.Context, incoming map[string]string) (domain.SiteSettings, error) {
	return m.updateFn(ctx, incoming)
}

type mockSuggestionService struct {
	submitFn func(ctx context.Context, input domain.SuggestionInput) error
}

var _ handler.SuggestionServicer = (*mockSuggestionService)(nil)

func (m *mockSuggestionService) Submit(ctx context.Context, input domain.SuggestionInput) error {
	return m.submitFn(ctx, input)
}

type mockRsvpService struct {
	submitFn func(ctx context.Context, input domain.RsvpInput) (string, error)
}

var _ handler.RsvpServicer = (*mockRsvpService)(nil)

func (m *mockRsvpService) Submit(ctx context.Context, input domain.RsvpInput) (string, error) {
	return m.submitFn(ctx, input)
}

// mockGate accepts exactly one passcode and records the addresses it saw.
// Setting err forces every verification to fail with that error.
type mockGate struct {
	accept string
	err    error
	seen   []string
}

var _ handler.OfficerVerifier = (*mockGate)(nil)

func (m *mockGate) Verify(addr, passcode string) error {
	m.seen = append(m.seen, addr)
	if m.err != nil {
		return m.err
	}
	if passcode != m.accept {
		return domain.ErrAuthorization
	}
	return nil
}

type mockSyncRunner struct {
	syncFn func(ctx context.Context) error
	calls  int
}

var _ handler.SyncRunner = (*mockSyncRunner)(nil)

func (m *mockSyncRunner) Sync(ctx context.Context) error {
	m.calls++
	if m.syncFn != nil {
		return m.syncFn(ctx)
	}
	return nil
}

// serverDeps bundles every mock with working defaults; tests override the
// fields they exercise.
type serverDeps struct {
	trips       *mockTripService
	requests    *mockRequestService
	settings    *mockSettingsService
	suggestions *mockSuggestionService
	rsvps       *mockRsvpService
	gate        *mockGate
	sync        *mockSyncRunner
}

func newServerDeps() *serverDeps {
	return &serverDeps{
		trips:       &mockTripService{},
		requests:    &mockRequestService{},
		settings:    &mockSettingsService{},
		suggestions: &mockSuggestionService{},
		rsvps:       &mockRsvpService{},
		gate:        &mockGate{accept: "open-sesame"},
		sync:        &mockSyncRunner{},
	}
}

func (d *serverDeps) server() *handler.Server {
	return handler.NewServer(d.trips, d.requests, d.settings, d.suggestions, d.rsvps, d.gate, d.sync)
}
