package service_test

import (
	"context"

	"github.com/utch-club/tripsite-api/internal/domain"
	"github.com/utch-club/tripsite-api/internal/repo"
	"github.com/utch-club/tripsite-api/internal/service"
)

// ---- trip repo mock ----

type mockTripRepo struct {
	listFn       func(ctx context.Context) ([]domain.Trip, error)
	getByIDFn    func(ctx context.Context, tripID string) (domain.Trip, error)
	createFn     func(ctx context.Context, trip domain.Trip) error
	updateFn     func(ctx context.Context, trip domain.Trip) error
	deleteFn     func(ctx context.Context, tripID string) error
	setEventIDFn func(ctx context.Context, tripID, eventID string) error
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.listFn(ctx)
}

func (m *mockTripRepo) GetByID(ctx context.Context, tripID string) (domain.Trip, error) {
	return m.getByIDFn(ctx, tripID)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) error {
	return m.createFn(ctx, trip)
}

func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) error {
	return m.updateFn(ctx, trip)
}

func (m *mockTripRepo) Delete(ctx context.Context, tripID string) error {
	return m.deleteFn(ctx, tripID)
}

func (m *mockTripRepo) SetEventID(ctx context.Context, tripID, eventID string) error {
	return m.setEventIDFn(ctx, tripID, eventID)
}

// ---- request repo mock ----

type mockRequestRepo struct {
	appendFn       func(ctx context.Context, request domain.Request) error
	listByTripFn   func(ctx context.Context, tripID string) ([]domain.Request, error)
	updateStatusFn func(ctx context.Context, requestID string, status domain.RequestStatus, updatedAt string) error
}

var _ repo.RequestRepo = (*mockRequestRepo)(nil)

func (m *mockRequestRepo) Append(ctx context.Context, request domain.Request) error {
	return m.appendFn(ctx, request)
}

func (m *mockRequestRepo) ListByTrip(ctx context.Context, tripID string) ([]domain.Request, error) {
	return m.listByTripFn(ctx, tripID)
}

func (m *mockRequestRepo) UpdateStatus(ctx context.Context, requestID string, status domain.RequestStatus, updatedAt string) error {
	return m.updateStatusFn(ctx, requestID, status, updatedAt)
}

// ---- settings repo mock ----

type mockSettingsRepo struct {
	rowsFn        func(ctx context.Context) ([]repo.SettingRow, error)
	appendFn      func(ctx context.Context, key, value, updatedAt string) error
	updateValueFn func(ctx context.Context, rowIndex int, value, updatedAt string) error
}

var _ repo.SettingsRepo = (*mockSettingsRepo)(nil)

func (m *mockSettingsRepo) Rows(ctx context.Context) ([]repo.SettingRow, error) {
	return m.rowsFn(ctx)
}

func (m *mockSettingsRepo) Append(ctx context.Context, key, value, updatedAt string) error {
	return m.appendFn(ctx, key, value, updatedAt)
}

func (m *mockSettingsRepo) UpdateValue(ctx context.Context, rowIndex int, value, updatedAt string) error {
	return m.updateValueFn(ctx, rowIndex, value, updatedAt)
}

// ---- sync and calendar mocks ----

type mockSyncer struct {
	scheduled int
}

var _ service.Syncer = (*mockSyncer)(nil)

func (m *mockSyncer) ScheduleSync() { m.scheduled++ }

type mockEventDeleter struct {
	deleteFn func(ctx context.Context, eventID string) error
	deleted  []string
}

var _ service.EventDeleter = (*mockEventDeleter)(nil)

func (m *mockEventDeleter) DeleteEvent(ctx context.Context, eventID string) error {
	m.deleted = append(m.deleted, eventID)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, eventID)
	}
	return nil
}
