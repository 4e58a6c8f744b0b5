package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/utch-club/tripsite-api/internal/domain"
	"github.com/utch-club/tripsite-api/internal/repo"
)

// RequestService implements business logic for member sign-up requests.
// It holds both repos because creating a request requires reading the
// parent trip's signup status.
type RequestService struct {
	trips    repo.TripRepo
	requests repo.RequestRepo
}

// NewRequestService constructs a RequestService backed by the provided repos.
func NewRequestService(trips repo.TripRepo, requests repo.RequestRepo) *RequestService {
	return &RequestService{trips: trips, requests: requests}
}

// Create validates a member submission against the trip's signup status and
// appends the request with status PENDING.
// Returns domain.ErrNotFound if the trip does not exist and
// domain.ErrValidation when input is malformed or signups are closed.
func (s *RequestService) Create(ctx context.Context, input domain.RequestInput) (domain.Request, error) {
	tripID, err := requiredString(input.TripID, "tripId")
	if err != nil {
		return domain.Request{}, err
	}
	name, err := requiredString(input.Name, "name")
	if err != nil {
		return domain.Request{}, err
	}
	contact, err := requiredString(input.Contact, "contact")
	if err != nil {
		return domain.Request{}, err
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Request{}, fmt.Errorf("service.RequestService.Create: %w", err)
	}
	switch trip.SignupStatus {
	case domain.SignupMeetingOnly:
		return domain.Request{}, fmt.Errorf("%w: this trip is meeting sign-up only; attend a weekly meeting to request a spot", domain.ErrValidation)
	case domain.SignupFull:
		return domain.Request{}, fmt.Errorf("%w: this trip is currently full", domain.ErrValidation)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	request := domain.Request{
		RequestID:   generateRequestID(),
		SubmittedAt: now,
		TripID:      tripID,
		Name:        name,
		Contact:     contact,
		Carpool:     optionalString(input.Carpool),
		GearNeeded:  domain.NormalizeGearList(input.GearNeeded),
		Notes:       optionalString(input.Notes),
		Status:      domain.RequestPending,
		UpdatedAt:   now,
	}
	if err := s.requests.Append(ctx, request); err != nil {
		return domain.Request{}, fmt.Errorf("service.RequestService.Create: %w", err)
	}
	return request, nil
}

// ListByTrip returns the requests for one trip ordered by submission
// instant ascending.
func (s *RequestService) ListByTrip(ctx context.Context, tripID string) ([]domain.Request, error) {
	id, err := requiredString(tripID, "tripId")
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByTrip(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.RequestService.ListByTrip: %w", err)
	}
	return requests, nil
}

// UpdateStatus transitions a request to the given status. Transitions are
// not restricted beyond enum legality: officers may re-decide a request.
func (s *RequestService) UpdateStatus(ctx context.Context, requestID, rawStatus string) (domain.RequestStatus, error) {
	id, err := requiredString(requestID, "requestId")
	if err != nil {
		return "", err
	}
	status, err := domain.ParseRequestStatus(rawStatus)
	if err != nil {
		return "", err
	}

	updatedAt := time.Now().UTC().Format(time.RFC3339)
	if err := s.requests.UpdateStatus(ctx, id, status, updatedAt); err != nil {
		return "", fmt.Errorf("service.RequestService.UpdateStatus: %w", err)
	}
	return status, nil
}

// generateRequestID returns a random UUID, falling back to a
// timestamp+random identifier if the system entropy source fails.
func generateRequestID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return fmt.Sprintf("%d-%04d", time.Now().UnixMilli(), time.Now().UnixNano()%10000)
}
