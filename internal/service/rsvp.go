package service

import (
	"context"
	"fmt"
	"time"

	"github.com/utch-club/tripsite-api/internal/domain"
	"github.com/utch-club/tripsite-api/internal/repo"
)

// RsvpService stores legacy open-form RSVPs. Unlike the request flow it is
// not gated by the trip's signup status; older trips still link to it.
type RsvpService struct {
	rsvps repo.RsvpRepo
}

// NewRsvpService constructs an RsvpService backed by the provided repo.
func NewRsvpService(rsvps repo.RsvpRepo) *RsvpService {
	return &RsvpService{rsvps: rsvps}
}

// Submit validates and appends an RSVP.
func (s *RsvpService) Submit(ctx context.Context, input domain.RsvpInput) (string, error) {
	tripID, err := requiredString(input.TripID, "tripId")
	if err != nil {
		return "", err
	}
	name, err := requiredString(input.Name, "name")
	if err != nil {
		return "", err
	}
	contact, err := requiredString(input.Contact, "contact")
	if err != nil {
		return "", err
	}

	rsvp := domain.RsvpInput{
		TripID:     tripID,
		Name:       name,
		Contact:    contact,
		Carpool:    optionalString(input.Carpool),
		GearNeeded: domain.NormalizeGearList(input.GearNeeded),
		Notes:      optionalString(input.Notes),
	}
	submittedAt := time.Now().UTC().Format(time.RFC3339)
	if err := s.rsvps.Append(ctx, submittedAt, rsvp); err != nil {
		return "", fmt.Errorf("service.RsvpService.Submit: %w", err)
	}
	return tripID, nil
}
