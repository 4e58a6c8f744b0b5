package service

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/utch-club/tripsite-api/internal/domain"
	"github.com/utch-club/tripsite-api/internal/repo"
	"github.com/utch-club/tripsite-api/internal/tz"
)

// Syncer schedules a background reconcile of trip rows against calendar
// events. Scheduling must not block: the reconcile's latency and failures
// never affect the response that triggered it.
type Syncer interface {
	ScheduleSync()
}

// EventDeleter removes a calendar event, treating an already-deleted event
// as success. Satisfied by *google.CalendarClient.
type EventDeleter interface {
	DeleteEvent(ctx context.Context, eventID string) error
}

// TripService implements business logic for trip operations.
type TripService struct {
	trips  repo.TripRepo
	events EventDeleter
	sync   Syncer
	zone   string
}

// NewTripService constructs a TripService. zone is the IANA zone trips'
// civil dates are interpreted in.
func NewTripService(trips repo.TripRepo, events EventDeleter, sync Syncer, zone string) *TripService {
	return &TripService{trips: trips, events: events, sync: sync, zone: zone}
}

// List returns upcoming trips ordered by start ascending. A trip stays
// listed through its last day: it drops off once today's date in the club
// zone is past its end date (or start date for single-day trips).
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}

	today, _, err := tz.PartsInZone(time.Now(), s.zone)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}

	upcoming := []domain.Trip{}
	for _, trip := range trips {
		last := trip.EndDate
		if last == "" {
			last = trip.StartDate
		}
		if last >= today {
			upcoming = append(upcoming, trip)
		}
	}
	sortTrips(upcoming)
	return upcoming, nil
}

// ListAdmin returns every trip, past ones included, ordered by start
// ascending.
func (s *TripService) ListAdmin(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListAdmin: %w", err)
	}
	sortTrips(trips)
	return trips, nil
}

// Create validates and persists a new trip, then schedules a calendar
// reconcile. The calendar event itself is created by the reconcile, which
// writes the event ID back to the trip row.
func (s *TripService) Create(ctx context.Context, input domain.TripInput) (domain.Trip, error) {
	trip, err := s.tripFromInput(input)
	if err != nil {
		return domain.Trip{}, err
	}
	trip.TripID = generateTripID(trip.StartDate, trip.Title)

	if err := s.trips.Create(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	s.sync.ScheduleSync()
	return trip, nil
}

// Update validates and overwrites an existing trip, preserving its tripId
// and calendar event identity, then schedules a reconcile.
func (s *TripService) Update(ctx context.Context, tripID string, input domain.TripInput) (domain.Trip, error) {
	existing, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	trip, err := s.tripFromInput(input)
	if err != nil {
		return domain.Trip{}, err
	}
	trip.TripID = existing.TripID
	trip.EventID = existing.EventID

	if err := s.trips.Update(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	s.sync.ScheduleSync()
	return trip, nil
}

// Delete removes the trip row, then its calendar event. Row first: if the
// event deletion fails the next reconcile removes the orphaned event,
// whereas deleting the event first would leave a row for the reconcile to
// recreate it from.
func (s *TripService) Delete(ctx context.Context, tripID string) error {
	existing, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}

	if err := s.trips.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if existing.EventID != "" {
		if err := s.events.DeleteEvent(ctx, existing.EventID); err != nil {
			return fmt.Errorf("service.TripService.Delete: %w", err)
		}
	}
	s.sync.ScheduleSync()
	return nil
}

// tripFromInput validates officer input and builds the trip value.
// A trip with no start time is all-day; times on all-day trips are
// rejected rather than silently dropped.
func (s *TripService) tripFromInput(input domain.TripInput) (domain.Trip, error) {
	title, err := requiredString(input.Title, "title")
	if err != nil {
		return domain.Trip{}, err
	}
	startDate, err := requiredString(input.StartDate, "startDate")
	if err != nil {
		return domain.Trip{}, err
	}
	if _, _, _, err := tz.ParseDate(startDate); err != nil {
		return domain.Trip{}, err
	}

	startTime := optionalString(input.StartTime)
	if startTime != "" {
		if _, _, err := tz.ParseTime(startTime); err != nil {
			return domain.Trip{}, err
		}
	}
	endDate := optionalString(input.EndDate)
	if endDate != "" {
		if _, _, _, err := tz.ParseDate(endDate); err != nil {
			return domain.Trip{}, err
		}
		if endDate < startDate {
			return domain.Trip{}, fmt.Errorf("%w: endDate must not be before startDate", domain.ErrValidation)
		}
	}
	endTime := optionalString(input.EndTime)
	if endTime != "" {
		if _, _, err := tz.ParseTime(endTime); err != nil {
			return domain.Trip{}, err
		}
		if startTime == "" {
			return domain.Trip{}, fmt.Errorf("%w: endTime requires startTime", domain.ErrValidation)
		}
	}

	status := domain.SignupRequestOpen
	if optionalString(input.SignupStatus) != "" {
		status, err = domain.ParseSignupStatusInput(input.SignupStatus)
		if err != nil {
			return domain.Trip{}, err
		}
	}

	return domain.Trip{
		Title:         title,
		Activity:      optionalString(input.Activity),
		StartDate:     startDate,
		StartTime:     startTime,
		EndDate:       endDate,
		EndTime:       endTime,
		Location:      optionalString(input.Location),
		LeaderName:    optionalString(input.LeaderName),
		LeaderContact: optionalString(input.LeaderContact),
		Difficulty:    optionalString(input.Difficulty),
		MeetTime:      optionalString(input.MeetTime),
		MeetPlace:     optionalString(input.MeetPlace),
		Notes:         optionalString(input.Notes),
		GearAvailable: domain.NormalizeGearList(input.GearAvailable),
		IsAllDay:      startTime == "",
		SignupStatus:  status,
	}, nil
}

// sortTrips orders trips by civil start ascending; both fields are ISO
// strings so lexicographic order is chronological.
func sortTrips(trips []domain.Trip) {
	sort.SliceStable(trips, func(a, b int) bool {
		if trips[a].StartDate != trips[b].StartDate {
			return trips[a].StartDate < trips[b].StartDate
		}
		return trips[a].StartTime < trips[b].StartTime
	})
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// generateTripID builds the stable slug identity for a new trip:
// start date, slugified title capped at 32 characters, and a short random
// suffix to keep same-day same-title trips distinct.
func generateTripID(startDate, title string) string {
	slug := strings.Trim(slugStrip.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if len(slug) > 32 {
		slug = slug[:32]
	}
	if slug == "" {
		slug = "trip"
	}

	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return startDate + "-" + slug + "-" + string(suffix)
}
