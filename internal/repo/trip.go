package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/utch-club/tripsite-api/internal/domain"
)

// TripsSheet is the sheet holding one row per trip.
const TripsSheet = "Trips"

// TripHeaders is the column layout of the trips sheet.
var TripHeaders = []string{
	"tripId", "eventId", "title", "activity",
	"startDate", "startTime", "endDate", "endTime",
	"location", "leaderName", "leaderContact", "difficulty",
	"meetTime", "meetPlace", "notes", "gearAvailable",
	"isAllDay", "signupStatus",
}

// TripRepo defines the persistence operations for trips.
// The service and sync layers depend on this interface, not the sheet
// implementation, so they can be unit-tested with a mock.
type TripRepo interface {
	// List returns all current trips. Blanked (deleted) rows are skipped.
	List(ctx context.Context) ([]domain.Trip, error)

	// GetByID retrieves a single trip by its tripId.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, tripID string) (domain.Trip, error)

	// Create appends a new trip row.
	Create(ctx context.Context, trip domain.Trip) error

	// Update overwrites every column of an existing trip's row.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) error

	// Delete blanks every column of the trip's row. The row store has no
	// row-removal primitive, so an emptied row is how a deletion is
	// recorded; readers skip rows with an empty tripId.
	Delete(ctx context.Context, tripID string) error

	// SetEventID writes just the calendar event ID cell of a trip's row.
	SetEventID(ctx context.Context, tripID, eventID string) error
}

type sheetTripRepo struct {
	store RowStore
}

// NewTripRepo constructs a TripRepo backed by the provided row store.
func NewTripRepo(store RowStore) TripRepo {
	return &sheetTripRepo{store: store}
}

func (r *sheetTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	rows, err := r.store.GetRows(ctx, TripsSheet)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}

	trips := make([]domain.Trip, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row["tripId"]) == "" {
			continue
		}
		trip, err := rowToTrip(row)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

func (r *sheetTripRepo) GetByID(ctx context.Context, tripID string) (domain.Trip, error) {
	row, _, err := r.store.FindRowByColumn(ctx, TripsSheet, "tripId", tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	trip, err := rowToTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return trip, nil
}

func (r *sheetTripRepo) Create(ctx context.Context, trip domain.Trip) error {
	if err := r.store.AppendRow(ctx, TripsSheet, TripHeaders, tripToRecord(trip)); err != nil {
		return fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return nil
}

func (r *sheetTripRepo) Update(ctx context.Context, trip domain.Trip) error {
	_, rowIndex, err := r.store.FindRowByColumn(ctx, TripsSheet, "tripId", trip.TripID)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	if err := r.writeRow(ctx, rowIndex, tripToRecord(trip)); err != nil {
		return fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return nil
}

func (r *sheetTripRepo) Delete(ctx context.Context, tripID string) error {
	_, rowIndex, err := r.store.FindRowByColumn(ctx, TripsSheet, "tripId", tripID)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	blank := make(map[string]string, len(TripHeaders))
	for _, header := range TripHeaders {
		blank[header] = ""
	}
	if err := r.writeRow(ctx, rowIndex, blank); err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	return nil
}

func (r *sheetTripRepo) SetEventID(ctx context.Context, tripID, eventID string) error {
	_, rowIndex, err := r.store.FindRowByColumn(ctx, TripsSheet, "tripId", tripID)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.SetEventID: %w", err)
	}
	colIndex, err := r.store.GetColumnIndex(ctx, TripsSheet, "eventId")
	if err != nil {
		return fmt.Errorf("repo.TripRepo.SetEventID: %w", err)
	}
	if colIndex < 1 {
		return fmt.Errorf("repo.TripRepo.SetEventID: %w: trips sheet is missing eventId column",
			domain.ErrDataIntegrity)
	}
	if err := r.store.UpdateCell(ctx, TripsSheet, rowIndex, colIndex, eventID); err != nil {
		return fmt.Errorf("repo.TripRepo.SetEventID: %w", err)
	}
	return nil
}

// writeRow overwrites every column of one row, cell by cell. Sequential
// dependent calls with no cross-call lock: two concurrent writers to the
// same row interleave last-write-wins.
func (r *sheetTripRepo) writeRow(ctx context.Context, rowIndex int, record map[string]string) error {
	for _, header := range TripHeaders {
		colIndex, err := r.store.GetColumnIndex(ctx, TripsSheet, header)
		if err != nil {
			return err
		}
		if colIndex < 1 {
			return fmt.Errorf("%w: trips sheet is missing %s column", domain.ErrDataIntegrity, header)
		}
		if err := r.store.UpdateCell(ctx, TripsSheet, rowIndex, colIndex, record[header]); err != nil {
			return err
		}
	}
	return nil
}

func rowToTrip(row map[string]string) (domain.Trip, error) {
	tripID := strings.TrimSpace(row["tripId"])
	status, err := domain.ReadSignupStatusFromRow(row["signupStatus"])
	if err != nil {
		return domain.Trip{}, fmt.Errorf("trip %s: %w", tripID, err)
	}
	return domain.Trip{
		TripID:        tripID,
		EventID:       strings.TrimSpace(row["eventId"]),
		Title:         strings.TrimSpace(row["title"]),
		Activity:      strings.TrimSpace(row["activity"]),
		StartDate:     strings.TrimSpace(row["startDate"]),
		StartTime:     strings.TrimSpace(row["startTime"]),
		EndDate:       strings.TrimSpace(row["endDate"]),
		EndTime:       strings.TrimSpace(row["endTime"]),
		Location:      strings.TrimSpace(row["location"]),
		LeaderName:    strings.TrimSpace(row["leaderName"]),
		LeaderContact: strings.TrimSpace(row["leaderContact"]),
		Difficulty:    strings.TrimSpace(row["difficulty"]),
		MeetTime:      strings.TrimSpace(row["meetTime"]),
		MeetPlace:     strings.TrimSpace(row["meetPlace"]),
		Notes:         strings.TrimSpace(row["notes"]),
		GearAvailable: domain.SplitGearCell(row["gearAvailable"]),
		IsAllDay:      strings.EqualFold(strings.TrimSpace(row["isAllDay"]), "true"),
		SignupStatus:  status,
	}, nil
}

func tripToRecord(trip domain.Trip) map[string]string {
	isAllDay := "false"
	if trip.IsAllDay {
		isAllDay = "true"
	}
	return map[string]string{
		"tripId":        trip.TripID,
		"eventId":       trip.EventID,
		"title":         trip.Title,
		"activity":      trip.Activity,
		"startDate":     trip.StartDate,
		"startTime":     trip.StartTime,
		"endDate":       trip.EndDate,
		"endTime":       trip.EndTime,
		"location":      trip.Location,
		"leaderName":    trip.LeaderName,
		"leaderContact": trip.LeaderContact,
		"difficulty":    trip.Difficulty,
		"meetTime":      trip.MeetTime,
		"meetPlace":     trip.MeetPlace,
		"notes":         trip.Notes,
		"gearAvailable": strings.Join(trip.GearAvailable, ","),
		"isAllDay":      isAllDay,
		"signupStatus":  string(trip.SignupStatus),
	}
}
