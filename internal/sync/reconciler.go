// Package sync keeps the calendar mirror consistent with the trip sheet.
// Reconciles run in the background — scheduled after trip mutations and on
// a timer — and are idempotent: re-running against an unchanged state
// issues no calendar mutations.
package sync

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/utch-club/tripsite-api/internal/domain"
	"github.com/utch-club/tripsite-api/internal/google"
	"github.com/utch-club/tripsite-api/internal/tz"
)

const (
	// lookback bounds how far into the past stale events are swept.
	lookback = 60 * 24 * time.Hour
	// lookahead bounds how far into the future events are listed.
	lookahead = 400 * 24 * time.Hour
)

// TripSource is the slice of the trip repository the reconciler needs.
type TripSource interface {
	List(ctx context.Context) ([]domain.Trip, error)
	SetEventID(ctx context.Context, tripID, eventID string) error
}

// CalendarAPI is the slice of the calendar client the reconciler needs.
type CalendarAPI interface {
	CreateEvent(ctx context.Context, event google.Event) (string, error)
	UpdateEvent(ctx context.Context, eventID string, event google.Event) (bool, error)
	DeleteEvent(ctx context.Context, eventID string) error
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]google.Event, error)
}

// Reconciler drives trip rows and calendar events toward agreement:
// trips lacking an event get one, changed trips get their event rewritten,
// and events whose trip is gone are deleted.
type Reconciler struct {
	trips       TripSource
	calendar    CalendarAPI
	zone        string
	siteBaseURL string
	now         func() time.Time
}

// NewReconciler constructs a Reconciler. zone is the IANA zone trips' civil
// times are interpreted in; siteBaseURL (no trailing slash) anchors the
// RSVP links embedded in event descriptions. now anchors the listing
// window; pass time.Now outside of tests.
func NewReconciler(trips TripSource, calendar CalendarAPI, zone, siteBaseURL string, now func() time.Time) *Reconciler {
	return &Reconciler{trips: trips, calendar: calendar, zone: zone, siteBaseURL: siteBaseURL, now: now}
}

// Reconcile runs one full pass. Each trip is pushed independently so one
// bad row cannot strand the rest; the first error is still reported after
// the pass completes.
func (r *Reconciler) Reconcile(ctx context.Context) error {
	trips, err := r.trips.List(ctx)
	if err != nil {
		return fmt.Errorf("sync.Reconciler.Reconcile: %w", err)
	}

	now := r.now()
	loc, err := time.LoadLocation(r.zone)
	if err != nil {
		return fmt.Errorf("sync.Reconciler.Reconcile: %w", err)
	}
	cutoff := now.Add(-lookback).In(loc).Format("2006-01-02")

	existing, err := r.calendar.ListEvents(ctx, now.Add(-lookback), now.Add(lookahead))
	if err != nil {
		return fmt.Errorf("sync.Reconciler.Reconcile: %w", err)
	}
	eventsByID := make(map[string]google.Event, len(existing))
	for _, event := range existing {
		eventsByID[event.ID] = event
	}

	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	live := make(map[string]bool, len(trips))
	for _, trip := range trips {
		live[trip.TripID] = true
		// A trip that ended before the listing window opened has no
		// listed event to compare against, so pushing it would rewrite
		// the event on every pass. Leave it alone; the stale sweep below
		// is bounded by the same window.
		if tripLastDay(trip) < cutoff {
			continue
		}
		record(r.pushTrip(ctx, trip, eventsByID))
	}

	// Sweep events the site owns whose trip row is gone.
	for _, event := range existing {
		tripID := google.TripIDFromDescription(event.Description)
		if tripID == "" || live[tripID] {
			continue
		}
		if err := r.calendar.DeleteEvent(ctx, event.ID); err != nil {
			record(fmt.Errorf("delete stale event %s: %w", event.ID, err))
		}
	}

	if firstErr != nil {
		return fmt.Errorf("sync.Reconciler.Reconcile: %w", firstErr)
	}
	return nil
}

// tripLastDay is the trip's final inclusive day; single-day trips carry it
// in StartDate. Civil dates compare correctly as strings.
func tripLastDay(trip domain.Trip) string {
	if trip.EndDate != "" {
		return trip.EndDate
	}
	return trip.StartDate
}

// pushTrip makes the calendar agree with one trip row.
func (r *Reconciler) pushTrip(ctx context.Context, trip domain.Trip, eventsByID map[string]google.Event) error {
	desired, err := r.buildEvent(trip)
	if err != nil {
		return fmt.Errorf("trip %s: %w", trip.TripID, err)
	}

	if trip.EventID == "" {
		return r.createAndRecord(ctx, trip, desired)
	}

	// Skip the write when the listed event already matches; this is what
	// makes a no-change reconcile mutation-free.
	if current, ok := eventsByID[trip.EventID]; ok && r.eventsEqual(current, desired) {
		return nil
	}

	found, err := r.calendar.UpdateEvent(ctx, trip.EventID, desired)
	if err != nil {
		return fmt.Errorf("trip %s: %w", trip.TripID, err)
	}
	if !found {
		// The event was deleted out from under us; fall back to create.
		return r.createAndRecord(ctx, trip, desired)
	}
	return nil
}

func (r *Reconciler) createAndRecord(ctx context.Context, trip domain.Trip, desired google.Event) error {
	eventID, err := r.calendar.CreateEvent(ctx, desired)
	if err != nil {
		return fmt.Errorf("trip %s: %w", trip.TripID, err)
	}
	if err := r.trips.SetEventID(ctx, trip.TripID, eventID); err != nil {
		return fmt.Errorf("trip %s: %w", trip.TripID, err)
	}
	return nil
}

// buildEvent renders the desired calendar event for a trip. All-day events
// carry date-only endpoints with the exclusive end one day past the last
// inclusive day; timed events carry local date-times plus the zone name.
func (r *Reconciler) buildEvent(trip domain.Trip) (google.Event, error) {
	event := google.Event{
		Summary:     trip.Title,
		Description: google.BuildEventDescription(trip, r.rsvpURL(trip.TripID)),
		Location:    trip.Location,
	}

	endDate := trip.EndDate
	if endDate == "" {
		endDate = trip.StartDate
	}

	if trip.IsAllDay {
		exclusiveEnd, err := tz.AddDaysToDateString(endDate, 1)
		if err != nil {
			return google.Event{}, err
		}
		event.Start = google.EventTime{Date: trip.StartDate}
		event.End = google.EventTime{Date: exclusiveEnd}
		return event, nil
	}

	endTime := trip.EndTime
	if endTime == "" {
		endTime = trip.StartTime
	}
	event.Start = google.EventTime{
		DateTime: google.FormatDateTime(trip.StartDate, trip.StartTime),
		TimeZone: r.zone,
	}
	event.End = google.EventTime{
		DateTime: google.FormatDateTime(endDate, endTime),
		TimeZone: r.zone,
	}
	return event, nil
}

func (r *Reconciler) rsvpURL(tripID string) string {
	return r.siteBaseURL + "/?tripId=" + url.QueryEscape(tripID)
}

// eventsEqual compares the fields the site controls; anything else on the
// event (attendees, reminders) is not ours to reconcile.
func (r *Reconciler) eventsEqual(current, desired google.Event) bool {
	return current.Summary == desired.Summary &&
		current.Description == desired.Description &&
		current.Location == desired.Location &&
		r.endpointEqual(current.Start, desired.Start) &&
		r.endpointEqual(current.End, desired.End)
}

// endpointEqual compares one event endpoint. The API echoes timed
// endpoints back as RFC 3339 instants with a UTC offset, while the desired
// form is a local date-time plus zone name, so both sides are resolved to
// absolute instants before comparing. Date-only endpoints compare as
// strings.
func (r *Reconciler) endpointEqual(current, desired google.EventTime) bool {
	if desired.Date != "" {
		return current.Date == desired.Date
	}
	if current.DateTime == "" {
		return false
	}
	want, err := tz.ZonedTimeToUTC(desired.DateTime[:10], desired.DateTime[11:16], desired.TimeZone)
	if err != nil {
		return false
	}
	got, err := time.Parse(time.RFC3339, current.DateTime)
	if err != nil {
		return false
	}
	return got.Equal(want)
}
