package google

import (
	"context"
	"fmt"
	"net/http"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// listPageSize is the maximum the events API accepts per page.
const listPageSize = 2500

// EventTime is one endpoint of an event: either Date (all-day) or
// DateTime+TimeZone, never both.
type EventTime struct {
	Date     string
	DateTime string
	TimeZone string
}

// Event carries the event fields the site controls, shielding callers from
// the generated API types.
type Event struct {
	ID          string
	Summary     string
	Description string
	Location    string
	Start       EventTime
	End         EventTime
}

// FormatDateTime joins a civil date and time into the local-time RFC 3339
// prefix the calendar API expects alongside a timeZone field (no Z suffix,
// no offset).
func FormatDateTime(dateValue, timeValue string) string {
	return dateValue + "T" + timeValue + ":00"
}

// CalendarClient manages the events of one calendar.
type CalendarClient struct {
	svc        *calendar.Service
	calendarID string
}

// NewCalendarClient constructs a client for the given calendar. Production
// callers pass option.WithTokenSource; tests point opts at a local server.
func NewCalendarClient(ctx context.Context, calendarID string, opts ...option.ClientOption) (*CalendarClient, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google.NewCalendarClient: %w", err)
	}
	return &CalendarClient{svc: svc, calendarID: calendarID}, nil
}

// CreateEvent inserts a new event and returns the calendar-side event ID.
func (c *CalendarClient) CreateEvent(ctx context.Context, event Event) (string, error) {
	created, err := c.svc.Events.Insert(c.calendarID, toAPIEvent(event)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("google.CalendarClient.CreateEvent: %w", integrationError(err))
	}
	return created.Id, nil
}

// UpdateEvent overwrites an existing event. A 404 means the event no longer
// exists; that is reported as found=false, not an error, so the caller can
// fall back to creating a fresh event.
func (c *CalendarClient) UpdateEvent(ctx context.Context, eventID string, event Event) (bool, error) {
	_, err := c.svc.Events.Update(c.calendarID, eventID, toAPIEvent(event)).Context(ctx).Do()
	if statusCode(err) == http.StatusNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("google.CalendarClient.UpdateEvent: %w", integrationError(err))
	}
	return true, nil
}

// DeleteEvent removes an event. 404 and 410 mean it is already gone, which
// is a no-op success.
func (c *CalendarClient) DeleteEvent(ctx context.Context, eventID string) error {
	err := c.svc.Events.Delete(c.calendarID, eventID).Context(ctx).Do()
	switch statusCode(err) {
	case http.StatusNotFound, http.StatusGone:
		return nil
	}
	if err != nil {
		return fmt.Errorf("google.CalendarClient.DeleteEvent: %w", integrationError(err))
	}
	return nil
}

// ListEvents returns all events between timeMin and timeMax with
// recurrences expanded to single events, ordered by start time. Pages are
// accumulated until none remains.
func (c *CalendarClient) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]Event, error) {
	var events []Event
	call := c.svc.Events.List(c.calendarID).
		TimeMin(timeMin.UTC().Format(time.RFC3339)).
		TimeMax(timeMax.UTC().Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(listPageSize)
	err := call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			events = append(events, fromAPIEvent(item))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("google.CalendarClient.ListEvents: %w", integrationError(err))
	}
	return events, nil
}

// ---- Wire conversions --------------------------------------------------

func toAPIEvent(event Event) *calendar.Event {
	return &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Start:       toAPITime(event.Start),
		End:         toAPITime(event.End),
	}
}

func toAPITime(endpoint EventTime) *calendar.EventDateTime {
	return &calendar.EventDateTime{
		Date:     endpoint.Date,
		DateTime: endpoint.DateTime,
		TimeZone: endpoint.TimeZone,
	}
}

func fromAPIEvent(item *calendar.Event) Event {
	event := Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Location:    item.Location,
	}
	if item.Start != nil {
		event.Start = EventTime{Date: item.Start.Date, DateTime: item.Start.DateTime, TimeZone: item.Start.TimeZone}
	}
	if item.End != nil {
		event.End = EventTime{Date: item.End.Date, DateTime: item.End.DateTime, TimeZone: item.End.TimeZone}
	}
	return event
}
