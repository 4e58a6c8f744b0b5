package google

import (
	"strings"

	"github.com/utch-club/tripsite-api/internal/domain"
)

// BuildEventDescription renders the human-readable event body from trip
// metadata. Lines sourced from absent fields are omitted entirely, never
// emitted empty, so the rendered block is deterministic for a given trip.
func BuildEventDescription(trip domain.Trip, rsvpURL string) string {
	lines := []string{"UTCH Trip", "", "Trip ID: " + trip.TripID}

	if trip.Activity != "" {
		lines = append(lines, "Activity: "+trip.Activity)
	}
	if trip.Difficulty != "" {
		lines = append(lines, "Difficulty: "+trip.Difficulty)
	}
	if len(trip.GearAvailable) > 0 {
		lines = append(lines, "Club gear available: "+strings.Join(trip.GearAvailable, ", "))
	}

	lines = append(lines, "")
	if trip.MeetTime != "" {
		lines = append(lines, "Meet time: "+trip.MeetTime)
	}
	if trip.MeetPlace != "" {
		lines = append(lines, "Meet place: "+trip.MeetPlace)
	}
	if trip.LeaderName != "" {
		lines = append(lines, "Leader: "+trip.LeaderName)
	}
	if trip.LeaderContact != "" {
		lines = append(lines, "Leader contact: "+trip.LeaderContact)
	}

	lines = append(lines, "", "RSVP: "+rsvpURL)

	if trip.Notes != "" {
		lines = append(lines, "", "Notes:", trip.Notes)
	}

	return strings.Join(lines, "\n")
}

// TripIDFromDescription extracts the "Trip ID:" marker from an event body
// rendered by BuildEventDescription. Returns an empty string for events the
// site does not own.
func TripIDFromDescription(description string) string {
	for _, line := range strings.Split(description, "\n") {
		if id, ok := strings.CutPrefix(line, "Trip ID: "); ok {
			return strings.TrimSpace(id)
		}
	}
	return ""
}
