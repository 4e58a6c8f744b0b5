// Package domain contains the core data types for the trip site backend.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler, sync).
package domain

// Trip is the top-level aggregate: a club outing mirrored 1:1 (by TripID)
// into a calendar event whose lifecycle is driven by the sync reconciler.
// Dates and times are civil wall-clock strings exactly as stored in the
// trip sheet; conversion to absolute instants happens at the calendar
// boundary.
type Trip struct {
	TripID        string       `json:"tripId"`
	EventID       string       `json:"eventId,omitempty"`
	Title         string       `json:"title"`
	Activity      string       `json:"activity,omitempty"`
	StartDate     string       `json:"startDate"`           // YYYY-MM-DD
	StartTime     string       `json:"startTime,omitempty"` // HH:MM, empty for all-day trips
	EndDate       string       `json:"endDate,omitempty"`
	EndTime       string       `json:"endTime,omitempty"`
	Location      string       `json:"location,omitempty"`
	LeaderName    string       `json:"leaderName,omitempty"`
	LeaderContact string       `json:"leaderContact,omitempty"`
	Difficulty    string       `json:"difficulty,omitempty"`
	MeetTime      string       `json:"meetTime,omitempty"`
	MeetPlace     string       `json:"meetPlace,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	GearAvailable []string     `json:"gearAvailable,omitempty"`
	IsAllDay      bool         `json:"isAllDay"`
	SignupStatus  SignupStatus `json:"signupStatus"`
}

// TripInput is the officer-submitted body for creating or updating a trip.
type TripInput struct {
	Title         string   `json:"title"`
	Activity      string   `json:"activity"`
	StartDate     string   `json:"startDate"`
	StartTime     string   `json:"startTime"`
	EndDate       string   `json:"endDate"`
	EndTime       string   `json:"endTime"`
	Location      string   `json:"location"`
	LeaderName    string   `json:"leaderName"`
	LeaderContact string   `json:"leaderContact"`
	Difficulty    string   `json:"difficulty"`
	MeetTime      string   `json:"meetTime"`
	MeetPlace     string   `json:"meetPlace"`
	Notes         string   `json:"notes"`
	GearAvailable []string `json:"gearAvailable"`
	SignupStatus  string   `json:"signupStatus"`
}
