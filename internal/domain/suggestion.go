package domain

// SuggestionInput is a member-submitted trip idea. Name and Idea are
// required; everything else is optional color.
type SuggestionInput struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	WillingToLead string `json:"willingToLead"`
	Idea          string `json:"idea"`
	Location      string `json:"location"`
	Timing        string `json:"timing"`
	Notes         string `json:"notes"`
}

// RsvpInput is the legacy open-RSVP submission, kept alongside the gated
// request flow for trips that still link to the old form.
type RsvpInput struct {
	TripID     string   `json:"tripId"`
	Name       string   `json:"name"`
	Contact    string   `json:"contact"`
	Carpool    string   `json:"carpool"`
	GearNeeded []string `json:"gearNeeded"`
	Notes      string   `json:"notes"`
}
