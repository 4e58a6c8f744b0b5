package domain

import (
	"fmt"
	"strings"
)

// RequestStatus is the review state of a member sign-up request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestDeclined RequestStatus = "DECLINED"
)

// ParseRequestStatus validates a status value against the request status
// enum after trimming and uppercasing. Used both for officer input (wrapped
// as ErrValidation by the caller's context) and for stored rows.
func ParseRequestStatus(value string) (RequestStatus, error) {
	status := RequestStatus(strings.ToUpper(strings.TrimSpace(value)))
	switch status {
	case RequestPending, RequestApproved, RequestDeclined:
		return status, nil
	}
	return "", fmt.Errorf("%w: invalid status: %s", ErrValidation, value)
}

// Request is a member's sign-up request for a trip. SubmittedAt is an
// ISO-8601 UTC instant and is immutable after creation; ordering by it
// lexicographically is chronological.
type Request struct {
	RequestID   string        `json:"requestId"`
	SubmittedAt string        `json:"submittedAt"`
	TripID      string        `json:"tripId"`
	Name        string        `json:"name"`
	Contact     string        `json:"contact"`
	Carpool     string        `json:"carpool,omitempty"`
	GearNeeded  []string      `json:"gearNeeded"`
	Notes       string        `json:"notes,omitempty"`
	Status      RequestStatus `json:"status"`
	UpdatedAt   string        `json:"updatedAt,omitempty"`
}

// RequestInput is the member-submitted body for creating a request.
type RequestInput struct {
	TripID     string   `json:"tripId"`
	Name       string   `json:"name"`
	Contact    string   `json:"contact"`
	Carpool    string   `json:"carpool"`
	GearNeeded []string `json:"gearNeeded"`
	Notes      string   `json:"notes"`
}
