package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/utch-club/tripsite-api/internal/domain"
)

// RsvpsSheet collects legacy open-form RSVPs; the site only ever appends.
const RsvpsSheet = "RSVPs"

// RsvpHeaders is the column layout of the RSVPs sheet.
var RsvpHeaders = []string{
	"submittedAt", "tripId", "name", "contact", "carpool", "gearNeeded", "notes",
}

// RsvpRepo stores legacy RSVP submissions.
type RsvpRepo interface {
	Append(ctx context.Context, submittedAt string, rsvp domain.RsvpInput) error
}

type sheetRsvpRepo struct {
	store RowStore
}

// NewRsvpRepo constructs an RsvpRepo backed by the provided row store.
func NewRsvpRepo(store RowStore) RsvpRepo {
	return &sheetRsvpRepo{store: store}
}

func (r *sheetRsvpRepo) Append(ctx context.Context, submittedAt string, rsvp domain.RsvpInput) error {
	record := map[string]string{
		"submittedAt": submittedAt,
		"tripId":      rsvp.TripID,
		"name":        rsvp.Name,
		"contact":     rsvp.Contact,
		"carpool":     rsvp.Carpool,
		"gearNeeded":  strings.Join(rsvp.GearNeeded, ","),
		"notes":       rsvp.Notes,
	}
	if err := r.store.AppendRow(ctx, RsvpsSheet, RsvpHeaders, record); err != nil {
		return fmt.Errorf("repo.RsvpRepo.Append: %w", err)
	}
	return nil
}
