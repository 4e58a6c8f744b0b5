package repo

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/utch-club/tripsite-api/internal/domain"
)

// RequestsSheet is the sheet holding one row per sign-up request.
const RequestsSheet = "Requests"

// RequestHeaders is the column layout of the requests sheet.
var RequestHeaders = []string{
	"requestId", "submittedAt", "tripId", "name", "contact",
	"carpool", "gearNeeded", "notes", "status", "updatedAt",
}

// RequestRepo defines the persistence operations for sign-up requests.
type RequestRepo interface {
	// Append stores a new request row.
	Append(ctx context.Context, request domain.Request) error

	// ListByTrip returns the requests for one trip ordered by submission
	// instant ascending. Malformed stored rows fail loudly with
	// domain.ErrDataIntegrity rather than being silently coerced.
	ListByTrip(ctx context.Context, tripID string) ([]domain.Request, error)

	// UpdateStatus transitions a request's status and stamps updatedAt.
	// Returns domain.ErrNotFound for an unknown requestId and
	// domain.ErrDataIntegrity when the sheet lacks the status or updatedAt
	// column.
	UpdateStatus(ctx context.Context, requestID string, status domain.RequestStatus, updatedAt string) error
}

type sheetRequestRepo struct {
	store RowStore
}

// NewRequestRepo constructs a RequestRepo backed by the provided row store.
func NewRequestRepo(store RowStore) RequestRepo {
	return &sheetRequestRepo{store: store}
}

func (r *sheetRequestRepo) Append(ctx context.Context, request domain.Request) error {
	record := map[string]string{
		"requestId":   request.RequestID,
		"submittedAt": request.SubmittedAt,
		"tripId":      request.TripID,
		"name":        request.Name,
		"contact":     request.Contact,
		"carpool":     request.Carpool,
		"gearNeeded":  strings.Join(request.GearNeeded, ","),
		"notes":       request.Notes,
		"status":      string(request.Status),
		"updatedAt":   request.UpdatedAt,
	}
	if err := r.store.AppendRow(ctx, RequestsSheet, RequestHeaders, record); err != nil {
		return fmt.Errorf("repo.RequestRepo.Append: %w", err)
	}
	return nil
}

func (r *sheetRequestRepo) ListByTrip(ctx context.Context, tripID string) ([]domain.Request, error) {
	rows, err := r.store.GetRows(ctx, RequestsSheet)
	if err != nil {
		return nil, fmt.Errorf("repo.RequestRepo.ListByTrip: %w", err)
	}

	requests := []domain.Request{}
	for i, row := range rows {
		if strings.TrimSpace(row["tripId"]) != tripID {
			continue
		}
		request, err := rowToRequest(row, i+2)
		if err != nil {
			return nil, fmt.Errorf("repo.RequestRepo.ListByTrip: %w", err)
		}
		requests = append(requests, request)
	}

	// submittedAt is an ISO-8601 UTC string, so lexicographic order is
	// chronological.
	sort.SliceStable(requests, func(a, b int) bool {
		return requests[a].SubmittedAt < requests[b].SubmittedAt
	})
	return requests, nil
}

func (r *sheetRequestRepo) UpdateStatus(ctx context.Context, requestID string, status domain.RequestStatus, updatedAt string) error {
	_, rowIndex, err := r.store.FindRowByColumn(ctx, RequestsSheet, "requestId", requestID)
	if err != nil {
		return fmt.Errorf("repo.RequestRepo.UpdateStatus: %w", err)
	}

	statusCol, err := r.store.GetColumnIndex(ctx, RequestsSheet, "status")
	if err != nil {
		return fmt.Errorf("repo.RequestRepo.UpdateStatus: %w", err)
	}
	updatedAtCol, err := r.store.GetColumnIndex(ctx, RequestsSheet, "updatedAt")
	if err != nil {
		return fmt.Errorf("repo.RequestRepo.UpdateStatus: %w", err)
	}
	if statusCol < 1 || updatedAtCol < 1 {
		return fmt.Errorf("repo.RequestRepo.UpdateStatus: %w: requests sheet is missing status or updatedAt column",
			domain.ErrDataIntegrity)
	}

	if err := r.store.UpdateCell(ctx, RequestsSheet, rowIndex, statusCol, string(status)); err != nil {
		return fmt.Errorf("repo.RequestRepo.UpdateStatus: %w", err)
	}
	if err := r.store.UpdateCell(ctx, RequestsSheet, rowIndex, updatedAtCol, updatedAt); err != nil {
		return fmt.Errorf("repo.RequestRepo.UpdateStatus: %w", err)
	}
	return nil
}

// rowToRequest validates a stored request row. Every required field must be
// present: the requests sheet postdates every schema change, so a hole in a
// row means the sheet was edited by hand.
func rowToRequest(row map[string]string, rowNumber int) (domain.Request, error) {
	required := func(column string) (string, error) {
		value := strings.TrimSpace(row[column])
		if value == "" {
			return "", fmt.Errorf("%w: requests row %d is missing %s", domain.ErrDataIntegrity, rowNumber, column)
		}
		return value, nil
	}

	requestID, err := required("requestId")
	if err != nil {
		return domain.Request{}, err
	}
	submittedAt, err := required("submittedAt")
	if err != nil {
		return domain.Request{}, err
	}
	tripID, err := required("tripId")
	if err != nil {
		return domain.Request{}, err
	}
	name, err := required("name")
	if err != nil {
		return domain.Request{}, err
	}
	contact, err := required("contact")
	if err != nil {
		return domain.Request{}, err
	}
	rawStatus, err := required("status")
	if err != nil {
		return domain.Request{}, err
	}
	status, err := domain.ParseRequestStatus(rawStatus)
	if err != nil {
		return domain.Request{}, fmt.Errorf("%w: requests row %d has invalid status %q",
			domain.ErrDataIntegrity, rowNumber, rawStatus)
	}

	return domain.Request{
		RequestID:   requestID,
		SubmittedAt: submittedAt,
		TripID:      tripID,
		Name:        name,
		Contact:     contact,
		Carpool:     strings.TrimSpace(row["carpool"]),
		GearNeeded:  domain.SplitGearCell(row["gearNeeded"]),
		Notes:       strings.TrimSpace(row["notes"]),
		Status:      status,
		UpdatedAt:   strings.TrimSpace(row["updatedAt"]),
	}, nil
}
