package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utch-club/tripsite-api/internal/domain"
)

func TestCreateRequest(t *testing.T) {
	deps := newServerDeps()
	deps.requests.createFn = func(_ context.Context, input domain.RequestInput) (domain.Request, error) {
		return domain.Request{RequestID: "r-1", TripID: input.TripID}, nil
	}

	// No officerSecret: members submit requests without a passcode.
	rec, envelope := doJSON(t, deps, http.MethodPost, "/api/requests", map[string]any{
		"tripId":  "gorge-2025",
		"name":    "Sam",
		"contact": "sam@example.com",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "r-1", data["requestId"])
	assert.Equal(t, "gorge-2025", data["tripId"])
}

func TestCreateRequest_ClosedTrip(t *testing.T) {
	deps := newServerDeps()
	deps.requests.createFn = func(context.Context, domain.RequestInput) (domain.Request, error) {
		return domain.Request{}, fmt.Errorf("%w: this trip is currently full", domain.ErrValidation)
	}

	rec, envelope := doJSON(t, deps, http.MethodPost, "/api/requests", map[string]any{
		"tripId": "gorge-2025", "name": "Sam", "contact": "sam@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "this trip is currently full", envelope["error"])
}

func TestListRequestsByTrip(t *testing.T) {
	deps := newServerDeps()
	deps.requests.listByTripFn = func(_ context.Context, tripID string) ([]domain.Request, error) {
		assert.Equal(t, "gorge-2025", tripID)
		return []domain.Request{
			{RequestID: "r-1", TripID: tripID, Name: "Sam", Status: domain.RequestPending},
		}, nil
	}

	rec, envelope := doJSON(t, deps, http.MethodPost, "/api/requests/by-trip", map[string]any{
		"officerSecret": "open-sesame",
		"tripId":        "gorge-2025",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	data := envelope["data"].(map[string]any)
	requests := data["requests"].([]any)
	require.Len(t, requests, 1)
	request := requests[0].(map[string]any)
	assert.Equal(t, "r-1", request["requestId"])
	assert.Equal(t, "PENDING", request["status"])
}

func TestUpdateRequestStatus(t *testing.T) {
	deps := newServerDeps()
	deps.requests.updateStatusFn = func(_ context.Context, requestID, status string) (domain.RequestStatus, error) {
		assert.Equal(t, "r-1", requestID)
		assert.Equal(t, "approved", status)
		return domain.RequestApproved, nil
	}

	rec, envelope := doJSON(t, deps, http.MethodPatch, "/api/requests/r-1/status", map[string]any{
		"officerSecret": "open-sesame",
		"status":        "approved",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "r-1", data["requestId"])
	assert.Equal(t, "APPROVED", data["status"])
}

func TestUpdateRequestStatus_Unknown(t *testing.T) {
	deps := newServerDeps()
	deps.requests.updateStatusFn = func(context.Context, string, string) (domain.RequestStatus, error) {
		return "", domain.ErrNotFound
	}

	rec, envelope := doJSON(t, deps, http.MethodPatch, "/api/requests/nope/status", map[string]any{
		"officerSecret": "open-sesame",
		"status":        "approved",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", envelope["error"])
}
