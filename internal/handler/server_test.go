package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utch-club/tripsite-api/internal/domain"
)

// doJSON runs one request through the full router and decodes the envelope.
func doJSON(t *testing.T, deps *serverDeps, method, target string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.RemoteAddr = "10.1.2.3:54321"
	rec := httptest.NewRecorder()
	deps.server().Routes().ServeHTTP(rec, req)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), "body: %s", rec.Body.String())
	return rec, envelope
}

func TestGetHealth(t *testing.T) {
	rec, envelope := doJSON(t, newServerDeps(), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, envelope["ok"])
	data := envelope["data"].(map[string]any)
	assert.NotZero(t, data["timestamp"])
}

func TestEnvelope_ErrorShape(t *testing.T) {
	deps := newServerDeps()

	// Garbage body on a POST route exercises the error envelope.
	req := httptest.NewRequest(http.MethodPost, "/api/suggest", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	deps.server().Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, false, envelope["ok"])
	assert.Equal(t, "invalid JSON body", envelope["error"])
	assert.NotContains(t, envelope, "data")
}

func TestOfficerEndpoints_RejectWrongPasscode(t *testing.T) {
	cases := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/api/trips"},
		{http.MethodPost, "/api/trips/admin"},
		{http.MethodPatch, "/api/trips/gorge-2025"},
		{http.MethodDelete, "/api/trips/gorge-2025"},
		{http.MethodPost, "/api/requests/by-trip"},
		{http.MethodPatch, "/api/requests/r-1/status"},
		{http.MethodPost, "/api/site-settings"},
		{http.MethodPost, "/api/officer/verify"},
		{http.MethodPost, "/api/sync"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			deps := newServerDeps()
			rec, envelope := doJSON(t, deps, tc.method, tc.target,
				map[string]any{"officerSecret": "wrong"})

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Equal(t, false, envelope["ok"])
			assert.Equal(t, "not authorized", envelope["error"])
			// The gate saw the client IP, not host:port.
			require.NotEmpty(t, deps.gate.seen)
			assert.Equal(t, "10.1.2.3", deps.gate.seen[0])
		})
	}
}

func TestVerifyOfficer_RateLimited(t *testing.T) {
	deps := newServerDeps()
	deps.gate.err = fmt.Errorf("%w: too many attempts, please wait a minute", domain.ErrRateLimited)

	rec, envelope := doJSON(t, deps, http.MethodPost, "/api/officer/verify",
		map[string]any{"officerSecret": "open-sesame"})

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "too many attempts, please wait a minute", envelope["error"])
}

func TestVerifyOfficer_Success(t *testing.T) {
	rec, envelope := doJSON(t, newServerDeps(), http.MethodPost, "/api/officer/verify",
		map[string]any{"officerSecret": "open-sesame"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, envelope["ok"])
}

func TestRunSync(t *testing.T) {
	deps := newServerDeps()
	rec, envelope := doJSON(t, deps, http.MethodPost, "/api/sync",
		map[string]any{"officerSecret": "open-sesame"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, envelope["ok"])
	assert.Equal(t, 1, deps.sync.calls)
}

func TestRunSync_WrongPasscodeNeverSyncs(t *testing.T) {
	deps := newServerDeps()
	rec, _ := doJSON(t, deps, http.MethodPost, "/api/sync",
		map[string]any{"officerSecret": "wrong"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, deps.sync.calls)
}
