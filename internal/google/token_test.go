package google_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	"github.com/utch-club/tripsite-api/internal/domain"
	"github.com/utch-club/tripsite-api/internal/google"
)

// testKey generates a throwaway RSA key and its PKCS#1 PEM encoding.
func testKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pemText := string(pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}))
	return key, pemText
}

// tokenEndpoint serves the OAuth token URL, capturing each assertion and
// counting exchanges.
type tokenEndpoint struct {
	hits       int
	grantTypes []string
	assertions []string
}

func (e *tokenEndpoint) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e.hits++
		require.NoError(t, r.ParseForm())
		e.grantTypes = append(e.grantTypes, r.PostForm.Get("grant_type"))
		e.assertions = append(e.assertions, r.PostForm.Get("assertion"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "bearer-token-1",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}
}

// TestTokenSource_SignedAssertion verifies the exchange uses the jwt-bearer
// grant and that the minted assertion is signed with the service account's
// key and claims the right issuer, audience, and scopes.
func TestTokenSource_SignedAssertion(t *testing.T) {
	key, pemText := testKey(t)
	endpoint := &tokenEndpoint{}
	server := httptest.NewServer(endpoint.handler(t))
	defer server.Close()

	ts, err := google.NewTokenSource(context.Background(),
		"bot@example.iam.gserviceaccount.com", pemText, server.URL)
	require.NoError(t, err)

	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "bearer-token-1", tok.AccessToken)

	require.Len(t, endpoint.grantTypes, 1)
	assert.Equal(t, "urn:ietf:params:oauth:grant-type:jwt-bearer", endpoint.grantTypes[0])

	var claims struct {
		jwtv5.RegisteredClaims
		Scope string `json:"scope"`
	}
	_, err = jwtv5.ParseWithClaims(endpoint.assertions[0], &claims,
		func(token *jwtv5.Token) (any, error) { return &key.PublicKey, nil },
		jwtv5.WithValidMethods([]string{"RS256"}),
	)
	require.NoError(t, err)
	assert.Equal(t, "bot@example.iam.gserviceaccount.com", claims.Issuer)
	assert.Equal(t, jwtv5.ClaimStrings{server.URL}, claims.Audience)
	assert.Contains(t, claims.Scope, "https://www.googleapis.com/auth/spreadsheets")
	assert.Contains(t, claims.Scope, "https://www.googleapis.com/auth/calendar")
}

// TestTokenSource_CachesToken verifies a live token is reused rather than
// re-exchanged on every call.
func TestTokenSource_CachesToken(t *testing.T) {
	_, pemText := testKey(t)
	endpoint := &tokenEndpoint{}
	server := httptest.NewServer(endpoint.handler(t))
	defer server.Close()

	ts, err := google.NewTokenSource(context.Background(), "bot@example.com", pemText, server.URL)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		tok, err := ts.Token()
		require.NoError(t, err)
		assert.Equal(t, "bearer-token-1", tok.AccessToken)
	}
	assert.Equal(t, 1, endpoint.hits, "second call must come from the cache")
}

// TestNewTokenSource_EscapedNewlines verifies a PEM that passed through an
// env var with literal \n sequences still parses.
func TestNewTokenSource_EscapedNewlines(t *testing.T) {
	_, pemText := testKey(t)
	escaped := strings.ReplaceAll(pemText, "\n", `\n`)

	_, err := google.NewTokenSource(context.Background(), "bot@example.com", escaped, google.DefaultTokenURL)
	require.NoError(t, err)
}

// TestNewTokenSource_BadKey verifies a malformed key fails at construction,
// not on the first exchange.
func TestNewTokenSource_BadKey(t *testing.T) {
	_, err := google.NewTokenSource(context.Background(), "bot@example.com", "not a key", google.DefaultTokenURL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private key")
}

// TestTokenSource_RejectedExchange verifies a refused exchange surfaces the
// upstream body so a revoked service account is diagnosable from the logs.
func TestTokenSource_RejectedExchange(t *testing.T) {
	_, pemText := testKey(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	ts, err := google.NewTokenSource(context.Background(), "bot@example.com", pemText, server.URL)
	require.NoError(t, err)

	_, err = ts.Token()
	require.Error(t, err)
	var rerr *oauth2.RetrieveError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusBadRequest, rerr.Response.StatusCode)
	assert.Contains(t, string(rerr.Body), "invalid_grant")
}

// TestTokenSource_RejectedExchangeThroughClient verifies the same failure
// seen through an API client maps to the integration error with the
// upstream detail intact.
func TestTokenSource_RejectedExchangeThroughClient(t *testing.T) {
	_, pemText := testKey(t)
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer tokenServer.Close()
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("the API must not be reached without a token")
	}))
	defer apiServer.Close()

	ts, err := google.NewTokenSource(context.Background(), "bot@example.com", pemText, tokenServer.URL)
	require.NoError(t, err)
	client, err := google.NewSheetsClient(context.Background(), "sheet-id",
		option.WithEndpoint(apiServer.URL), option.WithTokenSource(ts))
	require.NoError(t, err)

	_, err = client.GetRows(context.Background(), "Trips")
	require.ErrorIs(t, err, domain.ErrIntegration)
	assert.Contains(t, err.Error(), "invalid_grant")
}
