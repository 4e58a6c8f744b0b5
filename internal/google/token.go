// Package google wraps the two Google APIs the site depends on: the
// Calendar events API and the Sheets values API (the row store). Both
// clients are built on the generated google.golang.org/api services;
// authentication is a service-account jwt-bearer token source from
// golang.org/x/oauth2. Upstream statuses the site tolerates (a vanished
// event, an already-deleted event, a missing sheet) are recognized off
// googleapi.Error so callers never see them as failures.
package google

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/jwt"
	calendar "google.golang.org/api/calendar/v3"
	sheets "google.golang.org/api/sheets/v4"
)

// DefaultTokenURL is Google's OAuth 2.0 token endpoint.
const DefaultTokenURL = "https://oauth2.googleapis.com/token"

// NewTokenSource returns a token source minting service-account bearer
// tokens via the jwt-bearer grant, scoped to the spreadsheet row store and
// the calendar. Tokens are cached and reused until expiry. Literal \n
// sequences in the PEM (the usual casualty of passing keys through env
// vars) are converted to newlines first. Pass DefaultTokenURL outside of
// tests.
func NewTokenSource(ctx context.Context, serviceAccountEmail, privateKeyPEM, tokenURL string) (oauth2.TokenSource, error) {
	keyPEM := strings.TrimSpace(strings.ReplaceAll(privateKeyPEM, `\n`, "\n"))
	if err := checkPrivateKey([]byte(keyPEM)); err != nil {
		return nil, fmt.Errorf("google.NewTokenSource: %w", err)
	}

	cfg := &jwt.Config{
		Email:      serviceAccountEmail,
		PrivateKey: []byte(keyPEM),
		Scopes:     []string{sheets.SpreadsheetsScope, calendar.CalendarScope},
		TokenURL:   tokenURL,
	}
	return cfg.TokenSource(ctx), nil
}

// checkPrivateKey rejects a malformed key at startup. The oauth2 jwt flow
// only parses the key on the first exchange, which would otherwise push the
// failure into the first sync run's logs.
func checkPrivateKey(keyPEM []byte) error {
	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return errors.New("parse private key: not PEM-encoded")
	}
	if _, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return fmt.Errorf("parse private key: %w", err)
	}
	if _, ok := parsed.(*rsa.PrivateKey); !ok {
		return errors.New("parse private key: not an RSA key")
	}
	return nil
}
