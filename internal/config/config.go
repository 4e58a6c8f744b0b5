// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// ServiceAccountEmail is the Google service account identity used for
	// both the spreadsheet and the calendar. Required.
	ServiceAccountEmail string

	// PrivateKeyPEM is the service account's private key. Literal \n
	// sequences are tolerated. Required.
	PrivateKeyPEM string

	// SheetID is the spreadsheet backing the row store. Required.
	SheetID string

	// CalendarID is the public trip calendar. Required.
	CalendarID string

	// OfficerPasscode is the shared secret gating officer mutations. Required.
	OfficerPasscode string

	// SiteBaseURL anchors the RSVP links embedded in calendar events,
	// stored without a trailing slash. Required.
	SiteBaseURL string

	// Timezone is the IANA zone trips' civil dates are interpreted in.
	// Defaults to "America/New_York".
	Timezone string

	// SyncInterval is how often the periodic calendar reconcile runs.
	// Defaults to 6h.
	SyncInterval time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		Timezone:    getEnv("TIMEZONE", "America/New_York"),
	}

	interval, err := time.ParseDuration(getEnv("SYNC_INTERVAL", "6h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SYNC_INTERVAL: %w", err)
	}
	cfg.SyncInterval = interval

	required := []struct {
		name   string
		target *string
	}{
		{"GOOGLE_SERVICE_ACCOUNT_EMAIL", &cfg.ServiceAccountEmail},
		{"GOOGLE_PRIVATE_KEY", &cfg.PrivateKeyPEM},
		{"SHEET_ID", &cfg.SheetID},
		{"CALENDAR_ID", &cfg.CalendarID},
		{"OFFICER_PASSCODE", &cfg.OfficerPasscode},
		{"SITE_BASE_URL", &cfg.SiteBaseURL},
	}

	var missing []string
	for _, v := range required {
		*v.target = os.Getenv(v.name)
		if *v.target == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	cfg.SiteBaseURL = strings.TrimSuffix(strings.TrimSpace(cfg.SiteBaseURL), "/")
	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
