// Package service contains the business logic for the trip site API.
// Services validate inputs, enforce the signup gating rules, and orchestrate
// repo calls. No row mapping lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"fmt"
	"strings"

	"github.com/utch-club/tripsite-api/internal/domain"
)

// requiredString trims value and rejects empty input with a field-named
// validation error.
func requiredString(value, name string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s is required", domain.ErrValidation, name)
	}
	return trimmed, nil
}

// optionalString trims value, keeping empty as empty.
func optionalString(value string) string {
	return strings.TrimSpace(value)
}
