package google

import (
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/utch-club/tripsite-api/internal/domain"
)

// integrationError folds an upstream failure into domain.ErrIntegration
// while keeping the status and response body visible; those are what an
// operator needs when a sync run fails.
func integrationError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return fmt.Errorf("%w: upstream %d: %s", domain.ErrIntegration, gerr.Code, errorDetail(gerr))
	}
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return fmt.Errorf("%w: token exchange rejected (%d): %s",
			domain.ErrIntegration, rerr.Response.StatusCode, rerr.Body)
	}
	return fmt.Errorf("%w: %v", domain.ErrIntegration, err)
}

func errorDetail(gerr *googleapi.Error) string {
	if gerr.Message != "" {
		return gerr.Message
	}
	return gerr.Body
}

// statusCode extracts the upstream HTTP status from an API error, or 0 when
// the error is nil or carries no status.
func statusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}
