package domain

import (
	"fmt"
	"strings"
)

// SignupStatus is the trip-level gate controlling whether member requests
// may be submitted for a trip.
type SignupStatus string

const (
	// SignupRequestOpen means members may submit sign-up requests online.
	SignupRequestOpen SignupStatus = "REQUEST_OPEN"
	// SignupMeetingOnly means spots are requested at the weekly meeting,
	// not through the site.
	SignupMeetingOnly SignupStatus = "MEETING_ONLY"
	// SignupFull means the trip roster is full.
	SignupFull SignupStatus = "FULL"
)

func validSignupStatus(s string) bool {
	switch SignupStatus(s) {
	case SignupRequestOpen, SignupMeetingOnly, SignupFull:
		return true
	}
	return false
}

// ParseSignupStatusInput validates officer-supplied input against the signup
// status enum after trimming and uppercasing. Unlike ReadSignupStatusFromRow
// it rejects empty input: new writes must be explicit.
func ParseSignupStatusInput(value string) (SignupStatus, error) {
	status := strings.ToUpper(strings.TrimSpace(value))
	if validSignupStatus(status) {
		return SignupStatus(status), nil
	}
	if status == "" {
		status = "(missing)"
	}
	return "", fmt.Errorf("%w: invalid signupStatus: %s", ErrValidation, status)
}

// ReadSignupStatusFromRow interprets a signupStatus cell from the row store.
// Legacy rows may be missing the value because the column was added later;
// empty reads as SignupRequestOpen so existing trips remain usable until
// edited. Any non-empty value outside the enum is corrupt data.
func ReadSignupStatusFromRow(value string) (SignupStatus, error) {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return SignupRequestOpen, nil
	}
	if validSignupStatus(status) {
		return SignupStatus(status), nil
	}
	return "", fmt.Errorf("%w: invalid signupStatus: %s", ErrDataIntegrity, status)
}
