package domain

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

// SettingKey identifies one of the fixed, recognized site settings.
// Unknown keys are rejected, never silently stored.
type SettingKey string

const (
	SettingContactEmail           SettingKey = "contactEmail"
	SettingVolLinkURL             SettingKey = "volLinkUrl"
	SettingGroupMeURL             SettingKey = "groupMeUrl"
	SettingMeetingSchedule        SettingKey = "meetingSchedule"
	SettingMeetingLocation        SettingKey = "meetingLocation"
	SettingMeetingNote            SettingKey = "meetingNote"
	SettingRequestIntroMessage    SettingKey = "requestIntroMessage"
	SettingMeetingOnlyMessage     SettingKey = "meetingOnlyMessage"
	SettingFullTripMessage        SettingKey = "fullTripMessage"
	SettingRequestReceivedMessage SettingKey = "requestReceivedMessage"
)

// maxMessageLength bounds free-text setting values.
const maxMessageLength = 800

// SettingKeys lists every recognized key in a stable order.
var SettingKeys = []SettingKey{
	SettingContactEmail,
	SettingVolLinkURL,
	SettingGroupMeURL,
	SettingMeetingSchedule,
	SettingMeetingLocation,
	SettingMeetingNote,
	SettingRequestIntroMessage,
	SettingMeetingOnlyMessage,
	SettingFullTripMessage,
	SettingRequestReceivedMessage,
}

// SiteSettings maps every recognized key to its current value.
type SiteSettings map[SettingKey]string

// DefaultSiteSettings returns the hard-coded fallback values used for keys
// not present in the settings sheet.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SettingContactEmail:    "utch1968@gmail.com",
		SettingVolLinkURL:      "https://utk.campuslabs.com/engage/organization/canoeandhiking",
		SettingGroupMeURL:      "https://groupme.com/join_group/107532542/IWSaGazV",
		SettingMeetingSchedule: "Every Week - 7:00 PM",
		SettingMeetingLocation: "AMB 27",
		SettingMeetingNote: "We meet every week at 7pm in AMB27. This is where trips are discussed, " +
			"gear is handed out and returned, and members connect before adventures. " +
			"Meeting attendance is considered for limited-capacity trips.",
		SettingRequestIntroMessage: "Submit your request below. Officers review requests before confirming rosters.",
		SettingMeetingOnlyMessage:  "This trip is meeting sign-up only. Please attend a weekly meeting to request a spot.",
		SettingFullTripMessage:     "This trip is currently full. We appreciate your interest and hope you can join a future trip.",
		SettingRequestReceivedMessage: "Request received. Officers will review it; this is not a confirmed spot.",
	}
}

// ParseSettingKey validates a raw key against the recognized set.
func ParseSettingKey(raw string) (SettingKey, error) {
	key := SettingKey(strings.TrimSpace(raw))
	for _, k := range SettingKeys {
		if key == k {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: unsupported setting key: %s", ErrValidation, raw)
}

// NormalizeSettingValue validates and normalizes a value for the given key:
// contactEmail must be email-shaped, link keys must be https URLs, and all
// other keys are bounded free text.
func NormalizeSettingValue(key SettingKey, raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", ErrValidation, key)
	}
	switch key {
	case SettingContactEmail:
		return normalizeEmail(key, value)
	case SettingVolLinkURL, SettingGroupMeURL:
		return normalizeHTTPSURL(key, value)
	default:
		return normalizeMessage(key, value)
	}
}

func normalizeEmail(key SettingKey, value string) (string, error) {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return "", fmt.Errorf("%w: %s must be a valid email address", ErrValidation, key)
	}
	return value, nil
}

func normalizeHTTPSURL(key SettingKey, value string) (string, error) {
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("%w: %s must be a valid URL", ErrValidation, key)
	}
	if parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: %s must use https://", ErrValidation, key)
	}
	return parsed.String(), nil
}

func normalizeMessage(key SettingKey, value string) (string, error) {
	if len(value) > maxMessageLength {
		return "", fmt.Errorf("%w: %s is too long (max %d characters)", ErrValidation, key, maxMessageLength)
	}
	return value, nil
}
