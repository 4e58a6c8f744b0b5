// Package tz converts civil wall-clock date/time strings in a named IANA
// zone to absolute instants and back. Zone data comes from the embedded
// tzdata copy, so conversions do not depend on the host's zoneinfo files.
package tz

import (
	"fmt"
	"regexp"
	"time"
	_ "time/tzdata"

	"github.com/utch-club/tripsite-api/internal/domain"
)

var (
	datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	timePattern = regexp.MustCompile(`^(\d{2}):(\d{2})$`)
)

// ParseDate validates a strict YYYY-MM-DD string and returns its components.
func ParseDate(value string) (year, month, day int, err error) {
	m := datePattern.FindStringSubmatch(value)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("%w: invalid date: %s", domain.ErrValidation, value)
	}
	return atoi(m[1]), atoi(m[2]), atoi(m[3]), nil
}

// ParseTime validates a strict HH:MM string and returns its components.
func ParseTime(value string) (hour, minute int, err error) {
	m := timePattern.FindStringSubmatch(value)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: invalid time: %s", domain.ErrValidation, value)
	}
	return atoi(m[1]), atoi(m[2]), nil
}

// atoi converts a digits-only string already vetted by a pattern above.
func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

// offsetAt returns the zone's UTC offset in effect at the given instant,
// derived by reading the civil fields the zone's wall clock shows for it.
func offsetAt(instant time.Time, loc *time.Location) time.Duration {
	local := instant.In(loc)
	asUTC := time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), 0, time.UTC)
	return asUTC.Sub(instant)
}

// resolve turns civil fields interpreted in zone into an absolute instant.
// It forms a provisional instant by treating the fields as UTC, measures the
// zone's offset at that instant, subtracts it, and re-checks the offset at
// the corrected instant. A second pass is enough: within any short window a
// zone's offset only takes one of two values, so the offset at the corrected
// instant is final.
func resolve(year, month, day, hour, minute int, loc *time.Location) time.Time {
	guess := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	offset := offsetAt(guess, loc)
	adjusted := guess.Add(-offset)
	if second := offsetAt(adjusted, loc); second != offset {
		adjusted = guess.Add(-second)
	}
	return adjusted
}

// ZonedTimeToUTC converts a YYYY-MM-DD date and HH:MM time denoting local
// wall-clock time in the named zone to the absolute instant they denote.
func ZonedTimeToUTC(dateValue, timeValue, zone string) (time.Time, error) {
	year, month, day, err := ParseDate(dateValue)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := ParseTime(timeValue)
	if err != nil {
		return time.Time{}, err
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("tz.ZonedTimeToUTC: %w", err)
	}
	return resolve(year, month, day, hour, minute, loc), nil
}

// DateOnlyToUTC converts a YYYY-MM-DD date to the instant of local midnight
// in the named zone.
func DateOnlyToUTC(dateValue, zone string) (time.Time, error) {
	year, month, day, err := ParseDate(dateValue)
	if err != nil {
		return time.Time{}, err
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("tz.DateOnlyToUTC: %w", err)
	}
	return resolve(year, month, day, 0, 0, loc), nil
}

// PartsInZone is the inverse direction: it formats an absolute instant as
// the YYYY-MM-DD date and HH:MM time its zone's wall clock shows.
// A single formatting pass; no iteration is needed going this way.
func PartsInZone(instant time.Time, zone string) (date, clock string, err error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return "", "", fmt.Errorf("tz.PartsInZone: %w", err)
	}
	local := instant.In(loc)
	return local.Format("2006-01-02"), local.Format("15:04"), nil
}

// AddDaysToDateString shifts a YYYY-MM-DD date by days using pure calendar
// arithmetic in UTC. No zone lookup: an all-day date string has no zone.
func AddDaysToDateString(dateValue string, days int) (string, error) {
	year, month, day, err := ParseDate(dateValue)
	if err != nil {
		return "", err
	}
	base := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, days).Format("2006-01-02"), nil
}
