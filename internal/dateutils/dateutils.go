// Package dateutils provides the date parsing and formatting used by the CLI and the exporters.
package dateutils

import (
	"regexp"
	"strings"
	"time"

	"fjacquet/biztrack/internal/ledgererror"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutSlashEU  = "02/01/2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
	DateLayoutStamp    = "2006-01-02 15:04"
)

// InputFormats lists the layouts accepted for a transaction date, tried in order.
// US month-first dates are not accepted since they collide with the European slash layout.
var InputFormats = []string{
	DateLayoutISO,
	time.RFC3339,
	DateLayoutFull,
	DateLayoutEuropean,
	DateLayoutSlashEU,
	"2006/01/02",
}

var spaces = regexp.MustCompile(`\s+`)

// ParseDate parses a transaction date typed by the user.
// Returns the parsed time in UTC and the detected format.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", &ledgererror.ValidationError{Field: "date", Reason: "must not be empty"}
	}

	for _, format := range InputFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t.UTC(), format, nil
		}
	}

	return time.Time{}, "", &ledgererror.ValidationError{Field: "date", Value: dateStr, Reason: "unrecognised date format"}
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD) of its UTC day.
func ToISODate(date time.Time) string {
	return date.UTC().Format(DateLayoutISO)
}

// FormatTimestamp formats a generation time for report headers.
func FormatTimestamp(date time.Time) string {
	return date.Format(DateLayoutStamp)
}

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// StartOfDay truncates a date to midnight UTC of its UTC day.
func StartOfDay(date time.Time) time.Time {
	date = date.UTC()
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
