package models

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/biztrack/internal/ledgererror"
)

// DateRange is an inclusive [Start, End] day filter. It is never persisted.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange builds a DateRange from two YYYY-MM-DD strings.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayoutISO, strings.TrimSpace(start))
	if err != nil {
		return DateRange{}, &ledgererror.ValidationError{Field: "start", Value: start, Reason: "expected YYYY-MM-DD", Err: err}
	}
	e, err := time.Parse(DateLayoutISO, strings.TrimSpace(end))
	if err != nil {
		return DateRange{}, &ledgererror.ValidationError{Field: "end", Value: end, Reason: "expected YYYY-MM-DD", Err: err}
	}
	if s.After(e) {
		return DateRange{}, &ledgererror.ValidationError{Field: "range", Value: start + ".." + end, Reason: "start is after end"}
	}
	return DateRange{Start: s, End: e}, nil
}

// DefaultDateRange covers the first day of now's month through now.
func DefaultDateRange(now time.Time) DateRange {
	now = now.UTC()
	return DateRange{
		Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// StartKey returns the start bound as YYYY-MM-DD.
func (r DateRange) StartKey() string {
	return r.Start.Format(DateLayoutISO)
}

// EndKey returns the end bound as YYYY-MM-DD.
func (r DateRange) EndKey() string {
	return r.End.Format(DateLayoutISO)
}

// Contains reports whether the UTC day of date lies within the range. The check is a
// string comparison of zero-padded ISO days, matching how the bounds were entered.
func (r DateRange) Contains(date time.Time) bool {
	day := date.UTC().Format(DateLayoutISO)
	return day >= r.StartKey() && day <= r.EndKey()
}

// String returns "YYYY-MM-DD..YYYY-MM-DD".
func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.StartKey(), r.EndKey())
}
