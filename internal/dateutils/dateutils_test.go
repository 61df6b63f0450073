package dateutils

import (
	"testing"
	"time"

	"fjacquet/biztrack/internal/ledgererror"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name        string
		dateStr     string
		expectedOk  bool
		expectedY   int
		expectedM   time.Month
		expectedD   int
		expectedFmt string
	}{
		{"ISO format", "2023-01-15", true, 2023, time.January, 15, DateLayoutISO},
		{"European format", "15.01.2023", true, 2023, time.January, 15, DateLayoutEuropean},
		{"European slash format", "15/01/2023", true, 2023, time.January, 15, DateLayoutSlashEU},
		{"Full timestamp", "2023-01-15 10:30:45", true, 2023, time.January, 15, DateLayoutFull},
		{"RFC3339 with offset", "2023-01-15T23:30:00-02:00", true, 2023, time.January, 16, time.RFC3339},
		{"Extra whitespace", "  2023-01-15 ", true, 2023, time.January, 15, DateLayoutISO},
		{"Empty string", "", false, 0, 0, 0, ""},
		{"Invalid format", "not a date", false, 0, 0, 0, ""},
		{"US format rejected", "01/15/2023", false, 0, 0, 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, format, err := ParseDate(tc.dateStr)

			if tc.expectedOk {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedY, date.Year())
				assert.Equal(t, tc.expectedM, date.Month())
				assert.Equal(t, tc.expectedD, date.Day())
				assert.Equal(t, tc.expectedFmt, format)
				assert.Equal(t, time.UTC, date.Location())
			} else {
				assert.Error(t, err)
				assert.True(t, ledgererror.IsValidation(err))
			}
		})
	}
}

func TestToISODate(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	date := time.Date(2024, 3, 1, 1, 0, 0, 0, loc)
	assert.Equal(t, "2024-02-29", ToISODate(date))
	assert.Equal(t, "2024-03-01", ToISODate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCleanDateString(t *testing.T) {
	assert.Equal(t, "15 Jan 2023", CleanDateString("  15   Jan\t2023 "))
}

func TestStartOfDay(t *testing.T) {
	date := time.Date(2024, 5, 17, 13, 45, 10, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC), StartOfDay(date))
	local := time.Date(2024, 5, 17, 23, 30, 0, 0, time.FixedZone("UTC-3", -3*3600))
	assert.Equal(t, time.Date(2024, 5, 18, 0, 0, 0, 0, time.UTC), StartOfDay(local))
}

func TestFormatTimestamp(t *testing.T) {
	date := time.Date(2024, 5, 17, 13, 45, 10, 0, time.UTC)
	assert.Equal(t, "2024-05-17 13:45", FormatTimestamp(date))
}
