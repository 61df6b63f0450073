package common

import (
	"time"

	"fjacquet/biztrack/internal/models"
)

// ParseRange builds the --from/--to filter. A missing bound falls back to the default
// range: the first day of the current month through today.
func ParseRange(from, to string, now time.Time) (models.DateRange, error) {
	def := models.DefaultDateRange(now)
	if from == "" {
		from = def.StartKey()
	}
	if to == "" {
		to = def.EndKey()
	}
	return models.ParseDateRange(from, to)
}
