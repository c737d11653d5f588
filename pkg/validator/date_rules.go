package validator

import (
	"fmt"
	"time"
)

// DefaultDateWindowDays is how far ahead the date validator accepts dates.
const DefaultDateWindowDays = 60

// DateOnly truncates t to midnight UTC of its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func DateBetween(field string, value time.Time, start time.Time, end time.Time) Rule {
	return Rule{
		Check: func() bool {
			return !value.IsZero() && !value.Before(start) && !value.After(end)
		},
		Error: fieldError(field,
			fmt.Sprintf("date must be between %s and %s", start.Format(time.DateOnly), end.Format(time.DateOnly)),
			"validation.date_between",
			map[string]any{
				"start": start.Format(time.DateOnly),
				"end":   end.Format(time.DateOnly),
			},
		),
	}
}

// DateWithinDays accepts dates in the closed window [today, today+days],
// compared at date-only granularity so time of day never matters. A zero
// value is invalid.
func DateWithinDays(field string, value, today time.Time, days int) Rule {
	start := DateOnly(today)
	end := start.AddDate(0, 0, days)
	if value.IsZero() {
		return DateBetween(field, value, start, end)
	}
	return DateBetween(field, DateOnly(value), start, end)
}
