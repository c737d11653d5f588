package formatter

import (
	"math"
	"strconv"
	"time"
)

// LongDateLayout renders dates as "Thursday, December 25, 2025".
const LongDateLayout = "Monday, January 2, 2006"

// InvalidDate is what LongDate renders for the zero time.
const InvalidDate = "Invalid Date"

// GreetingOffset is the hour offset applied to CurrentHour before choosing a
// greeting.
const GreetingOffset = 3

const (
	GoodMorning   = "Good Morning"
	GoodAfternoon = "Good Afternoon"
	GoodEvening   = "Good Evening"
)

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntil counts whole calendar days from now to target at UTC date
// granularity. Past dates are negative.
func DaysUntil(target, now time.Time) int {
	diff := dateOnly(target).Sub(dateOnly(now))
	return int(math.Ceil(diff.Hours() / 24))
}

// LongDate formats t in UTC with LongDateLayout.
func LongDate(t time.Time) string {
	if t.IsZero() {
		return InvalidDate
	}
	return t.UTC().Format(LongDateLayout)
}

// EpochSeconds renders now as Unix seconds.
func EpochSeconds(now time.Time) string {
	return strconv.FormatInt(now.Unix(), 10)
}

// LocalHour shifts a UTC hour by offset and wraps it into [0, 24).
func LocalHour(hour, offset int) int {
	return ((hour+offset)%24 + 24) % 24
}

// Greeting picks the greeting for a UTC hour shifted by offset: morning from
// 02:00, afternoon from 12:00, evening from 18:00.
func Greeting(hour, offset int) string {
	local := LocalHour(hour, offset)
	switch {
	case local >= 2 && local < 12:
		return GoodMorning
	case local >= 12 && local < 18:
		return GoodAfternoon
	default:
		return GoodEvening
	}
}

// IsBusinessHours reports whether the shifted hour lies in [start, end). The
// shift wraps like LocalHour.
func IsBusinessHours(hour, offset, start, end int) bool {
	local := LocalHour(hour, offset)
	return local >= start && local < end
}
