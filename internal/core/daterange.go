package core

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for dates (yyyy-MM-dd).
const DateLayout = "2006-01-02"

// Range names a date range computed relative to "today" at call time.
// Ranges are deliberately not memoized across calendar-day boundaries;
// callers pass time.Now() on every resolution.
type Range string

const (
	CurrentWeek  Range = "current_week"
	CurrentMonth Range = "current_month"
	LastWeek     Range = "last_week"
	LastMonth    Range = "last_month"
)

// DateRange is an inclusive date interval. StartDate <= EndDate always.
type DateRange struct {
	StartDate string
	EndDate   string
}

// ParseRange validates a range name.
func ParseRange(s string) (Range, error) {
	switch Range(s) {
	case CurrentWeek, CurrentMonth, LastWeek, LastMonth:
		return Range(s), nil
	}
	return "", fmt.Errorf("unknown date range %q", s)
}

// Resolve computes the inclusive date interval for the range relative to
// now. Weeks start on Sunday. An unknown range falls back to the current
// week.
func (r Range) Resolve(now time.Time) DateRange {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var start, end time.Time
	switch r {
	case CurrentMonth:
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		end = start.AddDate(0, 1, -1)
	case LastWeek:
		start = startOfWeek(today.AddDate(0, 0, -7))
		end = start.AddDate(0, 0, 6)
	case LastMonth:
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()).AddDate(0, -1, 0)
		end = start.AddDate(0, 1, -1)
	default:
		start = startOfWeek(today)
		end = start.AddDate(0, 0, 6)
	}

	return DateRange{
		StartDate: start.Format(DateLayout),
		EndDate:   end.Format(DateLayout),
	}
}

func startOfWeek(day time.Time) time.Time {
	return day.AddDate(0, 0, -int(day.Weekday()))
}
