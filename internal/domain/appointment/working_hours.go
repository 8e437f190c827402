package appointment

import (
	"time"

	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

const clockLayout = "15:04"

// ISOWeekday numbers days 1 = Monday ... 7 = Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseClock turns "15:04" into the offset from midnight.
func ParseClock(hm string) (time.Duration, error) {
	t, err := time.Parse(clockLayout, hm)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// ClockOf is the offset of t from its own midnight.
func ClockOf(t time.Time) time.Duration {
	return t.Sub(StartOfDay(t))
}

// Overlaps reports whether [aStart,aEnd) and [bStart,bEnd) share any instant.
// Windows that only touch at a boundary do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !(!aEnd.After(bStart) || !aStart.Before(bEnd))
}

// IntervalBounds resolves the interval on the calendar day of date.
func IntervalBounds(wi models.WorkingInterval, date time.Time) (time.Time, time.Time, error) {
	from, err := ParseClock(wi.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := ParseClock(wi.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	day := StartOfDay(date)
	return day.Add(from), day.Add(to), nil
}

// IntervalContains tests the time-of-day containment of [start,end) in wi.
// A window that ends on a later calendar day is never contained.
func IntervalContains(wi models.WorkingInterval, start, end time.Time) bool {
	if !StartOfDay(start).Equal(StartOfDay(end)) {
		return false
	}

	from, err := ParseClock(wi.StartTime)
	if err != nil {
		return false
	}
	to, err := ParseClock(wi.EndTime)
	if err != nil {
		return false
	}

	return from <= ClockOf(start) && to >= ClockOf(end)
}

// ValidateInterval checks the weekday range and that the end follows the start.
func ValidateInterval(weekday int, startHM, endHM string) error {
	if weekday < 1 || weekday > 7 {
		return httperr.ErrValidation("invalid_weekday", "weekday must be between 1 and 7, got %d", weekday)
	}

	from, err := ParseClock(startHM)
	if err != nil {
		return httperr.ErrValidation("invalid_start_time", "start time %q must use HH:MM", startHM)
	}
	to, err := ParseClock(endHM)
	if err != nil {
		return httperr.ErrValidation("invalid_end_time", "end time %q must use HH:MM", endHM)
	}

	if to <= from {
		return httperr.ErrValidation("invalid_interval", "end time %s must be after start time %s", endHM, startHM)
	}
	return nil
}
