package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

// WorkingHoursCalendar answers working-hours questions from active intervals only.
type WorkingHoursCalendar struct {
	intervals domain.IntervalReader
}

func NewWorkingHoursCalendar(intervals domain.IntervalReader) *WorkingHoursCalendar {
	return &WorkingHoursCalendar{intervals: intervals}
}

// ActiveIntervalsFor returns the employee's active intervals for an ISO weekday,
// ordered by start time.
func (c *WorkingHoursCalendar) ActiveIntervalsFor(
	ctx context.Context,
	employeeID uint,
	weekday int,
) ([]models.WorkingInterval, error) {
	return c.intervals.ListActiveIntervals(ctx, employeeID, weekday)
}

func (c *WorkingHoursCalendar) WorksOn(
	ctx context.Context,
	employeeID uint,
	weekday int,
) (bool, error) {

	intervals, err := c.ActiveIntervalsFor(ctx, employeeID, weekday)
	if err != nil {
		return false, err
	}
	return len(intervals) > 0, nil
}

// Covers reports whether [start,end) fits inside a single active interval of
// start's weekday.
func (c *WorkingHoursCalendar) Covers(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	intervals, err := c.ActiveIntervalsFor(ctx, employeeID, domain.ISOWeekday(start))
	if err != nil {
		return false, err
	}

	for _, wi := range intervals {
		if domain.IntervalContains(wi, start, end) {
			return true, nil
		}
	}
	return false, nil
}
