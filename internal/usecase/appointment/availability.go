package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
)

// AvailabilityCalculator enumerates bookable start times. Results are always
// computed fresh from the store.
type AvailabilityCalculator struct {
	calendar  *WorkingHoursCalendar
	conflicts *ConflictDetector

	step              time.Duration
	referenceDuration time.Duration
}

func NewAvailabilityCalculator(
	calendar *WorkingHoursCalendar,
	conflicts *ConflictDetector,
	step time.Duration,
	referenceDuration time.Duration,
) *AvailabilityCalculator {
	if step <= 0 {
		step = 30 * time.Minute
	}
	if referenceDuration <= 0 {
		referenceDuration = 30 * time.Minute
	}

	return &AvailabilityCalculator{
		calendar:          calendar,
		conflicts:         conflicts,
		step:              step,
		referenceDuration: referenceDuration,
	}
}

// AvailableSlots walks each active interval of date's weekday in fixed steps.
// A slot may end exactly at closing time. Overlapping intervals can yield the
// same start time twice; callers de-duplicate when they need to.
func (a *AvailabilityCalculator) AvailableSlots(
	ctx context.Context,
	employeeID uint,
	date time.Time,
	durationMinutes int,
) ([]time.Time, error) {

	if durationMinutes <= 0 {
		return nil, httperr.ErrValidation("invalid_duration", "service duration must be positive, got %d minutes", durationMinutes)
	}
	duration := time.Duration(durationMinutes) * time.Minute

	intervals, err := a.calendar.ActiveIntervalsFor(ctx, employeeID, domain.ISOWeekday(date))
	if err != nil {
		return nil, err
	}

	slots := []time.Time{}
	if len(intervals) == 0 {
		return slots, nil
	}

	dayStart := domain.StartOfDay(date)
	busy, err := a.conflicts.Busy(ctx, employeeID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	for _, wi := range intervals {
		opening, closing, err := domain.IntervalBounds(wi, date)
		if err != nil {
			continue
		}

		for cursor := opening; !cursor.Add(duration).After(closing); cursor = cursor.Add(a.step) {
			if busy.Overlaps(cursor, cursor.Add(duration)) {
				continue
			}
			slots = append(slots, cursor)
		}
	}

	return slots, nil
}

// HasAnyAvailability checks for at least one free slot of the reference duration.
func (a *AvailabilityCalculator) HasAnyAvailability(
	ctx context.Context,
	employeeID uint,
	date time.Time,
) (bool, error) {

	slots, err := a.AvailableSlots(ctx, employeeID, date, int(a.referenceDuration/time.Minute))
	if err != nil {
		return false, err
	}
	return len(slots) > 0, nil
}
