package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

// ConflictDetector finds overlapping bookings of the same employee.
// Cancelled appointments only block their slot when includeCancelled is set.
type ConflictDetector struct {
	finder           domain.OverlapFinder
	includeCancelled bool
}

func NewConflictDetector(finder domain.OverlapFinder, includeCancelled bool) *ConflictDetector {
	return &ConflictDetector{finder: finder, includeCancelled: includeCancelled}
}

func (d *ConflictDetector) HasConflict(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
) (bool, error) {
	return d.HasConflictExcluding(ctx, employeeID, start, end, 0)
}

// HasConflictExcluding ignores the appointment with excludeID, used when
// moving an existing booking.
func (d *ConflictDetector) HasConflictExcluding(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) (bool, error) {

	apps, err := d.finder.ListOverlapping(ctx, employeeID, start, end, excludeID)
	if err != nil {
		return false, err
	}

	for _, ap := range apps {
		if d.blocks(ap) && domain.Overlaps(start, end, ap.StartTime, ap.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

// Busy loads every blocking appointment in [from,to) once so callers can test
// many candidate windows without a query each.
func (d *ConflictDetector) Busy(
	ctx context.Context,
	employeeID uint,
	from time.Time,
	to time.Time,
) (BusyWindows, error) {

	apps, err := d.finder.ListOverlapping(ctx, employeeID, from, to, 0)
	if err != nil {
		return nil, err
	}

	out := make(BusyWindows, 0, len(apps))
	for _, ap := range apps {
		if d.blocks(ap) {
			out = append(out, window{start: ap.StartTime, end: ap.EndTime})
		}
	}
	return out, nil
}

func (d *ConflictDetector) blocks(ap models.Appointment) bool {
	return d.includeCancelled || domain.Status(ap.Status) != domain.StatusCancelled
}

type window struct {
	start time.Time
	end   time.Time
}

type BusyWindows []window

func (b BusyWindows) Overlaps(start, end time.Time) bool {
	for _, w := range b {
		if domain.Overlaps(start, end, w.start, w.end) {
			return true
		}
	}
	return false
}
