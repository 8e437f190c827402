package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

// Reschedule moves an appointment to a new start. The end is recomputed from
// the associated service and the new window goes through the same conflict and
// working-hours checks as a new booking, ignoring the appointment itself.
type Reschedule struct {
	Deps
}

func NewReschedule(d Deps) *Reschedule {
	return &Reschedule{Deps: d}
}

func (uc *Reschedule) Execute(
	ctx context.Context,
	appointmentID uint,
	start time.Time,
	principal string,
) (*models.Appointment, error) {

	if start.IsZero() {
		return nil, httperr.ErrValidation("start_time_required", "start time is required")
	}

	ap, err := uc.loadAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if domain.Status(ap.Status) != domain.StatusScheduled {
		return nil, httperr.ErrConflict("invalid_state", "only scheduled appointments can be moved, current status is %q", ap.Status)
	}

	svc := ap.Service
	if svc == nil {
		if svc, err = uc.loadService(ctx, ap.ServiceID); err != nil {
			return nil, err
		}
	}

	previous := ap.StartTime
	domain.SetStart(ap, start, svc.DurationMinutes)

	busy, err := uc.Conflicts.HasConflictExcluding(ctx, ap.EmployeeID, ap.StartTime, ap.EndTime, ap.ID)
	if err != nil {
		return nil, fmt.Errorf("checking conflicts: %w", err)
	}
	if busy {
		uc.Metrics.BookingRejected.WithLabelValues("time_conflict").Inc()
		return nil, httperr.ErrConflict("time_conflict", "employee %d is already booked at %s", ap.EmployeeID, start.Format("2006-01-02 15:04"))
	}

	covered, err := uc.Calendar.Covers(ctx, ap.EmployeeID, ap.StartTime, ap.EndTime)
	if err != nil {
		return nil, fmt.Errorf("checking working hours: %w", err)
	}
	if !covered {
		uc.Metrics.BookingRejected.WithLabelValues("outside_working_hours").Inc()
		return nil, httperr.ErrValidation("outside_working_hours", "%s is outside the working hours of employee %d", start.Format("2006-01-02 15:04"), ap.EmployeeID)
	}

	if err := uc.Repo.UpdateWindow(ctx, ap.ID, ap.StartTime, ap.EndTime); err != nil {
		return nil, fmt.Errorf("updating appointment %d: %w", ap.ID, err)
	}

	uc.invalidate(ctx, ap.EmployeeID)
	uc.record(principal, "appointment_rescheduled", ap, map[string]time.Time{
		"from": previous,
		"to":   ap.StartTime,
	})

	return ap, nil
}
