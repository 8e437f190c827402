package appointment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

type SetStatus struct {
	Deps
}

func NewSetStatus(d Deps) *SetStatus {
	return &SetStatus{Deps: d}
}

// Execute overwrites the status with any member of the closed set. No
// transition table applies.
func (uc *SetStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	rawStatus string,
	principal string,
) (*models.Appointment, error) {

	ap, err := uc.loadAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	next, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	previous := ap.Status
	domain.SetStatus(ap, next)

	if err := uc.Repo.UpdateStatus(ctx, ap.ID, next); err != nil {
		return nil, fmt.Errorf("updating appointment %d: %w", ap.ID, err)
	}

	if previous != ap.Status {
		uc.invalidate(ctx, ap.EmployeeID)
	}
	uc.Metrics.StatusChanges.WithLabelValues(ap.Status, "staff").Inc()
	uc.record(principal, "appointment_status_changed", ap, map[string]string{
		"from": previous,
		"to":   ap.Status,
	})
	uc.Log.Info("appointment status changed",
		zap.Uint("appointment_id", ap.ID),
		zap.String("from", previous),
		zap.String("to", ap.Status),
	)

	return ap, nil
}
