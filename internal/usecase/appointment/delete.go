package appointment

import (
	"context"

	"go.uber.org/zap"
)

// DeleteAppointment is an administrative hard delete, allowed in any status.
type DeleteAppointment struct {
	Deps
}

func NewDeleteAppointment(d Deps) *DeleteAppointment {
	return &DeleteAppointment{Deps: d}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	principal string,
) error {

	ap, err := uc.loadAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	if err := uc.Repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return notFoundAs(err, "appointment_not_found", "appointment %d does not exist", ap.ID)
	}

	uc.invalidate(ctx, ap.EmployeeID)
	uc.record(principal, "appointment_deleted", ap, map[string]string{"status": ap.Status})
	uc.Log.Info("appointment deleted", zap.Uint("appointment_id", ap.ID))

	return nil
}
