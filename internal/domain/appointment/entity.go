package appointment

import (
	"time"

	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// SetStatus overwrites the status. There is no transition table; the caller
// decides which moves make sense.
func SetStatus(ap *models.Appointment, next Status) {
	ap.Status = string(next)
}

// SetStart moves the appointment and recomputes its end from the service
// duration. ReminderSent is left alone; it only ever goes false to true.
func SetStart(ap *models.Appointment, start time.Time, durationMinutes int) {
	ap.StartTime = start
	ap.EndTime = start.Add(time.Duration(durationMinutes) * time.Minute)
}

// OwnedBy reports whether the client identity matches the booking.
func OwnedBy(ap *models.Appointment, document, phone string) bool {
	return ap.ClientDocument == document && ap.ClientPhone == phone
}

// CancelByClient applies the self-service cancellation rules.
func CancelByClient(ap *models.Appointment, document, phone string) error {
	if !OwnedBy(ap, document, phone) {
		return httperr.ErrAuthorization("not_appointment_owner", "appointment %d does not belong to this client", ap.ID)
	}

	if err := CanClientCancel(Status(ap.Status)); err != nil {
		return err
	}

	SetStatus(ap, StatusCancelled)
	return nil
}
