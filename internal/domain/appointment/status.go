package appointment

import "github.com/BruksfildServices01/agenda-citas/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusFulfilled Status = "fulfilled"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusFulfilled, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// ParseStatus accepts only the four lifecycle states.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", httperr.ErrValidation("invalid_status", "status %q is not one of scheduled, fulfilled, cancelled, no_show", raw)
	}
	return s, nil
}

// InitialStatus resolves the status of a new booking; empty means scheduled.
func InitialStatus(requested string) (Status, error) {
	if requested == "" {
		return StatusScheduled, nil
	}
	return ParseStatus(requested)
}

// CanClientCancel is the only state rule enforced by the lifecycle:
// clients may cancel exclusively while the booking is still scheduled.
func CanClientCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrConflict("invalid_state", "only scheduled appointments can be cancelled, current status is %q", current)
	}
	return nil
}
