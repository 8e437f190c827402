package appointment

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/dto"
	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

// ======================================================
// CLIENT SELF-SERVICE
// ======================================================

// ClientIdentity is how an unauthenticated client proves a booking is theirs.
type ClientIdentity struct {
	Document string
	Phone    string
}

func (id ClientIdentity) normalize() (ClientIdentity, error) {
	out := ClientIdentity{
		Document: strings.TrimSpace(id.Document),
		Phone:    strings.TrimSpace(id.Phone),
	}
	if out.Document == "" || out.Phone == "" {
		return out, httperr.ErrValidation("client_identity_required", "document and phone are required")
	}
	return out, nil
}

// Principal is the audit identity of a self-service caller.
func (id ClientIdentity) Principal() string {
	return "client:" + id.Document
}

type ClientAppointments struct {
	Deps
}

func NewClientAppointments(d Deps) *ClientAppointments {
	return &ClientAppointments{Deps: d}
}

// List returns only the client's scheduled appointments.
func (uc *ClientAppointments) List(
	ctx context.Context,
	identity ClientIdentity,
) ([]dto.AppointmentListDTO, error) {

	identity, err := identity.normalize()
	if err != nil {
		return nil, err
	}

	apps, err := uc.Repo.ListClientAppointments(ctx, identity.Document, identity.Phone, domain.StatusScheduled)
	if err != nil {
		return nil, fmt.Errorf("listing client appointments: %w", err)
	}

	return dto.FromAppointments(apps), nil
}

// Exists reports whether the client holds at least one scheduled appointment.
func (uc *ClientAppointments) Exists(
	ctx context.Context,
	identity ClientIdentity,
) (bool, error) {

	identity, err := identity.normalize()
	if err != nil {
		return false, err
	}

	ok, err := uc.Repo.ExistsClientAppointment(ctx, identity.Document, identity.Phone, domain.StatusScheduled)
	if err != nil {
		return false, fmt.Errorf("checking client appointments: %w", err)
	}
	return ok, nil
}

// Cancel lets the owner cancel a booking that is still scheduled.
func (uc *ClientAppointments) Cancel(
	ctx context.Context,
	appointmentID uint,
	identity ClientIdentity,
) (*models.Appointment, error) {

	identity, err := identity.normalize()
	if err != nil {
		return nil, err
	}

	ap, err := uc.loadAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.CancelByClient(ap, identity.Document, identity.Phone); err != nil {
		return nil, err
	}

	if err := uc.Repo.UpdateStatus(ctx, ap.ID, domain.StatusCancelled); err != nil {
		return nil, fmt.Errorf("updating appointment %d: %w", ap.ID, err)
	}

	uc.invalidate(ctx, ap.EmployeeID)
	uc.Metrics.StatusChanges.WithLabelValues(ap.Status, "client").Inc()
	uc.record(identity.Principal(), "appointment_cancelled", ap, nil)
	uc.Log.Info("appointment cancelled by client", zap.Uint("appointment_id", ap.ID))

	return ap, nil
}
