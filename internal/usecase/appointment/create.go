package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientName     string
	ClientDocument string
	ClientPhone    string

	EmployeeID uint
	ServiceID  uint

	StartTime time.Time
	Status    string

	Principal string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	Deps
}

func NewCreateAppointment(d Deps) *CreateAppointment {
	return &CreateAppointment{Deps: d}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	ctx, span := tracer.Start(ctx, "appointment.create")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("employee.id", int64(in.EmployeeID)),
		attribute.Int64("service.id", int64(in.ServiceID)),
	)

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	if in.StartTime.IsZero() {
		return nil, httperr.ErrValidation("start_time_required", "start time is required")
	}

	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientDocument = strings.TrimSpace(in.ClientDocument)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	if in.ClientName == "" || in.ClientDocument == "" || in.ClientPhone == "" {
		return nil, httperr.ErrValidation("client_fields_required", "client name, document and phone are required")
	}

	status, err := domain.InitialStatus(in.Status)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Employee / service
	// --------------------------------------------------
	emp, err := uc.loadEmployee(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	svc, err := uc.loadService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc.DurationMinutes <= 0 {
		return nil, httperr.ErrValidation("invalid_duration", "service %d has no positive duration", svc.ID)
	}

	// --------------------------------------------------
	// 3. Window
	// --------------------------------------------------
	start := in.StartTime
	end := start.Add(time.Duration(svc.DurationMinutes) * time.Minute)

	// --------------------------------------------------
	// 4. Conflict
	// --------------------------------------------------
	busy, err := uc.Conflicts.HasConflict(ctx, emp.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("checking conflicts: %w", err)
	}
	if busy {
		uc.Metrics.BookingRejected.WithLabelValues("time_conflict").Inc()
		return nil, httperr.ErrConflict("time_conflict",
			"employee %d already has an appointment between %s and %s",
			emp.ID, start.Format("15:04"), end.Format("15:04"))
	}

	// --------------------------------------------------
	// 5. Working hours
	// --------------------------------------------------
	covered, err := uc.Calendar.Covers(ctx, emp.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("checking working hours: %w", err)
	}
	if !covered {
		uc.Metrics.BookingRejected.WithLabelValues("outside_working_hours").Inc()
		return nil, httperr.ErrValidation("outside_working_hours",
			"%s-%s is outside the working hours of employee %d",
			start.Format("15:04"), end.Format("15:04"), emp.ID)
	}

	// --------------------------------------------------
	// 6. Persist
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientName:     in.ClientName,
		ClientDocument: in.ClientDocument,
		ClientPhone:    in.ClientPhone,
		EmployeeID:     emp.ID,
		ServiceID:      svc.ID,
		StartTime:      start,
		EndTime:        end,
		Status:         string(status),
		TotalCost:      svc.Cost,
		ReminderSent:   false,
	}

	if err := uc.Repo.CreateAppointment(ctx, ap); err != nil {
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	ap.Employee = emp
	ap.Service = svc

	// --------------------------------------------------
	// 7. Side effects
	// --------------------------------------------------
	uc.invalidate(ctx, emp.ID)
	uc.Metrics.AppointmentsCreated.WithLabelValues(ap.Status).Inc()
	uc.record(in.Principal, "appointment_created", ap, map[string]any{
		"employee_id": emp.ID,
		"service_id":  svc.ID,
		"start_time":  start,
	})
	uc.Log.Info("appointment created",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("employee_id", emp.ID),
		zap.Time("start_time", start),
	)

	return ap, nil
}
