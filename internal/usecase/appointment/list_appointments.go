package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/dto"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// ByDate lists the employee's appointments starting on date's calendar day.
func (uc *ListAppointments) ByDate(
	ctx context.Context,
	employeeID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start := domain.StartOfDay(date)
	end := start.AddDate(0, 0, 1).Add(-time.Microsecond)

	return uc.period(ctx, employeeID, start, end)
}

// ByMonth lists the employee's appointments of one calendar month in loc.
func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	employeeID uint,
	year int,
	month time.Month,
	loc *time.Location,
) ([]dto.AppointmentListDTO, error) {

	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Microsecond)

	return uc.period(ctx, employeeID, start, end)
}

func (uc *ListAppointments) period(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
) ([]dto.AppointmentListDTO, error) {

	if _, err := uc.repo.GetEmployee(ctx, employeeID); err != nil {
		return nil, notFoundAs(err, "employee_not_found", "employee %d does not exist", employeeID)
	}

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	return dto.FromAppointments(appointments), nil
}
