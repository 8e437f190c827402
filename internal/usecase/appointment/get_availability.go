package appointment

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
)

type GetAvailability struct {
	Deps
	calculator *AvailabilityCalculator
}

func NewGetAvailability(d Deps, calculator *AvailabilityCalculator) *GetAvailability {
	return &GetAvailability{Deps: d, calculator: calculator}
}

// Execute lists free windows for the service's duration on in.Date.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	ctx, span := tracer.Start(ctx, "appointment.availability")
	defer span.End()

	emp, err := uc.loadEmployee(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	svc, err := uc.loadService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	day := in.Date.Format("2006-01-02")
	span.SetAttributes(
		attribute.Int64("employee.id", int64(emp.ID)),
		attribute.String("date", day),
		attribute.Int("duration.minutes", svc.DurationMinutes),
	)

	cached, hit, err := uc.cache().Get(ctx, emp.ID, day, svc.DurationMinutes)
	switch {
	case err != nil:
		uc.Metrics.AvailabilityCache.WithLabelValues("error").Inc()
		uc.Log.Warn("availability cache read failed", zap.Error(err))
	case hit:
		uc.Metrics.AvailabilityCache.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		uc.Metrics.AvailabilityCache.WithLabelValues("miss").Inc()
	}

	starts, err := uc.calculator.AvailableSlots(ctx, emp.ID, in.Date, svc.DurationMinutes)
	if err != nil {
		return nil, err
	}

	slots := domain.ToTimeSlots(starts, time.Duration(svc.DurationMinutes)*time.Minute)
	uc.Metrics.SlotsComputed.Observe(float64(len(slots)))

	if err := uc.cache().Set(ctx, emp.ID, day, svc.DurationMinutes, slots); err != nil {
		uc.Log.Warn("availability cache write failed", zap.Error(err))
	}

	return slots, nil
}

// HasAny is the coarse "does this employee have anything free that day" check.
func (uc *GetAvailability) HasAny(
	ctx context.Context,
	employeeID uint,
	date time.Time,
) (bool, error) {

	if _, err := uc.loadEmployee(ctx, employeeID); err != nil {
		return false, err
	}
	return uc.calculator.HasAnyAvailability(ctx, employeeID, date)
}
