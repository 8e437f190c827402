package appointment

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/agenda-citas/internal/audit"
	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
	"github.com/BruksfildServices01/agenda-citas/internal/metrics"
	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

var tracer = otel.Tracer("agenda-citas/usecase/appointment")

// Deps is shared by every appointment use case.
type Deps struct {
	Repo      domain.Repository
	Catalog   domain.CatalogReader
	Calendar  *WorkingHoursCalendar
	Conflicts *ConflictDetector
	Cache     domain.SlotCache
	Audit     *audit.Dispatcher
	Metrics   *metrics.Collector
	Log       *zap.Logger
}

func (d Deps) catalog() domain.CatalogReader {
	if d.Catalog != nil {
		return d.Catalog
	}
	return d.Repo
}

func (d Deps) cache() domain.SlotCache {
	if d.Cache != nil {
		return d.Cache
	}
	return domain.NoopSlotCache{}
}

// invalidate drops cached availability for the employee; failures only log.
func (d Deps) invalidate(ctx context.Context, employeeID uint) {
	if err := d.cache().Invalidate(ctx, employeeID); err != nil {
		d.Log.Warn("availability cache invalidation failed",
			zap.Uint("employee_id", employeeID),
			zap.Error(err),
		)
	}
}

func (d Deps) record(principal, action string, ap *models.Appointment, meta any) {
	if d.Audit == nil {
		return
	}
	d.Audit.Dispatch(audit.Event{
		Principal: principal,
		Action:    action,
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata:  meta,
	})
}

func (d Deps) loadAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	ap, err := d.Repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "appointment_not_found", "appointment %d does not exist", id)
	}
	return ap, nil
}

func (d Deps) loadEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	emp, err := d.catalog().GetEmployee(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "employee_not_found", "employee %d does not exist", id)
	}
	return emp, nil
}

func (d Deps) loadService(ctx context.Context, id uint) (*models.Service, error) {
	svc, err := d.catalog().GetService(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "service_not_found", "service %d does not exist", id)
	}
	return svc, nil
}

// notFoundAs turns a repository miss into a business error and wraps anything else.
func notFoundAs(err error, code, format string, args ...any) error {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return httperr.ErrNotFound(code, format, args...)
	}
	return fmt.Errorf("%s: %w", code, err)
}
