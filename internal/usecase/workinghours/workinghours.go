package workinghours

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/agenda-citas/internal/audit"
	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

// Store is what working-hours management needs from persistence.
type Store interface {
	domain.IntervalStore
	GetEmployee(ctx context.Context, id uint) (*models.Employee, error)
}

type AddIntervalInput struct {
	EmployeeID uint
	Weekday    int
	StartTime  string
	EndTime    string
	Principal  string
}

// Manager adds, lists and soft-deletes working intervals. Every write drops the
// employee's cached availability.
type Manager struct {
	store Store
	cache domain.SlotCache
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewManager(store Store, cache domain.SlotCache, audit *audit.Dispatcher, log *zap.Logger) *Manager {
	if cache == nil {
		cache = domain.NoopSlotCache{}
	}
	return &Manager{store: store, cache: cache, audit: audit, log: log}
}

func (m *Manager) Add(ctx context.Context, in AddIntervalInput) (*models.WorkingInterval, error) {
	if err := domain.ValidateInterval(in.Weekday, in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	if err := m.requireEmployee(ctx, in.EmployeeID); err != nil {
		return nil, err
	}

	// ValidateInterval already proved both clocks parse.
	from, _ := domain.ParseClock(in.StartTime)
	to, _ := domain.ParseClock(in.EndTime)

	wi := &models.WorkingInterval{
		EmployeeID: in.EmployeeID,
		Weekday:    in.Weekday,
		StartTime:  formatClock(from),
		EndTime:    formatClock(to),
		Active:     true,
	}

	if err := m.store.SaveInterval(ctx, wi); err != nil {
		return nil, fmt.Errorf("saving working interval: %w", err)
	}

	m.changed(ctx, in.Principal, "working_interval_added", in.EmployeeID, &wi.ID)
	return wi, nil
}

func (m *Manager) List(ctx context.Context, employeeID uint) ([]models.WorkingInterval, error) {
	if err := m.requireEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	intervals, err := m.store.ListEmployeeIntervals(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("listing working intervals: %w", err)
	}
	return intervals, nil
}

// Remove soft-deletes one interval. Removing an inactive interval is a no-op.
func (m *Manager) Remove(ctx context.Context, intervalID uint, principal string) error {
	wi, err := m.store.GetInterval(ctx, intervalID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return httperr.ErrNotFound("working_interval_not_found", "working interval %d does not exist", intervalID)
		}
		return fmt.Errorf("loading working interval: %w", err)
	}

	if !wi.Active {
		return nil
	}

	wi.Active = false
	if err := m.store.SaveInterval(ctx, wi); err != nil {
		return fmt.Errorf("deactivating working interval: %w", err)
	}

	m.changed(ctx, principal, "working_interval_removed", wi.EmployeeID, &wi.ID)
	return nil
}

// Clear soft-deletes every active interval of the employee.
func (m *Manager) Clear(ctx context.Context, employeeID uint, principal string) (int64, error) {
	if err := m.requireEmployee(ctx, employeeID); err != nil {
		return 0, err
	}

	n, err := m.store.DeactivateIntervals(ctx, employeeID)
	if err != nil {
		return 0, fmt.Errorf("clearing working intervals: %w", err)
	}

	if n > 0 {
		m.changed(ctx, principal, "working_intervals_cleared", employeeID, nil)
	}
	return n, nil
}

func (m *Manager) requireEmployee(ctx context.Context, employeeID uint) error {
	if _, err := m.store.GetEmployee(ctx, employeeID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return httperr.ErrNotFound("employee_not_found", "employee %d does not exist", employeeID)
		}
		return fmt.Errorf("loading employee: %w", err)
	}
	return nil
}

func (m *Manager) changed(ctx context.Context, principal, action string, employeeID uint, intervalID *uint) {
	if err := m.cache.Invalidate(ctx, employeeID); err != nil {
		m.log.Warn("availability cache invalidation failed", zap.Uint("employee_id", employeeID), zap.Error(err))
	}

	if m.audit != nil {
		m.audit.Dispatch(audit.Event{
			Principal: principal,
			Action:    action,
			Entity:    "working_interval",
			EntityID:  intervalID,
			Metadata:  map[string]uint{"employee_id": employeeID},
		})
	}

	m.log.Info("working hours changed", zap.String("action", action), zap.Uint("employee_id", employeeID))
}
