package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

// -------- Catalog (read-only inputs) --------

type CatalogReader interface {
	GetEmployee(ctx context.Context, id uint) (*models.Employee, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
}

// -------- Working hours --------

type IntervalReader interface {
	// ListActiveIntervals returns active intervals ordered by start time.
	ListActiveIntervals(ctx context.Context, employeeID uint, weekday int) ([]models.WorkingInterval, error)
}

type IntervalStore interface {
	IntervalReader

	ListEmployeeIntervals(ctx context.Context, employeeID uint) ([]models.WorkingInterval, error)
	GetInterval(ctx context.Context, id uint) (*models.WorkingInterval, error)
	SaveInterval(ctx context.Context, wi *models.WorkingInterval) error
	DeactivateIntervals(ctx context.Context, employeeID uint) (int64, error)
}

// -------- Conflicts --------

type OverlapFinder interface {
	// ListOverlapping returns every appointment of the employee whose window
	// overlaps [start,end), regardless of status. excludeID skips one row.
	ListOverlapping(ctx context.Context, employeeID uint, start, end time.Time, excludeID uint) ([]models.Appointment, error)
}

// -------- Appointments --------

type Repository interface {
	CatalogReader
	IntervalStore
	OverlapFinder

	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	// UpdateStatus and UpdateWindow touch only their own columns; the
	// reminder flag is written by MarkReminderSent alone.
	UpdateStatus(ctx context.Context, id uint, status Status) error
	UpdateWindow(ctx context.Context, id uint, start, end time.Time) error
	DeleteAppointment(ctx context.Context, id uint) error

	// ListAppointmentsForPeriod returns appointments starting in [start,end].
	ListAppointmentsForPeriod(ctx context.Context, employeeID uint, start, end time.Time) ([]models.Appointment, error)

	ListClientAppointments(ctx context.Context, document, phone string, status Status) ([]models.Appointment, error)
	ExistsClientAppointment(ctx context.Context, document, phone string, status Status) (bool, error)

	// ListReminderCandidates returns scheduled appointments not yet reminded
	// whose start falls in [from,to].
	ListReminderCandidates(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	MarkReminderSent(ctx context.Context, id uint) error
}

// -------- Availability cache --------

// SlotCache stores computed availability per employee. Implementations must
// treat every error as a miss; the store stays the source of truth.
type SlotCache interface {
	Get(ctx context.Context, employeeID uint, date string, durationMinutes int) ([]TimeSlot, bool, error)
	Set(ctx context.Context, employeeID uint, date string, durationMinutes int, slots []TimeSlot) error
	Invalidate(ctx context.Context, employeeID uint) error
}

// NoopSlotCache never hits.
type NoopSlotCache struct{}

func (NoopSlotCache) Get(context.Context, uint, string, int) ([]TimeSlot, bool, error) {
	return nil, false, nil
}

func (NoopSlotCache) Set(context.Context, uint, string, int, []TimeSlot) error { return nil }

func (NoopSlotCache) Invalidate(context.Context, uint) error { return nil }
