package appointment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/metrics"
	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

// memoryRepo is an in-memory domain.Repository for use case tests.
type memoryRepo struct {
	mu sync.Mutex

	employees    map[uint]models.Employee
	services     map[uint]models.Service
	intervals    map[uint]models.WorkingInterval
	appointments map[uint]models.Appointment

	nextID    uint
	createErr error
}

var errStoreDown = errors.New("store down")

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		employees:    map[uint]models.Employee{},
		services:     map[uint]models.Service{},
		intervals:    map[uint]models.WorkingInterval{},
		appointments: map[uint]models.Appointment{},
	}
}

func (r *memoryRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *memoryRepo) addEmployee(name string) models.Employee {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp := models.Employee{ID: r.id(), Name: name, Active: true}
	r.employees[emp.ID] = emp
	return emp
}

func (r *memoryRepo) addService(name string, minutes int) models.Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc := models.Service{ID: r.id(), Name: name, DurationMinutes: minutes, Active: true}
	r.services[svc.ID] = svc
	return svc
}

func (r *memoryRepo) addInterval(employeeID uint, weekday int, from, to string) models.WorkingInterval {
	r.mu.Lock()
	defer r.mu.Unlock()
	wi := models.WorkingInterval{ID: r.id(), EmployeeID: employeeID, Weekday: weekday, StartTime: from, EndTime: to, Active: true}
	r.intervals[wi.ID] = wi
	return wi
}

func (r *memoryRepo) addAppointment(employeeID, serviceID uint, start time.Time, minutes int, status domain.Status) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap := models.Appointment{
		ID:             r.id(),
		ClientName:     "Ana",
		ClientDocument: "1010",
		ClientPhone:    "3001234567",
		EmployeeID:     employeeID,
		ServiceID:      serviceID,
		StartTime:      start,
		EndTime:        start.Add(time.Duration(minutes) * time.Minute),
		Status:         string(status),
	}
	r.appointments[ap.ID] = ap
	return ap
}

func (r *memoryRepo) stored(id uint) (models.Appointment, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	return ap, ok
}

func (r *memoryRepo) GetEmployee(_ context.Context, id uint) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[id]
	if !ok {
		return nil, fmt.Errorf("employee %d: %w", id, domain.ErrRecordNotFound)
	}
	return &emp, nil
}

func (r *memoryRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc, ok := r.services[id]
	if !ok {
		return nil, fmt.Errorf("service %d: %w", id, domain.ErrRecordNotFound)
	}
	return &svc, nil
}

func (r *memoryRepo) ListActiveIntervals(_ context.Context, employeeID uint, weekday int) ([]models.WorkingInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.WorkingInterval
	for _, wi := range r.intervals {
		if wi.EmployeeID == employeeID && wi.Weekday == weekday && wi.Active {
			out = append(out, wi)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (r *memoryRepo) ListEmployeeIntervals(_ context.Context, employeeID uint) ([]models.WorkingInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.WorkingInterval
	for _, wi := range r.intervals {
		if wi.EmployeeID == employeeID && wi.Active {
			out = append(out, wi)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weekday != out[j].Weekday {
			return out[i].Weekday < out[j].Weekday
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (r *memoryRepo) GetInterval(_ context.Context, id uint) (*models.WorkingInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wi, ok := r.intervals[id]
	if !ok {
		return nil, fmt.Errorf("working interval %d: %w", id, domain.ErrRecordNotFound)
	}
	return &wi, nil
}

func (r *memoryRepo) SaveInterval(_ context.Context, wi *models.WorkingInterval) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if wi.ID == 0 {
		wi.ID = r.id()
	}
	r.intervals[wi.ID] = *wi
	return nil
}

func (r *memoryRepo) DeactivateIntervals(_ context.Context, employeeID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, wi := range r.intervals {
		if wi.EmployeeID == employeeID && wi.Active {
			wi.Active = false
			r.intervals[id] = wi
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) ListOverlapping(_ context.Context, employeeID uint, start, end time.Time, excludeID uint) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.EmployeeID != employeeID || ap.ID == excludeID {
			continue
		}
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *memoryRepo) withAssociations(ap models.Appointment) models.Appointment {
	if emp, ok := r.employees[ap.EmployeeID]; ok {
		ap.Employee = &emp
	}
	if svc, ok := r.services[ap.ServiceID]; ok {
		ap.Service = &svc
	}
	return ap
}

func (r *memoryRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, fmt.Errorf("appointment %d: %w", id, domain.ErrRecordNotFound)
	}
	ap = r.withAssociations(ap)
	return &ap, nil
}

func (r *memoryRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	ap.ID = r.id()
	stored := *ap
	stored.Employee, stored.Service = nil, nil
	r.appointments[ap.ID] = stored
	return nil
}

func (r *memoryRepo) UpdateStatus(_ context.Context, id uint, status domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appointments[id]
	if !ok {
		return fmt.Errorf("appointment %d: %w", id, domain.ErrRecordNotFound)
	}
	stored.Status = string(status)
	r.appointments[id] = stored
	return nil
}

func (r *memoryRepo) UpdateWindow(_ context.Context, id uint, start, end time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appointments[id]
	if !ok {
		return fmt.Errorf("appointment %d: %w", id, domain.ErrRecordNotFound)
	}
	stored.StartTime, stored.EndTime = start, end
	r.appointments[id] = stored
	return nil
}

func (r *memoryRepo) DeleteAppointment(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[id]; !ok {
		return fmt.Errorf("appointment %d: %w", id, domain.ErrRecordNotFound)
	}
	delete(r.appointments, id)
	return nil
}

func (r *memoryRepo) filter(keep func(models.Appointment) bool) []models.Appointment {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if keep(ap) {
			out = append(out, r.withAssociations(ap))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (r *memoryRepo) ListAppointmentsForPeriod(_ context.Context, employeeID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(ap models.Appointment) bool {
		return ap.EmployeeID == employeeID && !ap.StartTime.Before(start) && !ap.StartTime.After(end)
	}), nil
}

func (r *memoryRepo) ListClientAppointments(_ context.Context, document, phone string, status domain.Status) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(ap models.Appointment) bool {
		return ap.ClientDocument == document && ap.ClientPhone == phone && ap.Status == string(status)
	}), nil
}

func (r *memoryRepo) ExistsClientAppointment(ctx context.Context, document, phone string, status domain.Status) (bool, error) {
	apps, err := r.ListClientAppointments(ctx, document, phone, status)
	return len(apps) > 0, err
}

func (r *memoryRepo) ListReminderCandidates(_ context.Context, from, to time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(ap models.Appointment) bool {
		return !ap.ReminderSent && ap.Status == string(domain.StatusScheduled) &&
			!ap.StartTime.Before(from) && !ap.StartTime.After(to)
	}), nil
}

func (r *memoryRepo) MarkReminderSent(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return fmt.Errorf("appointment %d: %w", id, domain.ErrRecordNotFound)
	}
	ap.ReminderSent = true
	r.appointments[id] = ap
	return nil
}

var _ domain.Repository = (*memoryRepo)(nil)

// recordingCache counts invalidations and serves whatever was stored.
type recordingCache struct {
	mu          sync.Mutex
	entries     map[string][]domain.TimeSlot
	invalidated []uint
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: map[string][]domain.TimeSlot{}}
}

func cacheKey(employeeID uint, date string, minutes int) string {
	return fmt.Sprintf("%d|%s|%d", employeeID, date, minutes)
}

func (c *recordingCache) Get(_ context.Context, employeeID uint, date string, minutes int) ([]domain.TimeSlot, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	slots, ok := c.entries[cacheKey(employeeID, date, minutes)]
	return slots, ok, nil
}

func (c *recordingCache) Set(_ context.Context, employeeID uint, date string, minutes int, slots []domain.TimeSlot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(employeeID, date, minutes)] = slots
	return nil
}

func (c *recordingCache) Invalidate(_ context.Context, employeeID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, employeeID)
	for k := range c.entries {
		if strings.HasPrefix(k, fmt.Sprintf("%d|", employeeID)) {
			delete(c.entries, k)
		}
	}
	return nil
}

func newDeps(repo *memoryRepo, includeCancelled bool) Deps {
	return Deps{
		Repo:      repo,
		Calendar:  NewWorkingHoursCalendar(repo),
		Conflicts: NewConflictDetector(repo, includeCancelled),
		Cache:     newRecordingCache(),
		Metrics:   metrics.NewCollector("test"),
		Log:       zap.NewNop(),
	}
}

// monday returns a time on Monday 2026-10-19 (UTC).
func monday(hour, minute int) time.Time {
	return time.Date(2026, 10, 19, hour, minute, 0, 0, time.UTC)
}
