package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrRecordNotFound)
	}
	return fmt.Errorf("loading %s %d: %w", entity, id, err)
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetEmployee(
	ctx context.Context,
	id uint,
) (*models.Employee, error) {

	var emp models.Employee
	if err := r.db.WithContext(ctx).First(&emp, id).Error; err != nil {
		return nil, notFound(err, "employee", id)
	}
	return &emp, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, notFound(err, "service", id)
	}
	return &svc, nil
}

// --------------------------------------------------
// Working intervals
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveIntervals(
	ctx context.Context,
	employeeID uint,
	weekday int,
) ([]models.WorkingInterval, error) {

	var intervals []models.WorkingInterval
	if err := r.db.WithContext(ctx).
		Where("employee_id = ? AND weekday = ? AND active = ?", employeeID, weekday, true).
		Order("start_time ASC").
		Find(&intervals).Error; err != nil {
		return nil, fmt.Errorf("listing working intervals: %w", err)
	}

	return intervals, nil
}

func (r *AppointmentGormRepository) ListEmployeeIntervals(
	ctx context.Context,
	employeeID uint,
) ([]models.WorkingInterval, error) {

	var intervals []models.WorkingInterval
	if err := r.db.WithContext(ctx).
		Where("employee_id = ? AND active = ?", employeeID, true).
		Order("weekday ASC").
		Order("start_time ASC").
		Find(&intervals).Error; err != nil {
		return nil, fmt.Errorf("listing working intervals: %w", err)
	}

	return intervals, nil
}

func (r *AppointmentGormRepository) GetInterval(
	ctx context.Context,
	id uint,
) (*models.WorkingInterval, error) {

	var wi models.WorkingInterval
	if err := r.db.WithContext(ctx).First(&wi, id).Error; err != nil {
		return nil, notFound(err, "working interval", id)
	}
	return &wi, nil
}

func (r *AppointmentGormRepository) SaveInterval(
	ctx context.Context,
	wi *models.WorkingInterval,
) error {
	return r.db.WithContext(ctx).Save(wi).Error
}

func (r *AppointmentGormRepository) DeactivateIntervals(
	ctx context.Context,
	employeeID uint,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.WorkingInterval{}).
		Where("employee_id = ? AND active = ?", employeeID, true).
		Update("active", false)
	if res.Error != nil {
		return 0, fmt.Errorf("deactivating working intervals: %w", res.Error)
	}

	return res.RowsAffected, nil
}

// --------------------------------------------------
// Appointment (conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListOverlapping(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Select("id", "employee_id", "start_time", "end_time", "status").
		Where(
			"employee_id = ? AND start_time < ? AND end_time > ?",
			employeeID,
			end,
			start,
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("listing overlapping appointments: %w", err)
	}

	return apps, nil
}

// --------------------------------------------------
// Appointment (create / state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, notFound(err, "appointment", id)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

// UpdateStatus writes only the status column, so a reminder flag set by the
// scanner since the row was read is never overwritten.
func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	id uint,
	status domain.Status,
) error {
	return r.updateColumns(ctx, id, map[string]any{"status": string(status)})
}

// UpdateWindow writes only start_time and end_time.
func (r *AppointmentGormRepository) UpdateWindow(
	ctx context.Context,
	id uint,
	start time.Time,
	end time.Time,
) error {
	return r.updateColumns(ctx, id, map[string]any{"start_time": start, "end_time": end})
}

func (r *AppointmentGormRepository) updateColumns(
	ctx context.Context,
	id uint,
	columns map[string]any,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(columns)
	if res.Error != nil {
		return fmt.Errorf("updating appointment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("appointment %d: %w", id, domain.ErrRecordNotFound)
	}

	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return fmt.Errorf("deleting appointment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("appointment %d: %w", id, domain.ErrRecordNotFound)
	}

	return nil
}

// --------------------------------------------------
// Appointment (listing)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Service").
		Where(
			"employee_id = ? AND start_time >= ? AND start_time <= ?",
			employeeID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListClientAppointments(
	ctx context.Context,
	document string,
	phone string,
	status domain.Status,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Service").
		Where(
			"client_document = ? AND client_phone = ? AND status = ?",
			document,
			phone,
			string(status),
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, fmt.Errorf("listing client appointments: %w", err)
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ExistsClientAppointment(
	ctx context.Context,
	document string,
	phone string,
	status domain.Status,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"client_document = ? AND client_phone = ? AND status = ?",
			document,
			phone,
			string(status),
		).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("counting client appointments: %w", err)
	}

	return count > 0, nil
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *AppointmentGormRepository) ListReminderCandidates(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where(
			"reminder_sent = ? AND status = ? AND start_time >= ? AND start_time <= ?",
			false,
			string(domain.StatusScheduled),
			from,
			to,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, fmt.Errorf("listing reminder candidates: %w", err)
	}

	return apps, nil
}

func (r *AppointmentGormRepository) MarkReminderSent(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("reminder_sent", true)
	if res.Error != nil {
		return fmt.Errorf("marking reminder for appointment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("appointment %d: %w", id, domain.ErrRecordNotFound)
	}

	return nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
