package models

import "time"

// WorkingInterval is one bookable stretch of a weekday for an employee.
// Weekday follows ISO-8601 (1 = Monday ... 7 = Sunday); times are "15:04".
type WorkingInterval struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EmployeeID uint `gorm:"not null;index:idx_working_intervals_lookup" json:"employee_id"`

	Weekday int `gorm:"not null;index:idx_working_intervals_lookup" json:"weekday"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	Active    bool   `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
