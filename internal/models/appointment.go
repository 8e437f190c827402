package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientName     string `gorm:"size:100;not null" json:"client_name"`
	ClientDocument string `gorm:"size:30;not null;index:idx_appointments_client" json:"client_document"`
	ClientPhone    string `gorm:"size:20;not null;index:idx_appointments_client" json:"client_phone"`

	EmployeeID uint      `gorm:"not null;index" json:"employee_id"`
	Employee   *Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"employee,omitempty"`

	ServiceID uint     `gorm:"not null" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status string `gorm:"size:20;not null;default:'scheduled';index" json:"status"`

	// TotalCost is copied from the service when booked and never follows later price changes.
	TotalCost decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_cost"`

	ReminderSent bool `gorm:"not null;default:false" json:"reminder_sent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
