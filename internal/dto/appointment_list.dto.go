package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

type AppointmentListDTO struct {
	ID           uint            `json:"id"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	Status       string          `json:"status"`
	ClientName   string          `json:"client_name"`
	EmployeeID   uint            `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	ServiceID    uint            `json:"service_id"`
	ServiceName  string          `json:"service_name"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	ReminderSent bool            `json:"reminder_sent"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:           ap.ID,
		StartTime:    ap.StartTime,
		EndTime:      ap.EndTime,
		Status:       ap.Status,
		ClientName:   ap.ClientName,
		EmployeeID:   ap.EmployeeID,
		ServiceID:    ap.ServiceID,
		TotalCost:    ap.TotalCost,
		ReminderSent: ap.ReminderSent,
	}
	if ap.Employee != nil {
		out.EmployeeName = ap.Employee.Name
	}
	if ap.Service != nil {
		out.ServiceName = ap.Service.Name
	}
	return out
}

func FromAppointments(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, FromAppointment(ap))
	}
	return out
}
