package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name            string          `gorm:"size:100;not null" json:"name"`
	Description     string          `gorm:"size:500" json:"description"`
	DurationMinutes int             `gorm:"not null" json:"duration_minutes"`
	Cost            decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"cost"`
	Active          bool            `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
