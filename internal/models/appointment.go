package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID  uint     `gorm:"not null;index" json:"client_id"`
	Client    Client   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	VehicleID uint     `gorm:"not null" json:"vehicle_id"`
	Vehicle   Vehicle  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Shop-local wall clock, YYYY-MM-DD and HH:MM.
	Date string `gorm:"size:10;not null;index:idx_appointments_schedule,priority:1" json:"date"`
	Time string `gorm:"size:5;not null" json:"time"`

	EstimatedDurationMinutes int `gorm:"not null;default:60" json:"estimated_duration_minutes"`

	// Minutes since midnight of Date; [StartMinute, EndMinute).
	StartMinute int `gorm:"not null" json:"-"`
	EndMinute   int `gorm:"not null" json:"-"`

	AssignedTo *uint `gorm:"index:idx_appointments_schedule,priority:2" json:"assigned_to"`

	Status   string `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	Priority string `gorm:"size:10;not null;default:'normal'" json:"priority"`
	Notes    string `gorm:"size:1000" json:"notes"`

	ActualEndTime *time.Time `json:"actual_end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
