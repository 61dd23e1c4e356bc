package dto

import (
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/garage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/garage-scheduler/internal/models"
)

type AppointmentDTO struct {
	ID                       uuid.UUID  `json:"id"`
	ClientID                 uint       `json:"client_id"`
	VehicleID                uint       `json:"vehicle_id"`
	ServiceID                *uint      `json:"service_id"`
	Date                     string     `json:"date"`
	Time                     string     `json:"time"`
	EndTime                  string     `json:"end_time"`
	EstimatedDurationMinutes int        `json:"estimated_duration_minutes"`
	AssignedTo               *uint      `json:"assigned_to"`
	Status                   string     `json:"status"`
	Priority                 string     `json:"priority"`
	Notes                    string     `json:"notes"`
	ActualEndTime            *time.Time `json:"actual_end_time"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

func FromAppointment(ap *models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:                       ap.ID,
		ClientID:                 ap.ClientID,
		VehicleID:                ap.VehicleID,
		ServiceID:                ap.ServiceID,
		Date:                     ap.Date,
		Time:                     ap.Time,
		EndTime:                  domain.FormatClock(ap.EndMinute),
		EstimatedDurationMinutes: ap.EstimatedDurationMinutes,
		AssignedTo:               ap.AssignedTo,
		Status:                   ap.Status,
		Priority:                 ap.Priority,
		Notes:                    ap.Notes,
		ActualEndTime:            ap.ActualEndTime,
		CreatedAt:                ap.CreatedAt,
		UpdatedAt:                ap.UpdatedAt,
	}
}

// AppointmentListDTO is the agenda row of a day view.
type AppointmentListDTO struct {
	ID           uuid.UUID `json:"id"`
	Time         string    `json:"time"`
	EndTime      string    `json:"end_time"`
	AssignedTo   *uint     `json:"assigned_to"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	ClientName   string    `json:"client_name"`
	VehiclePlate string    `json:"vehicle_plate"`
	ServiceName  string    `json:"service_name,omitempty"`
}
