package dto

import (
	"bytes"
	"encoding/json"
)

type CreateAppointmentRequest struct {
	ClientID                 uint   `json:"client_id"`
	VehicleID                uint   `json:"vehicle_id"`
	ServiceID                *uint  `json:"service_id"`
	Date                     string `json:"date"`
	Time                     string `json:"time"`
	EstimatedDurationMinutes *int   `json:"estimated_duration_minutes"`
	AssignedTo               *uint  `json:"assigned_to"`
	Status                   string `json:"status"`
	Priority                 string `json:"priority"`
	Notes                    string `json:"notes" binding:"max=1000"`
}

type UpdateAppointmentRequest struct {
	ClientID                 *uint        `json:"client_id"`
	VehicleID                *uint        `json:"vehicle_id"`
	ServiceID                *uint        `json:"service_id"`
	Date                     *string      `json:"date"`
	Time                     *string      `json:"time"`
	EstimatedDurationMinutes *int         `json:"estimated_duration_minutes"`
	AssignedTo               OptionalUint `json:"assigned_to"`
	Status                   *string      `json:"status"`
	Priority                 *string      `json:"priority"`
	Notes                    *string      `json:"notes" binding:"omitempty,max=1000"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OptionalUint tells an absent field apart from an explicit null.
type OptionalUint struct {
	Set   bool
	Value *uint
}

func (o *OptionalUint) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v uint
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}
