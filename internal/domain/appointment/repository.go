package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/garage-scheduler/internal/audit"
	"github.com/BruksfildServices01/garage-scheduler/internal/models"
)

// ErrNotFound is returned by stores when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// -------- Collaborators (read-only) --------

type ClientStore interface {
	ClientExists(ctx context.Context, clientID uint) (bool, error)
}

type VehicleStore interface {
	// VehicleBelongsTo returns ErrNotFound when the vehicle does not exist.
	VehicleBelongsTo(ctx context.Context, vehicleID uint, clientID uint) (bool, error)
}

type ServiceCatalog interface {
	// ServiceDefaultDuration returns ErrNotFound for an unknown service.
	ServiceDefaultDuration(ctx context.Context, serviceID uint) (int, error)
}

type EventLog interface {
	Record(ev audit.Event)
}

// -------- Appointments --------

type AppointmentStore interface {
	GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error)

	// LockAppointment reads the row and holds it until the transaction ends.
	LockAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error)

	ListBlockingForDay(ctx context.Context, date string, res Resource) ([]models.Appointment, error)

	ListAppointmentsForDay(ctx context.Context, date string, assignedTo *uint) ([]models.Appointment, error)

	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, id uuid.UUID) error

	// LockSchedule serializes writers of one (date, resource) schedule until
	// the surrounding transaction ends.
	LockSchedule(ctx context.Context, date string, res Resource) error

	Transaction(ctx context.Context, fn func(tx AppointmentStore) error) error
}

// -------- Working hours --------

type WorkingHoursStore interface {
	// GetWorkingHours returns nil, nil when the weekday has no override.
	GetWorkingHours(ctx context.Context, weekday int) (*models.WorkingHours, error)
	ListWorkingHours(ctx context.Context) ([]models.WorkingHours, error)
	ReplaceWorkingHours(ctx context.Context, days []models.WorkingHours) error
}

type Repository interface {
	ClientStore
	VehicleStore
	ServiceCatalog
	AppointmentStore
	WorkingHoursStore
}
