package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/garage-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/garage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/garage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/garage-scheduler/internal/lock"
	"github.com/BruksfildServices01/garage-scheduler/internal/models"
)

type CreateAppointmentInput struct {
	ActorID *uint

	ClientID                 uint
	VehicleID                uint
	ServiceID                *uint
	Date                     string
	Time                     string
	EstimatedDurationMinutes *int
	AssignedTo               *uint
	Status                   string
	Priority                 string
	Notes                    string
}

type CreateAppointment struct {
	repo      domain.Repository
	validator *BookingValidator
	guard     scheduleGuard
	audit     domain.EventLog
}

func NewCreateAppointment(
	repo domain.Repository,
	locker lock.Locker,
	audit domain.EventLog,
	policy Policy,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		validator: NewBookingValidator(repo, repo, repo, policy),
		guard:     newScheduleGuard(repo, locker),
		audit:     audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.validator.ValidateCreate(ctx, in)
	if err != nil {
		return nil, err
	}

	err = uc.guard.run(ctx, scheduleKey(ap), func(ctx context.Context, tx domain.AppointmentStore) error {
		if err := uc.validator.CheckConflict(ctx, tx, ap, uuid.Nil); err != nil {
			return err
		}
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			uc.audit.Record(conflictEvent(in.ActorID, nil, ap))
		}
		return nil, err
	}

	uc.audit.Record(audit.Event{
		UserID:   in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: scheduleMetadata(ap),
	})

	return ap, nil
}

func scheduleMetadata(ap *models.Appointment) map[string]any {
	return map[string]any{
		"date":        ap.Date,
		"time":        ap.Time,
		"duration":    ap.EstimatedDurationMinutes,
		"assigned_to": ap.AssignedTo,
		"status":      ap.Status,
	}
}

// conflictEvent records a rejected booking; id is nil for a create.
func conflictEvent(actor *uint, id *uuid.UUID, ap *models.Appointment) audit.Event {
	return audit.Event{
		UserID:   actor,
		Action:   "appointment_conflict",
		Entity:   "appointment",
		EntityID: id,
		Metadata: scheduleMetadata(ap),
	}
}
