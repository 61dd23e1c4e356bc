package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/garage-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/garage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/garage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/garage-scheduler/internal/lock"
	"github.com/BruksfildServices01/garage-scheduler/internal/models"
)

// UpdateAppointmentInput is a partial update: nil fields are left unchanged.
// AssignedTo is tri-state, AssignedToSet with a nil AssignedTo unassigns.
type UpdateAppointmentInput struct {
	ActorID *uint

	ClientID                 *uint
	VehicleID                *uint
	ServiceID                *uint
	Date                     *string
	Time                     *string
	EstimatedDurationMinutes *int
	AssignedTo               *uint
	AssignedToSet            bool
	Status                   *string
	Priority                 *string
	Notes                    *string
}

type UpdateAppointment struct {
	repo      domain.Repository
	validator *BookingValidator
	guard     scheduleGuard
	audit     domain.EventLog
}

func NewUpdateAppointment(
	repo domain.Repository,
	locker lock.Locker,
	audit domain.EventLog,
	policy Policy,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:      repo,
		validator: NewBookingValidator(repo, repo, repo, policy),
		guard:     newScheduleGuard(repo, locker),
		audit:     audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id uuid.UUID,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	current, err := loadAppointment(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}

	patch, err := uc.validator.ValidatePatch(ctx, current, in)
	if err != nil {
		return nil, err
	}

	// The merged view decides which schedule to lock; it is recomputed on
	// the locked row inside the transaction.
	preview, _, err := uc.validator.ApplyPatch(current, patch)
	if err != nil {
		return nil, err
	}

	var updated *models.Appointment

	err = uc.guard.run(ctx, scheduleKey(preview), func(ctx context.Context, tx domain.AppointmentStore) error {
		locked, err := tx.LockAppointment(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("appointment_not_found")
		}
		if err != nil {
			return err
		}

		next, recheck, err := uc.validator.ApplyPatch(locked, patch)
		if err != nil {
			return err
		}

		if recheck {
			if err := uc.validator.CheckConflict(ctx, tx, next, id); err != nil {
				return err
			}
		}

		if err := tx.UpdateAppointment(ctx, next); err != nil {
			return err
		}

		updated = next
		return nil
	})
	if err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			uc.audit.Record(conflictEvent(in.ActorID, &id, preview))
		}
		return nil, err
	}

	meta := scheduleMetadata(updated)
	meta["previous_date"] = current.Date
	meta["previous_time"] = current.Time

	uc.audit.Record(audit.Event{
		UserID:   in.ActorID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &updated.ID,
		Metadata: meta,
	})

	return updated, nil
}

func loadAppointment(ctx context.Context, repo domain.AppointmentStore, id uuid.UUID) (*models.Appointment, error) {
	ap, err := repo.GetAppointment(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	if err != nil {
		return nil, err
	}
	return ap, nil
}
