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

type SetStatus struct {
	repo      domain.Repository
	validator *BookingValidator
	guard     scheduleGuard
	audit     domain.EventLog
	policy    Policy
}

func NewSetStatus(
	repo domain.Repository,
	locker lock.Locker,
	audit domain.EventLog,
	policy Policy,
) *SetStatus {
	return &SetStatus{
		repo:      repo,
		validator: NewBookingValidator(repo, repo, repo, policy),
		guard:     newScheduleGuard(repo, locker),
		audit:     audit,
		policy:    policy,
	}
}

// Execute moves the appointment to status. Any status may follow any other;
// moving back into a blocking status from cancelled/completed/no_show has to
// find its slot still free.
func (uc *SetStatus) Execute(
	ctx context.Context,
	actorID *uint,
	id uuid.UUID,
	status string,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	current, err := loadAppointment(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}

	key := ""
	if domain.Reactivates(domain.Status(current.Status), to) {
		key = scheduleKey(current)
	}

	var (
		from    domain.Status
		updated *models.Appointment
	)

	err = uc.guard.run(ctx, key, func(ctx context.Context, tx domain.AppointmentStore) error {
		ap, err := tx.LockAppointment(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("appointment_not_found")
		}
		if err != nil {
			return err
		}

		from = domain.Status(ap.Status)

		if domain.Reactivates(from, to) {
			next := *ap
			next.Status = string(to)
			if err := uc.validator.CheckConflict(ctx, tx, &next, ap.ID); err != nil {
				return err
			}
		}

		domain.SetStatus(ap, to, uc.policy.now())

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		updated = ap
		return nil
	})
	if err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			uc.audit.Record(conflictEvent(actorID, &id, current))
		}
		return nil, err
	}

	uc.audit.Record(audit.Event{
		UserID:   actorID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &updated.ID,
		Metadata: map[string]any{
			"from": string(from),
			"to":   string(to),
		},
	})

	return updated, nil
}
