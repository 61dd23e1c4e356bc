package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/garage-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/garage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/garage-scheduler/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.AppointmentStore
	audit domain.EventLog
}

func NewDeleteAppointment(
	repo domain.AppointmentStore,
	audit domain.EventLog,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	actorID *uint,
	id uuid.UUID,
) error {

	var removed domain.Status

	err := uc.repo.Transaction(ctx, func(tx domain.AppointmentStore) error {
		ap, err := tx.LockAppointment(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("appointment_not_found")
		}
		if err != nil {
			return err
		}

		removed = domain.Status(ap.Status)
		if err := domain.CanDelete(removed); err != nil {
			return err
		}

		return tx.DeleteAppointment(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.audit.Record(audit.Event{
		UserID:   actorID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &id,
		Metadata: map[string]any{
			"status": string(removed),
		},
	})

	return nil
}
