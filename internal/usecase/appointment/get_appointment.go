package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/garage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/garage-scheduler/internal/models"
)

type GetAppointment struct {
	repo domain.AppointmentStore
}

func NewGetAppointment(repo domain.AppointmentStore) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return loadAppointment(ctx, uc.repo, id)
}
