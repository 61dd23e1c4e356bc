package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/garage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/garage-scheduler/internal/dto"
)

type ListAppointmentsByDate struct {
	repo domain.AppointmentStore
}

func NewListAppointmentsByDate(
	repo domain.AppointmentStore,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute returns every appointment of date, optionally narrowed to one
// mechanic, ordered by start time.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date string,
	assignedTo *uint,
) ([]dto.AppointmentListDTO, error) {

	if err := domain.CheckDate(date); err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForDay(ctx, date, assignedTo)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		row := dto.AppointmentListDTO{
			ID:           ap.ID,
			Time:         ap.Time,
			EndTime:      domain.FormatClock(ap.EndMinute),
			AssignedTo:   ap.AssignedTo,
			Status:       ap.Status,
			Priority:     ap.Priority,
			ClientName:   ap.Client.Name,
			VehiclePlate: ap.Vehicle.Plate,
		}
		if ap.Service != nil {
			row.ServiceName = ap.Service.Name
		}
		out = append(out, row)
	}

	return out, nil
}
