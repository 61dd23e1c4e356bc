package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/garage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/garage-scheduler/internal/httperr"
)

type AvailabilityStore interface {
	domain.AppointmentStore
	domain.WorkingHoursStore
}

type AvailabilityInput struct {
	Date            string
	DurationMinutes int
	AssignedTo      *uint
}

type WorkingHoursRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Availability struct {
	Date            string            `json:"date"`
	Slots           []string          `json:"slots"`
	DurationMinutes int               `json:"duration_minutes"`
	WorkingHours    WorkingHoursRange `json:"working_hours"`
	Closed          bool              `json:"closed,omitempty"`
}

type GetAvailability struct {
	repo   AvailabilityStore
	policy Policy
}

func NewGetAvailability(repo AvailabilityStore, policy Policy) *GetAvailability {
	return &GetAvailability{
		repo:   repo,
		policy: policy,
	}
}

// Execute lists the start times on date where an appointment of the given
// duration fits inside working hours without hitting a lunch break or a
// blocking appointment of the resource. Past times are not filtered.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*Availability, error) {

	if err := domain.CheckDate(in.Date); err != nil {
		return nil, err
	}

	// A duration longer than the working window just yields no slots.
	duration := in.DurationMinutes
	if duration < 0 {
		return nil, httperr.ErrValidation("duration", "out_of_range")
	}
	if duration == 0 {
		duration = uc.policy.defaultDuration()
	}

	day, err := time.Parse(domain.DateLayout, in.Date)
	if err != nil {
		return nil, httperr.ErrValidation("date", "invalid_format")
	}

	wh, err := uc.repo.GetWorkingHours(ctx, int(day.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("load working hours: %w", err)
	}

	plan := domain.ResolveDay(uc.policy.Window, wh)

	out := &Availability{
		Date:            in.Date,
		Slots:           []string{},
		DurationMinutes: duration,
		WorkingHours: WorkingHoursRange{
			Start: domain.FormatClock(plan.Window.Open),
			End:   domain.FormatClock(plan.Window.Close),
		},
		Closed: plan.Closed,
	}

	if plan.Closed {
		return out, nil
	}

	res := domain.ResourceOf(in.AssignedTo)

	existing, err := uc.repo.ListBlockingForDay(ctx, in.Date, res)
	if err != nil {
		return nil, fmt.Errorf("list blocking appointments: %w", err)
	}

	blocked := func(iv domain.Interval) bool {
		for _, b := range plan.Breaks {
			if iv.Overlaps(b) {
				return true
			}
		}
		return uc.policy.Checker.HasConflict(iv, res, uuid.Nil, existing)
	}

	for _, start := range domain.AvailableSlots(plan.Window, uc.policy.SlotStepMinutes, duration, blocked) {
		out.Slots = append(out.Slots, domain.FormatClock(start))
	}

	return out, nil
}
