package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/garage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/garage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/garage-scheduler/internal/models"
)

// BookingValidator runs the create/update rules in a fixed order and stops at
// the first failure:
//
//  1. required fields
//  2. date and time formats
//  3. start strictly in the future
//  4. explicit duration in range
//  5. status and priority values
//  6. client exists
//  7. vehicle exists and belongs to the client
//  8. no overlapping blocking appointment for the resource (CheckConflict,
//     run inside the write transaction)
type BookingValidator struct {
	clients  domain.ClientStore
	vehicles domain.VehicleStore
	services domain.ServiceCatalog
	policy   Policy
}

func NewBookingValidator(
	clients domain.ClientStore,
	vehicles domain.VehicleStore,
	services domain.ServiceCatalog,
	policy Policy,
) *BookingValidator {
	return &BookingValidator{
		clients:  clients,
		vehicles: vehicles,
		services: services,
		policy:   policy,
	}
}

// ======================================================
// CREATE
// ======================================================

// ValidateCreate runs rules 1-7 and returns the appointment ready to persist.
func (v *BookingValidator) ValidateCreate(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.ClientID == 0 {
		return nil, httperr.ErrValidation("client_id", "required")
	}
	if in.VehicleID == 0 {
		return nil, httperr.ErrValidation("vehicle_id", "required")
	}
	if in.Date == "" {
		return nil, httperr.ErrValidation("date", "required")
	}
	if in.Time == "" {
		return nil, httperr.ErrValidation("time", "required")
	}

	if err := domain.CheckDate(in.Date); err != nil {
		return nil, err
	}
	if err := domain.CheckClock(in.Time); err != nil {
		return nil, err
	}

	if err := v.checkFuture(in.Date, in.Time); err != nil {
		return nil, err
	}

	if in.EstimatedDurationMinutes != nil {
		if err := domain.CheckDuration(*in.EstimatedDurationMinutes); err != nil {
			return nil, err
		}
	}

	status := domain.InitialStatus()
	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	priority := string(domain.PriorityNormal)
	if in.Priority != "" {
		if err := domain.CheckPriority(in.Priority); err != nil {
			return nil, err
		}
		priority = in.Priority
	}

	if err := v.checkClient(ctx, in.ClientID); err != nil {
		return nil, err
	}
	if err := v.checkVehicle(ctx, in.VehicleID, in.ClientID); err != nil {
		return nil, err
	}

	duration, err := v.resolveDuration(ctx, in.EstimatedDurationMinutes, in.ServiceID)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ID:         uuid.New(),
		ClientID:   in.ClientID,
		VehicleID:  in.VehicleID,
		ServiceID:  in.ServiceID,
		AssignedTo: in.AssignedTo,
		Priority:   priority,
		Notes:      in.Notes,
	}

	if err := domain.Schedule(ap, in.Date, in.Time, duration); err != nil {
		return nil, err
	}

	domain.SetStatus(ap, status, v.policy.now())

	return ap, nil
}

// ======================================================
// UPDATE
// ======================================================

// ValidatePatch runs rules 1-7 for the fields present in the patch against
// the current appointment. The returned patch has the duration resolved from
// the service catalog when only the service changed.
func (v *BookingValidator) ValidatePatch(
	ctx context.Context,
	current *models.Appointment,
	in UpdateAppointmentInput,
) (UpdateAppointmentInput, error) {

	if in.ClientID != nil && *in.ClientID == 0 {
		return in, httperr.ErrValidation("client_id", "required")
	}
	if in.VehicleID != nil && *in.VehicleID == 0 {
		return in, httperr.ErrValidation("vehicle_id", "required")
	}
	if in.Date != nil && *in.Date == "" {
		return in, httperr.ErrValidation("date", "required")
	}
	if in.Time != nil && *in.Time == "" {
		return in, httperr.ErrValidation("time", "required")
	}

	if in.Date != nil {
		if err := domain.CheckDate(*in.Date); err != nil {
			return in, err
		}
	}
	if in.Time != nil {
		if err := domain.CheckClock(*in.Time); err != nil {
			return in, err
		}
	}

	date, clock := current.Date, current.Time
	if in.Date != nil {
		date = *in.Date
	}
	if in.Time != nil {
		clock = *in.Time
	}
	if date != current.Date || clock != current.Time {
		if err := v.checkFuture(date, clock); err != nil {
			return in, err
		}
	}

	if in.EstimatedDurationMinutes != nil {
		if err := domain.CheckDuration(*in.EstimatedDurationMinutes); err != nil {
			return in, err
		}
	}

	if in.Status != nil {
		if err := domain.CheckStatus(*in.Status); err != nil {
			return in, err
		}
	}
	if in.Priority != nil {
		if err := domain.CheckPriority(*in.Priority); err != nil {
			return in, err
		}
	}

	clientID, vehicleID := current.ClientID, current.VehicleID
	if in.ClientID != nil {
		clientID = *in.ClientID
		if err := v.checkClient(ctx, clientID); err != nil {
			return in, err
		}
	}
	if in.VehicleID != nil {
		vehicleID = *in.VehicleID
	}
	if in.ClientID != nil || in.VehicleID != nil {
		if err := v.checkVehicle(ctx, vehicleID, clientID); err != nil {
			return in, err
		}
	}

	if in.ServiceID != nil {
		duration, err := v.resolveDuration(ctx, in.EstimatedDurationMinutes, in.ServiceID)
		if err != nil {
			return in, err
		}
		in.EstimatedDurationMinutes = &duration
	}

	return in, nil
}

// ApplyPatch merges a validated patch onto base and reports whether the
// result has to be checked for conflicts again.
func (v *BookingValidator) ApplyPatch(
	base *models.Appointment,
	in UpdateAppointmentInput,
) (*models.Appointment, bool, error) {

	next := *base

	if in.ClientID != nil {
		next.ClientID = *in.ClientID
	}
	if in.VehicleID != nil {
		next.VehicleID = *in.VehicleID
	}
	if in.ServiceID != nil {
		next.ServiceID = in.ServiceID
	}
	if in.AssignedToSet {
		next.AssignedTo = in.AssignedTo
	}
	if in.Priority != nil {
		next.Priority = *in.Priority
	}
	if in.Notes != nil {
		next.Notes = *in.Notes
	}

	date, clock, duration := base.Date, base.Time, base.EstimatedDurationMinutes
	if in.Date != nil {
		date = *in.Date
	}
	if in.Time != nil {
		clock = *in.Time
	}
	if in.EstimatedDurationMinutes != nil {
		duration = *in.EstimatedDurationMinutes
	}

	if err := domain.Schedule(&next, date, clock, duration); err != nil {
		return nil, false, err
	}

	if in.Status != nil {
		domain.SetStatus(&next, domain.Status(*in.Status), v.policy.now())
	}

	moved := next.Date != base.Date ||
		next.StartMinute != base.StartMinute ||
		next.EndMinute != base.EndMinute ||
		!domain.ResourceOf(base.AssignedTo).Matches(next.AssignedTo)

	recheck := domain.IsBlocking(domain.Status(next.Status)) &&
		(moved || domain.Reactivates(domain.Status(base.Status), domain.Status(next.Status)))

	return &next, recheck, nil
}

// ======================================================
// CONFLICT
// ======================================================

// CheckConflict is rule 8. It must run inside the transaction that writes ap,
// after which no other writer of the same schedule can interleave.
func (v *BookingValidator) CheckConflict(
	ctx context.Context,
	tx domain.AppointmentStore,
	ap *models.Appointment,
	exclude uuid.UUID,
) error {

	if !domain.IsBlocking(domain.Status(ap.Status)) {
		return nil
	}

	res := domain.ResourceOf(ap.AssignedTo)

	if err := tx.LockSchedule(ctx, ap.Date, res); err != nil {
		return fmt.Errorf("lock schedule: %w", err)
	}

	existing, err := tx.ListBlockingForDay(ctx, ap.Date, res)
	if err != nil {
		return fmt.Errorf("list blocking appointments: %w", err)
	}

	if v.policy.Checker.HasConflict(domain.IntervalOf(ap), res, exclude, existing) {
		return httperr.ErrConflict("time", "time_conflict")
	}

	return nil
}

// ======================================================
// HELPERS
// ======================================================

func (v *BookingValidator) checkFuture(date, clock string) error {
	start, err := domain.StartOf(date, clock, v.policy.location())
	if err != nil {
		return httperr.ErrValidation("date", "invalid_format")
	}
	if !start.After(v.policy.now()) {
		return httperr.ErrValidation("date", "in_the_past")
	}
	return nil
}

func (v *BookingValidator) checkClient(ctx context.Context, clientID uint) error {
	ok, err := v.clients.ClientExists(ctx, clientID)
	if err != nil {
		return fmt.Errorf("load client: %w", err)
	}
	if !ok {
		return httperr.ErrNotFound("client_not_found")
	}
	return nil
}

func (v *BookingValidator) checkVehicle(ctx context.Context, vehicleID, clientID uint) error {
	ok, err := v.vehicles.VehicleBelongsTo(ctx, vehicleID, clientID)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound("vehicle_not_found")
	}
	if err != nil {
		return fmt.Errorf("load vehicle: %w", err)
	}
	if !ok {
		return httperr.ErrValidation("vehicle_id", "vehicle_not_owned")
	}
	return nil
}

// resolveDuration: explicit value, else the service default, else the shop
// default. A referenced service must exist even when its duration is not
// used.
func (v *BookingValidator) resolveDuration(
	ctx context.Context,
	explicit *int,
	serviceID *uint,
) (int, error) {

	if serviceID == nil {
		if explicit != nil {
			return *explicit, nil
		}
		return v.policy.defaultDuration(), nil
	}

	d, err := v.services.ServiceDefaultDuration(ctx, *serviceID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, httperr.ErrNotFound("service_not_found")
	}
	if err != nil {
		return 0, fmt.Errorf("load service: %w", err)
	}

	if explicit != nil {
		return *explicit, nil
	}
	if d <= 0 {
		return v.policy.defaultDuration(), nil
	}
	if err := domain.CheckDuration(d); err != nil {
		return 0, err
	}
	return d, nil
}
