package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/BruksfildServices01/garage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/garage-scheduler/internal/models"
)

func TestCreateAppointment_Success(t *testing.T) {
	f := newFixture(t)

	ap := f.mustCreate(t, "09:00", 60, uintPtr(3))

	if ap.Status != "scheduled" || ap.Priority != "normal" {
		t.Fatalf("unexpected defaults: status=%s priority=%s", ap.Status, ap.Priority)
	}
	if ap.StartMinute != 540 || ap.EndMinute != 600 {
		t.Fatalf("unexpected interval [%d, %d)", ap.StartMinute, ap.EndMinute)
	}

	stored, err := f.repo.GetAppointment(context.Background(), ap.ID)
	if err != nil {
		t.Fatalf("appointment not persisted: %v", err)
	}
	if stored.Time != "09:00" {
		t.Fatalf("unexpected stored time %s", stored.Time)
	}

	if got := f.events.last().Action; got != "appointment_created" {
		t.Fatalf("expected appointment_created event, got %s", got)
	}
}

func TestCreateAppointment_ConflictSameMechanic(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, "09:00", 60, uintPtr(3))

	_, err := f.create.Execute(context.Background(), f.input("09:30", 60, uintPtr(3)))
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("expected time_conflict, got %v", err)
	}
	if httperr.KindOf(err) != httperr.KindConflict {
		t.Fatalf("expected conflict kind, got %s", httperr.KindOf(err))
	}
	if got := f.events.last().Action; got != "appointment_conflict" {
		t.Fatalf("expected appointment_conflict event, got %s", got)
	}
}

func TestCreateAppointment_BackToBackAllowed(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, "09:00", 60, uintPtr(3))
	f.mustCreate(t, "10:00", 60, uintPtr(3))
	f.mustCreate(t, "08:00", 60, uintPtr(3))
}

func TestCreateAppointment_OtherMechanicNoConflict(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, "09:00", 60, uintPtr(3))
	f.mustCreate(t, "09:00", 60, uintPtr(4))
}

func TestCreateAppointment_CancelledDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	first := f.mustCreate(t, "09:00", 60, uintPtr(3))

	if _, err := f.setStatus.Execute(context.Background(), nil, first.ID, "cancelled"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	f.mustCreate(t, "09:00", 60, uintPtr(3))
}

func TestCreateAppointment_UnassignedShared(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, "09:00", 60, nil)

	_, err := f.create.Execute(context.Background(), f.input("09:15", 30, nil))
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("expected time_conflict between unassigned appointments, got %v", err)
	}
}

func TestCreateAppointment_PastRejected(t *testing.T) {
	f := newFixture(t)

	in := f.input("09:59", 60, nil)
	in.Date = testNow.Format("2006-01-02")

	_, err := f.create.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "in_the_past") {
		t.Fatalf("expected in_the_past, got %v", err)
	}

	in.Time = "10:00"
	if _, err := f.create.Execute(context.Background(), in); !httperr.IsBusiness(err, "in_the_past") {
		t.Fatalf("start equal to now must be rejected, got %v", err)
	}

	in.Time = "10:01"
	if _, err := f.create.Execute(context.Background(), in); err != nil {
		t.Fatalf("start one minute ahead should be accepted: %v", err)
	}
}

func TestCreateAppointment_DurationBounds(t *testing.T) {
	f := newFixture(t)

	for _, m := range []int{14, 481} {
		_, err := f.create.Execute(context.Background(), f.input("09:00", m, nil))
		if !httperr.IsBusiness(err, "out_of_range") {
			t.Errorf("%d minutes: expected out_of_range, got %v", m, err)
		}
	}

	f.mustCreate(t, "08:00", 15, uintPtr(1))
	f.mustCreate(t, "08:00", 480, uintPtr(2))
}

func TestCreateAppointment_CrossesMidnight(t *testing.T) {
	f := newFixture(t)

	_, err := f.create.Execute(context.Background(), f.input("23:30", 60, nil))
	if !httperr.IsBusiness(err, "crosses_midnight") {
		t.Fatalf("expected crosses_midnight, got %v", err)
	}
}

func TestCreateAppointment_ReferentialChecks(t *testing.T) {
	f := newFixture(t)

	in := f.input("09:00", 60, nil)
	in.ClientID = 999
	if _, err := f.create.Execute(context.Background(), in); !httperr.IsBusiness(err, "client_not_found") {
		t.Fatalf("expected client_not_found, got %v", err)
	}

	in = f.input("09:00", 60, nil)
	in.VehicleID = 999
	if _, err := f.create.Execute(context.Background(), in); !httperr.IsBusiness(err, "vehicle_not_found") {
		t.Fatalf("expected vehicle_not_found, got %v", err)
	}

	other := f.repo.AddClient(models.Client{Name: "Bruno"})

	in = f.input("09:00", 60, nil)
	in.ClientID = other.ID
	_, err := f.create.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "vehicle_not_owned") || httperr.KindOf(err) != httperr.KindValidation {
		t.Fatalf("expected vehicle_not_owned validation error, got %v", err)
	}
}

func TestCreateAppointment_FailFastOrder(t *testing.T) {
	f := newFixture(t)

	// Past date and unknown client: the earlier rule wins.
	in := f.input("09:00", 60, nil)
	in.Date = "2020-01-01"
	in.ClientID = 999
	if _, err := f.create.Execute(context.Background(), in); !httperr.IsBusiness(err, "in_the_past") {
		t.Fatalf("expected in_the_past first, got %v", err)
	}

	// Bad time format and bad duration: format is checked first.
	in = f.input("9am", 5, nil)
	if _, err := f.create.Execute(context.Background(), in); !httperr.IsBusiness(err, "invalid_format") {
		t.Fatalf("expected invalid_format first, got %v", err)
	}

	// Missing vehicle before anything else.
	in = f.input("bad", 60, nil)
	in.VehicleID = 0
	_, err := f.create.Execute(context.Background(), in)
	var be httperr.BusinessError
	if !errors.As(err, &be) || be.Code != "required" || be.Field != "vehicle_id" {
		t.Fatalf("expected vehicle_id required, got %v", err)
	}
}

func TestCreateAppointment_DurationFromService(t *testing.T) {
	f := newFixture(t)

	in := f.input("09:00", 0, nil)
	in.EstimatedDurationMinutes = nil
	in.ServiceID = &f.service.ID

	ap, err := f.create.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ap.EstimatedDurationMinutes != 90 {
		t.Fatalf("expected service duration 90, got %d", ap.EstimatedDurationMinutes)
	}

	in.Time = "14:00"
	in.ServiceID = nil
	ap, err = f.create.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ap.EstimatedDurationMinutes != 60 {
		t.Fatalf("expected default duration 60, got %d", ap.EstimatedDurationMinutes)
	}

	in.Time = "16:00"
	in.ServiceID = uintPtr(999)
	if _, err := f.create.Execute(context.Background(), in); !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("expected service_not_found, got %v", err)
	}
}

func TestCreateAppointment_ExplicitDurationStillChecksService(t *testing.T) {
	f := newFixture(t)

	in := f.input("09:00", 60, nil)
	in.ServiceID = uintPtr(999)
	ap, err := f.create.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("expected service_not_found, got ap=%v err=%v", ap, err)
	}

	in = f.input("09:00", 45, nil)
	in.ServiceID = &f.service.ID
	ap, err = f.create.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ap.EstimatedDurationMinutes != 45 {
		t.Fatalf("explicit duration must win over the service's 90, got %d", ap.EstimatedDurationMinutes)
	}
}

func TestCreateAppointment_InvalidStatus(t *testing.T) {
	f := newFixture(t)

	in := f.input("09:00", 60, nil)
	in.Status = "done"
	if _, err := f.create.Execute(context.Background(), in); !httperr.IsBusiness(err, "invalid_value") {
		t.Fatalf("expected invalid_value, got %v", err)
	}

	in.Status = "cancelled"
	ap, err := f.create.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("create with explicit status failed: %v", err)
	}
	if ap.Status != "cancelled" {
		t.Fatalf("expected cancelled, got %s", ap.Status)
	}
}
