package appointment

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/garage-scheduler/internal/httperr"
)

func TestUpdateAppointment_NotesOnlyKeepsSlot(t *testing.T) {
	f := newFixture(t)
	ap := f.mustCreate(t, "09:00", 60, uintPtr(3))

	updated, err := f.update.Execute(context.Background(), ap.ID, UpdateAppointmentInput{
		Notes: strPtr("cliente traz peças"),
	})
	if err != nil {
		t.Fatalf("notes-only update must not conflict with itself: %v", err)
	}
	if updated.Notes != "cliente traz peças" || updated.Time != "09:00" {
		t.Fatalf("unexpected result %+v", updated)
	}
	if got := f.events.last().Action; got != "appointment_updated" {
		t.Fatalf("expected appointment_updated, got %s", got)
	}
}

func TestUpdateAppointment_ShiftWithinOwnSlot(t *testing.T) {
	f := newFixture(t)
	ap := f.mustCreate(t, "09:00", 60, uintPtr(3))

	updated, err := f.update.Execute(context.Background(), ap.ID, UpdateAppointmentInput{
		Time: strPtr("09:30"),
	})
	if err != nil {
		t.Fatalf("moving over its own old interval should succeed: %v", err)
	}
	if updated.StartMinute != 570 || updated.EndMinute != 630 {
		t.Fatalf("unexpected interval [%d, %d)", updated.StartMinute, updated.EndMinute)
	}
}

func TestUpdateAppointment_MoveIntoConflict(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, "09:00", 60, uintPtr(3))
	second := f.mustCreate(t, "11:00", 60, uintPtr(3))

	_, err := f.update.Execute(context.Background(), second.ID, UpdateAppointmentInput{
		Time: strPtr("09:30"),
	})
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("expected time_conflict, got %v", err)
	}

	stored, _ := f.repo.GetAppointment(context.Background(), second.ID)
	if stored.Time != "11:00" {
		t.Fatalf("rejected update must not be persisted, got %s", stored.Time)
	}
}

func TestUpdateAppointment_ReassignChecksNewMechanic(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, "09:00", 60, uintPtr(4))
	ap := f.mustCreate(t, "09:00", 60, uintPtr(3))

	_, err := f.update.Execute(context.Background(), ap.ID, UpdateAppointmentInput{
		AssignedTo:    uintPtr(4),
		AssignedToSet: true,
	})
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("expected time_conflict on the new mechanic, got %v", err)
	}

	updated, err := f.update.Execute(context.Background(), ap.ID, UpdateAppointmentInput{
		AssignedToSet: true,
	})
	if err != nil {
		t.Fatalf("unassigning should succeed: %v", err)
	}
	if updated.AssignedTo != nil {
		t.Fatalf("expected unassigned, got %v", *updated.AssignedTo)
	}
}

func TestUpdateAppointment_DurationGrowthConflicts(t *testing.T) {
	f := newFixture(t)
	ap := f.mustCreate(t, "09:00", 60, uintPtr(3))
	f.mustCreate(t, "10:00", 60, uintPtr(3))

	_, err := f.update.Execute(context.Background(), ap.ID, UpdateAppointmentInput{
		EstimatedDurationMinutes: intPtr(90),
	})
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("expected time_conflict, got %v", err)
	}
}

func TestUpdateAppointment_Validation(t *testing.T) {
	f := newFixture(t)
	ap := f.mustCreate(t, "09:00", 60, nil)

	cases := []struct {
		name string
		in   UpdateAppointmentInput
		code string
	}{
		{"bad date", UpdateAppointmentInput{Date: strPtr("10/05/2030")}, "invalid_format"},
		{"past", UpdateAppointmentInput{Date: strPtr("2020-01-01")}, "in_the_past"},
		{"duration", UpdateAppointmentInput{EstimatedDurationMinutes: intPtr(481)}, "out_of_range"},
		{"status", UpdateAppointmentInput{Status: strPtr("done")}, "invalid_value"},
		{"client", UpdateAppointmentInput{ClientID: uintPtr(999)}, "client_not_found"},
		{"vehicle", UpdateAppointmentInput{VehicleID: uintPtr(999)}, "vehicle_not_found"},
		{"service", UpdateAppointmentInput{ServiceID: uintPtr(999), EstimatedDurationMinutes: intPtr(60)}, "service_not_found"},
		{"midnight", UpdateAppointmentInput{Time: strPtr("23:30")}, "crosses_midnight"},
	}

	for _, tc := range cases {
		_, err := f.update.Execute(context.Background(), ap.ID, tc.in)
		if !httperr.IsBusiness(err, tc.code) {
			t.Errorf("%s: expected %s, got %v", tc.name, tc.code, err)
		}
	}
}

func TestUpdateAppointment_ServiceWithExplicitDuration(t *testing.T) {
	f := newFixture(t)
	ap := f.mustCreate(t, "09:00", 60, nil)

	updated, err := f.update.Execute(context.Background(), ap.ID, UpdateAppointmentInput{
		ServiceID:                &f.service.ID,
		EstimatedDurationMinutes: intPtr(30),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.EstimatedDurationMinutes != 30 {
		t.Fatalf("explicit duration must win over the service's 90, got %d", updated.EstimatedDurationMinutes)
	}
	if updated.ServiceID == nil || *updated.ServiceID != f.service.ID {
		t.Fatalf("expected service %d, got %v", f.service.ID, updated.ServiceID)
	}
}

func TestUpdateAppointment_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.update.Execute(context.Background(), [16]byte{1}, UpdateAppointmentInput{Notes: strPtr("x")})
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}
