package appointment

import (
	"context"
	"slices"
	"testing"

	"github.com/BruksfildServices01/garage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/garage-scheduler/internal/models"
)

func TestGetAvailability_EmptyDay(t *testing.T) {
	f := newFixture(t)

	out, err := f.slots.Execute(context.Background(), AvailabilityInput{Date: testDate, DurationMinutes: 60})
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if len(out.Slots) != 19 || out.Slots[0] != "08:00" || out.Slots[18] != "17:00" {
		t.Fatalf("unexpected slots %v", out.Slots)
	}
	if out.WorkingHours.Start != "08:00" || out.WorkingHours.End != "18:00" {
		t.Fatalf("unexpected working hours %+v", out.WorkingHours)
	}
}

func TestGetAvailability_RemovesOverlappingStarts(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, "09:00", 60, uintPtr(3))

	out, err := f.slots.Execute(context.Background(), AvailabilityInput{
		Date:            testDate,
		DurationMinutes: 60,
		AssignedTo:      uintPtr(3),
	})
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}

	for _, s := range []string{"08:30", "09:00", "09:30"} {
		if slices.Contains(out.Slots, s) {
			t.Errorf("slot %s should be taken", s)
		}
	}
	for _, s := range []string{"08:00", "10:00"} {
		if !slices.Contains(out.Slots, s) {
			t.Errorf("slot %s should be free", s)
		}
	}

	other, err := f.slots.Execute(context.Background(), AvailabilityInput{
		Date:            testDate,
		DurationMinutes: 60,
		AssignedTo:      uintPtr(4),
	})
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if len(other.Slots) != 19 {
		t.Fatalf("another mechanic should be fully free, got %v", other.Slots)
	}
}

func TestGetAvailability_DefaultDurationAndBounds(t *testing.T) {
	f := newFixture(t)

	out, err := f.slots.Execute(context.Background(), AvailabilityInput{Date: testDate})
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if out.DurationMinutes != 60 {
		t.Fatalf("expected default duration 60, got %d", out.DurationMinutes)
	}

	if _, err := f.slots.Execute(context.Background(), AvailabilityInput{Date: testDate, DurationMinutes: -30}); !httperr.IsBusiness(err, "out_of_range") {
		t.Fatalf("expected out_of_range, got %v", err)
	}
	if _, err := f.slots.Execute(context.Background(), AvailabilityInput{Date: "10-05-2030"}); !httperr.IsBusiness(err, "invalid_format") {
		t.Fatalf("expected invalid_format, got %v", err)
	}

	long, err := f.slots.Execute(context.Background(), AvailabilityInput{Date: testDate, DurationMinutes: 480})
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if long.Slots[len(long.Slots)-1] != "10:00" {
		t.Fatalf("an 8h job must end by closing, got %v", long.Slots)
	}
}

func TestGetAvailability_LongDurations(t *testing.T) {
	f := newFixture(t)

	nineHours, err := f.slots.Execute(context.Background(), AvailabilityInput{Date: testDate, DurationMinutes: 540})
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	want := []string{"08:00", "08:30", "09:00"}
	if len(nineHours.Slots) != len(want) {
		t.Fatalf("expected %v, got %v", want, nineHours.Slots)
	}
	for i := range want {
		if nineHours.Slots[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, nineHours.Slots)
		}
	}

	tooLong, err := f.slots.Execute(context.Background(), AvailabilityInput{Date: testDate, DurationMinutes: 601})
	if err != nil {
		t.Fatalf("a duration longer than the day must not fail: %v", err)
	}
	if tooLong.Slots == nil || len(tooLong.Slots) != 0 {
		t.Fatalf("expected an empty slot list, got %v", tooLong.Slots)
	}
	if tooLong.DurationMinutes != 601 {
		t.Fatalf("expected duration 601 echoed back, got %d", tooLong.DurationMinutes)
	}
}

func TestGetAvailability_WorkingHoursOverride(t *testing.T) {
	f := newFixture(t)

	// 2030-05-10 is a Friday; 2030-05-12 a Sunday.
	err := f.repo.ReplaceWorkingHours(context.Background(), []models.WorkingHours{
		{Weekday: 5, Active: true, StartTime: "09:00", EndTime: "13:00", LunchStart: "11:00", LunchEnd: "11:30"},
		{Weekday: 0, Active: false},
	})
	if err != nil {
		t.Fatalf("replace working hours failed: %v", err)
	}

	out, err := f.slots.Execute(context.Background(), AvailabilityInput{Date: testDate, DurationMinutes: 30})
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	want := []string{"09:00", "09:30", "10:00", "10:30", "11:30", "12:00", "12:30"}
	if !slices.Equal(out.Slots, want) {
		t.Fatalf("expected %v, got %v", want, out.Slots)
	}

	sunday, err := f.slots.Execute(context.Background(), AvailabilityInput{Date: "2030-05-12", DurationMinutes: 30})
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if !sunday.Closed || len(sunday.Slots) != 0 {
		t.Fatalf("closed day should have no slots, got %+v", sunday)
	}
}

func TestNewPolicy(t *testing.T) {
	p, err := NewPolicy("America/Sao_Paulo", "07:30", "17:00", 15, 45, "unconstrained")
	if err != nil {
		t.Fatalf("NewPolicy failed: %v", err)
	}
	if p.Window.Open != 450 || p.Window.Close != 1020 || p.SlotStepMinutes != 15 {
		t.Fatalf("unexpected policy %+v", p)
	}

	if _, err := NewPolicy("UTC", "18:00", "08:00", 30, 60, "shared"); err == nil {
		t.Fatal("closing before opening must fail")
	}
}
