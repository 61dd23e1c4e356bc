package appointment

import (
	"testing"

	"github.com/BruksfildServices01/garage-scheduler/internal/models"
)

var shopDay = Window{Open: 8 * 60, Close: 18 * 60}

func TestAvailableSlots_EmptyDay(t *testing.T) {
	slots := AvailableSlots(shopDay, 30, 60, nil)

	// 08:00 through 17:00 in 30 minute steps.
	if len(slots) != 19 {
		t.Fatalf("expected 19 slots, got %d", len(slots))
	}
	if FormatClock(slots[0]) != "08:00" {
		t.Fatalf("expected first slot 08:00, got %s", FormatClock(slots[0]))
	}
	if FormatClock(slots[len(slots)-1]) != "17:00" {
		t.Fatalf("expected last slot 17:00, got %s", FormatClock(slots[len(slots)-1]))
	}
}

func TestAvailableSlots_SkipsBlocked(t *testing.T) {
	busy := Interval{Start: 9 * 60, End: 10 * 60}

	slots := AvailableSlots(shopDay, 30, 60, func(iv Interval) bool {
		return iv.Overlaps(busy)
	})

	got := map[string]bool{}
	for _, s := range slots {
		got[FormatClock(s)] = true
	}

	for _, removed := range []string{"08:30", "09:00", "09:30"} {
		if got[removed] {
			t.Errorf("slot %s overlaps 09:00-10:00 and must be excluded", removed)
		}
	}
	for _, kept := range []string{"08:00", "10:00"} {
		if !got[kept] {
			t.Errorf("slot %s touches the busy block and must be offered", kept)
		}
	}
}

func TestAvailableSlots_DurationLongerThanWindow(t *testing.T) {
	slots := AvailableSlots(Window{Open: 8 * 60, Close: 12 * 60}, 30, 480, nil)
	if slots == nil || len(slots) != 0 {
		t.Fatalf("expected an empty, non-nil list, got %v", slots)
	}
}

func TestResolveDay(t *testing.T) {
	plan := ResolveDay(shopDay, nil)
	if plan.Closed || plan.Window != shopDay || len(plan.Breaks) != 0 {
		t.Fatalf("nil override should keep the default, got %+v", plan)
	}

	plan = ResolveDay(shopDay, &models.WorkingHours{Active: false})
	if !plan.Closed {
		t.Fatal("inactive day should be closed")
	}

	plan = ResolveDay(shopDay, &models.WorkingHours{
		Active:     true,
		StartTime:  "09:00",
		EndTime:    "17:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
	})
	if plan.Closed {
		t.Fatal("active day should be open")
	}
	if plan.Window != (Window{Open: 540, Close: 1020}) {
		t.Fatalf("unexpected window %+v", plan.Window)
	}
	if len(plan.Breaks) != 1 || plan.Breaks[0] != (Interval{720, 780}) {
		t.Fatalf("unexpected breaks %+v", plan.Breaks)
	}
}
