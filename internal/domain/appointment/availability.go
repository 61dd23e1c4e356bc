package appointment

import (
	"github.com/BruksfildServices01/garage-scheduler/internal/models"
)

const DefaultSlotStepMinutes = 30

// Window is the shop's opening range for one date, in minutes since midnight.
type Window struct {
	Open  int
	Close int
}

func (w Window) Contains(iv Interval) bool {
	return iv.Start >= w.Open && iv.End <= w.Close
}

// DayPlan is the resolved working window of a date plus the breaks inside it.
type DayPlan struct {
	Window Window
	Breaks []Interval
	Closed bool
}

// ResolveDay applies a weekday override (with optional lunch break) on top of
// the shop default. A nil override keeps the default window.
func ResolveDay(def Window, wh *models.WorkingHours) DayPlan {
	if wh == nil {
		return DayPlan{Window: def}
	}

	if !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return DayPlan{Window: def, Closed: true}
	}

	open, err1 := ParseClock(wh.StartTime)
	closing, err2 := ParseClock(wh.EndTime)
	if err1 != nil || err2 != nil || closing <= open {
		return DayPlan{Window: def, Closed: true}
	}

	plan := DayPlan{Window: Window{Open: open, Close: closing}}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		ls, err1 := ParseClock(wh.LunchStart)
		le, err2 := ParseClock(wh.LunchEnd)
		if err1 == nil && err2 == nil && le > ls {
			plan.Breaks = append(plan.Breaks, Interval{Start: ls, End: le})
		}
	}

	return plan
}

// AvailableSlots steps from the window opening at the given granularity and
// admits every start whose [start, start+duration) ends no later than closing
// and is not rejected by blocked. The result is ascending.
func AvailableSlots(
	w Window,
	stepMinutes int,
	durationMinutes int,
	blocked func(Interval) bool,
) []int {

	slots := []int{}
	if stepMinutes <= 0 || durationMinutes <= 0 {
		return slots
	}

	for step := w.Open; step < w.Close; step += stepMinutes {
		candidate := Interval{Start: step, End: step + durationMinutes}

		if candidate.End > w.Close {
			continue
		}
		if blocked != nil && blocked(candidate) {
			continue
		}

		slots = append(slots, step)
	}

	return slots
}
