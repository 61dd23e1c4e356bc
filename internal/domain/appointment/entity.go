package appointment

import (
	"time"

	"github.com/BruksfildServices01/garage-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Schedule places the appointment on date at clock for duration minutes and
// keeps the stored interval in sync.
func Schedule(ap *models.Appointment, date, clock string, durationMinutes int) error {
	iv, err := NewInterval(clock, durationMinutes)
	if err != nil {
		return err
	}

	ap.Date = date
	ap.Time = clock
	ap.EstimatedDurationMinutes = durationMinutes
	ap.StartMinute = iv.Start
	ap.EndMinute = iv.End
	return nil
}

// SetStatus applies a transition. Every valid status is reachable from every
// other; entering completed stamps the actual end time, any other status
// leaves it unset.
func SetStatus(ap *models.Appointment, to Status, now time.Time) {
	ap.Status = string(to)
	if to == StatusCompleted {
		ap.ActualEndTime = &now
		return
	}
	ap.ActualEndTime = nil
}

func IntervalOf(ap *models.Appointment) Interval {
	return Interval{Start: ap.StartMinute, End: ap.EndMinute}
}
