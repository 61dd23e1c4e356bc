package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/garage-scheduler/internal/httperr"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	MinutesPerDay = 24 * 60
)

// Interval is a half-open range [Start, End) in minutes since midnight of a
// single calendar date.
type Interval struct {
	Start int
	End   int
}

// Overlaps uses strict inequalities: intervals that only touch do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

func (i Interval) Minutes() int {
	return i.End - i.Start
}

// ParseClock converts an HH:MM wall-clock value into minutes since midnight.
func ParseClock(hm string) (int, error) {
	t, err := time.Parse(ClockLayout, hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NewInterval builds [clock, clock+duration). An interval never wraps into
// the next day.
func NewInterval(clock string, durationMinutes int) (Interval, error) {
	start, err := ParseClock(clock)
	if err != nil {
		return Interval{}, httperr.ErrValidation("time", "invalid_format")
	}

	iv := Interval{Start: start, End: start + durationMinutes}
	if iv.End > MinutesPerDay {
		return Interval{}, httperr.ErrValidation("time", "crosses_midnight")
	}
	return iv, nil
}

// StartOf resolves a date and time of day to an instant in the shop location.
func StartOf(date, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, loc)
}
