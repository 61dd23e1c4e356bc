package appointment

import (
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/garage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/garage-scheduler/internal/timezone"
)

// Policy carries the shop-level scheduling settings shared by the use cases.
type Policy struct {
	Location               *time.Location
	Window                 domain.Window
	SlotStepMinutes        int
	DefaultDurationMinutes int
	Checker                domain.ConflictChecker

	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

func DefaultPolicy() Policy {
	return Policy{
		Location:               time.UTC,
		Window:                 domain.Window{Open: 8 * 60, Close: 18 * 60},
		SlotStepMinutes:        domain.DefaultSlotStepMinutes,
		DefaultDurationMinutes: domain.DefaultDurationMinutes,
		Checker:                domain.ConflictChecker{Policy: domain.UnassignedShared},
	}
}

// NewPolicy builds the policy from configuration values. Unknown timezones
// fall back to UTC; a non-positive step or default duration uses the
// built-in value.
func NewPolicy(
	tz string,
	opening string,
	closing string,
	stepMinutes int,
	defaultDurationMinutes int,
	unassigned string,
) (Policy, error) {

	open, err := domain.ParseClock(opening)
	if err != nil {
		return Policy{}, fmt.Errorf("opening time %q: %w", opening, err)
	}
	closeAt, err := domain.ParseClock(closing)
	if err != nil {
		return Policy{}, fmt.Errorf("closing time %q: %w", closing, err)
	}
	if closeAt <= open {
		return Policy{}, fmt.Errorf("closing time %s must be after opening time %s", closing, opening)
	}

	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}
	if defaultDurationMinutes <= 0 {
		defaultDurationMinutes = domain.DefaultDurationMinutes
	}
	if err := domain.CheckDuration(defaultDurationMinutes); err != nil {
		return Policy{}, fmt.Errorf("default duration %d: %w", defaultDurationMinutes, err)
	}

	return Policy{
		Location:               timezone.Location(tz),
		Window:                 domain.Window{Open: open, Close: closeAt},
		SlotStepMinutes:        stepMinutes,
		DefaultDurationMinutes: defaultDurationMinutes,
		Checker:                domain.ConflictChecker{Policy: domain.ParseUnassignedPolicy(unassigned)},
	}, nil
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

func (p Policy) now() time.Time {
	if p.Clock != nil {
		return p.Clock().In(p.location())
	}
	return time.Now().In(p.location())
}

func (p Policy) defaultDuration() int {
	if p.DefaultDurationMinutes <= 0 {
		return domain.DefaultDurationMinutes
	}
	return p.DefaultDurationMinutes
}
