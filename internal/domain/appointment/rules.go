package appointment

import (
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/garage-scheduler/internal/httperr"
)

const (
	MinDurationMinutes     = 15
	MaxDurationMinutes     = 480
	DefaultDurationMinutes = 60
)

var validate = validator.New()

// CheckDate accepts only YYYY-MM-DD with a real calendar date.
func CheckDate(v string) error {
	if v == "" {
		return httperr.ErrValidation("date", "required")
	}
	if validate.Var(v, "len=10,datetime=2006-01-02") != nil {
		return httperr.ErrValidation("date", "invalid_format")
	}
	return nil
}

// CheckClock accepts only 24-hour HH:MM.
func CheckClock(v string) error {
	if v == "" {
		return httperr.ErrValidation("time", "required")
	}
	if validate.Var(v, "len=5,datetime=15:04") != nil {
		return httperr.ErrValidation("time", "invalid_format")
	}
	return nil
}

func CheckDuration(minutes int) error {
	if validate.Var(minutes, "min=15,max=480") != nil {
		return httperr.ErrValidation("estimated_duration_minutes", "out_of_range")
	}
	return nil
}

func CheckStatus(v string) error {
	if validate.Var(v, "required,oneof=scheduled confirmed in_progress completed cancelled no_show") != nil {
		return httperr.ErrValidation("status", "invalid_value")
	}
	return nil
}

func CheckPriority(v string) error {
	if validate.Var(v, "required,oneof=low normal high urgent") != nil {
		return httperr.ErrValidation("priority", "invalid_value")
	}
	return nil
}
