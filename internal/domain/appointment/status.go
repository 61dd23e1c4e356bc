package appointment

import "github.com/BruksfildServices01/garage-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsBlocking reports whether an appointment in this status occupies its
// resource for conflict purposes.
func IsBlocking(s Status) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress:
		return true
	}
	return false
}

func BlockingStatuses() []string {
	return []string{
		string(StatusScheduled),
		string(StatusConfirmed),
		string(StatusInProgress),
	}
}

// ===============================
// Validations
// ===============================

func ParseStatus(v string) (Status, error) {
	if err := CheckStatus(v); err != nil {
		return "", err
	}
	return Status(v), nil
}

// CanDelete: an appointment being worked on must leave in_progress first.
func CanDelete(current Status) error {
	if current == StatusInProgress {
		return httperr.ErrState("appointment_in_progress")
	}
	return nil
}

// Reactivates reports a move from a non-blocking into a blocking status,
// which has to be re-checked for conflicts.
func Reactivates(from, to Status) bool {
	return !IsBlocking(from) && IsBlocking(to)
}

func InitialStatus() Status {
	return StatusScheduled
}
