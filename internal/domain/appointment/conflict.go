package appointment

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/garage-scheduler/internal/models"
)

// Resource is the bookable unit: a mechanic, or the unassigned bucket when
// MechanicID is nil.
type Resource struct {
	MechanicID *uint
}

func ResourceOf(assignedTo *uint) Resource {
	if assignedTo == nil {
		return Resource{}
	}
	id := *assignedTo
	return Resource{MechanicID: &id}
}

func (r Resource) Unassigned() bool {
	return r.MechanicID == nil
}

func (r Resource) Key() string {
	if r.MechanicID == nil {
		return "unassigned"
	}
	return "mechanic:" + strconv.FormatUint(uint64(*r.MechanicID), 10)
}

func (r Resource) Matches(assignedTo *uint) bool {
	if r.MechanicID == nil || assignedTo == nil {
		return r.MechanicID == nil && assignedTo == nil
	}
	return *r.MechanicID == *assignedTo
}

// UnassignedPolicy decides whether unassigned appointments contend with each
// other.
type UnassignedPolicy string

const (
	// Unassigned appointments form one shared pseudo-resource.
	UnassignedShared UnassignedPolicy = "shared"
	// Unassigned appointments never conflict.
	UnassignedUnconstrained UnassignedPolicy = "unconstrained"
)

func ParseUnassignedPolicy(v string) UnassignedPolicy {
	if UnassignedPolicy(v) == UnassignedUnconstrained {
		return UnassignedUnconstrained
	}
	return UnassignedShared
}

type ConflictChecker struct {
	Policy UnassignedPolicy
}

// HasConflict scans appointments of the candidate's date and reports the
// first blocking one held by the same resource whose interval overlaps.
// exclude is skipped so an appointment never conflicts with itself; pass
// uuid.Nil to exclude nothing.
func (c ConflictChecker) HasConflict(
	candidate Interval,
	res Resource,
	exclude uuid.UUID,
	existing []models.Appointment,
) bool {

	if res.Unassigned() && c.Policy == UnassignedUnconstrained {
		return false
	}

	for i := range existing {
		ap := &existing[i]

		if exclude != uuid.Nil && ap.ID == exclude {
			continue
		}
		if !IsBlocking(Status(ap.Status)) {
			continue
		}
		if !res.Matches(ap.AssignedTo) {
			continue
		}
		if candidate.Overlaps(IntervalOf(ap)) {
			return true
		}
	}

	return false
}
