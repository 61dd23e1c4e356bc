package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/garage-scheduler/internal/audit"
	infraRepo "github.com/BruksfildServices01/garage-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/garage-scheduler/internal/lock"
	"github.com/BruksfildServices01/garage-scheduler/internal/models"
)

const testDate = "2030-05-10"

var testNow = time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)

type recordedEvents struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordedEvents) Record(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordedEvents) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

func (r *recordedEvents) last() audit.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

type fixture struct {
	repo    *infraRepo.MemoryRepository
	events  *recordedEvents
	policy  Policy
	client  models.Client
	vehicle models.Vehicle
	service models.Service

	create    *CreateAppointment
	update    *UpdateAppointment
	setStatus *SetStatus
	delete    *DeleteAppointment
	slots     *GetAvailability
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := infraRepo.NewMemoryRepository()
	events := &recordedEvents{}

	policy := DefaultPolicy()
	policy.Clock = func() time.Time { return testNow }

	f := &fixture{
		repo:   repo,
		events: events,
		policy: policy,
	}

	f.client = repo.AddClient(models.Client{Name: "Ana"})
	f.vehicle = repo.AddVehicle(models.Vehicle{ClientID: f.client.ID, Plate: "ABC1234"})
	f.service = repo.AddService(models.Service{Name: "Revisão de freios", DurationMin: 90, Active: true})

	f.create = NewCreateAppointment(repo, lock.NopLocker{}, events, policy)
	f.update = NewUpdateAppointment(repo, lock.NopLocker{}, events, policy)
	f.setStatus = NewSetStatus(repo, lock.NopLocker{}, events, policy)
	f.delete = NewDeleteAppointment(repo, events)
	f.slots = NewGetAvailability(repo, policy)

	return f
}

// input is a valid create request for the fixture's client and vehicle.
func (f *fixture) input(clock string, minutes int, assignedTo *uint) CreateAppointmentInput {
	return CreateAppointmentInput{
		ClientID:                 f.client.ID,
		VehicleID:                f.vehicle.ID,
		Date:                     testDate,
		Time:                     clock,
		EstimatedDurationMinutes: &minutes,
		AssignedTo:               assignedTo,
	}
}

func (f *fixture) mustCreate(t *testing.T, clock string, minutes int, assignedTo *uint) *models.Appointment {
	t.Helper()
	ap, err := f.create.Execute(context.Background(), f.input(clock, minutes, assignedTo))
	if err != nil {
		t.Fatalf("create %s+%d failed: %v", clock, minutes, err)
	}
	return ap
}

func uintPtr(v uint) *uint    { return &v }
func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }
