package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/garage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/garage-scheduler/internal/models"
)

// MemoryRepository keeps everything in process. A single mutex serializes
// transactions, so LockSchedule and LockAppointment have nothing left to do.
type MemoryRepository struct {
	mu    *sync.Mutex
	state *memoryState
	inTx  bool
}

type memoryState struct {
	clients      map[uint]models.Client
	vehicles     map[uint]models.Vehicle
	services     map[uint]models.Service
	appointments map[uuid.UUID]models.Appointment
	hours        map[int]models.WorkingHours
	nextID       uint
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		mu: &sync.Mutex{},
		state: &memoryState{
			clients:      map[uint]models.Client{},
			vehicles:     map[uint]models.Vehicle{},
			services:     map[uint]models.Service{},
			appointments: map[uuid.UUID]models.Appointment{},
			hours:        map[int]models.WorkingHours{},
		},
	}
}

func (r *MemoryRepository) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

func (s *memoryState) id(current uint) uint {
	if current != 0 {
		if current > s.nextID {
			s.nextID = current
		}
		return current
	}
	s.nextID++
	return s.nextID
}

// --------------------------------------------------
// Fixtures
// --------------------------------------------------

func (r *MemoryRepository) AddClient(c models.Client) models.Client {
	defer r.lock()()
	c.ID = r.state.id(c.ID)
	r.state.clients[c.ID] = c
	return c
}

func (r *MemoryRepository) AddVehicle(v models.Vehicle) models.Vehicle {
	defer r.lock()()
	v.ID = r.state.id(v.ID)
	r.state.vehicles[v.ID] = v
	return v
}

func (r *MemoryRepository) AddService(s models.Service) models.Service {
	defer r.lock()()
	s.ID = r.state.id(s.ID)
	r.state.services[s.ID] = s
	return s
}

// --------------------------------------------------
// Client / Vehicle / Service
// --------------------------------------------------

func (r *MemoryRepository) ClientExists(_ context.Context, clientID uint) (bool, error) {
	defer r.lock()()
	_, ok := r.state.clients[clientID]
	return ok, nil
}

func (r *MemoryRepository) VehicleBelongsTo(_ context.Context, vehicleID uint, clientID uint) (bool, error) {
	defer r.lock()()
	v, ok := r.state.vehicles[vehicleID]
	if !ok {
		return false, domain.ErrNotFound
	}
	return v.ClientID == clientID, nil
}

func (r *MemoryRepository) ServiceDefaultDuration(_ context.Context, serviceID uint) (int, error) {
	defer r.lock()()
	s, ok := r.state.services[serviceID]
	if !ok || !s.Active {
		return 0, domain.ErrNotFound
	}
	return s.DurationMin, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *MemoryRepository) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	defer r.lock()()
	ap, ok := r.state.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ap, nil
}

func (r *MemoryRepository) LockAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return r.GetAppointment(ctx, id)
}

func (r *MemoryRepository) ListBlockingForDay(
	_ context.Context,
	date string,
	res domain.Resource,
) ([]models.Appointment, error) {

	defer r.lock()()

	var list []models.Appointment
	for _, ap := range r.state.appointments {
		if ap.Date != date || !domain.IsBlocking(domain.Status(ap.Status)) {
			continue
		}
		if !res.Matches(ap.AssignedTo) {
			continue
		}
		list = append(list, ap)
	}
	sortByStart(list)
	return list, nil
}

func (r *MemoryRepository) ListAppointmentsForDay(
	_ context.Context,
	date string,
	assignedTo *uint,
) ([]models.Appointment, error) {

	defer r.lock()()

	var list []models.Appointment
	for _, ap := range r.state.appointments {
		if ap.Date != date {
			continue
		}
		if assignedTo != nil && (ap.AssignedTo == nil || *ap.AssignedTo != *assignedTo) {
			continue
		}

		ap.Client = r.state.clients[ap.ClientID]
		ap.Vehicle = r.state.vehicles[ap.VehicleID]
		if ap.ServiceID != nil {
			if s, ok := r.state.services[*ap.ServiceID]; ok {
				ap.Service = &s
			}
		}
		list = append(list, ap)
	}
	sortByStart(list)
	return list, nil
}

func (r *MemoryRepository) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	defer r.lock()()
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	now := time.Now()
	ap.CreatedAt = now
	ap.UpdatedAt = now
	r.state.appointments[ap.ID] = *ap
	return nil
}

func (r *MemoryRepository) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	defer r.lock()()
	if _, ok := r.state.appointments[ap.ID]; !ok {
		return domain.ErrNotFound
	}
	ap.UpdatedAt = time.Now()
	r.state.appointments[ap.ID] = *ap
	return nil
}

func (r *MemoryRepository) DeleteAppointment(_ context.Context, id uuid.UUID) error {
	defer r.lock()()
	if _, ok := r.state.appointments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.state.appointments, id)
	return nil
}

func (r *MemoryRepository) LockSchedule(context.Context, string, domain.Resource) error {
	return nil
}

// Transaction runs fn with the store locked; appointment writes are rolled
// back when fn fails.
func (r *MemoryRepository) Transaction(
	_ context.Context,
	fn func(tx domain.AppointmentStore) error,
) error {

	if r.inTx {
		return fn(r)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[uuid.UUID]models.Appointment, len(r.state.appointments))
	for id, ap := range r.state.appointments {
		snapshot[id] = ap
	}

	tx := &MemoryRepository{mu: r.mu, state: r.state, inTx: true}
	if err := fn(tx); err != nil {
		r.state.appointments = snapshot
		return err
	}
	return nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *MemoryRepository) GetWorkingHours(_ context.Context, weekday int) (*models.WorkingHours, error) {
	defer r.lock()()
	wh, ok := r.state.hours[weekday]
	if !ok {
		return nil, nil
	}
	return &wh, nil
}

func (r *MemoryRepository) ListWorkingHours(context.Context) ([]models.WorkingHours, error) {
	defer r.lock()()
	hours := make([]models.WorkingHours, 0, len(r.state.hours))
	for _, wh := range r.state.hours {
		hours = append(hours, wh)
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Weekday < hours[j].Weekday })
	return hours, nil
}

func (r *MemoryRepository) ReplaceWorkingHours(_ context.Context, days []models.WorkingHours) error {
	defer r.lock()()
	r.state.hours = make(map[int]models.WorkingHours, len(days))
	for _, d := range days {
		d.ID = r.state.id(d.ID)
		r.state.hours[d.Weekday] = d
	}
	return nil
}

func sortByStart(list []models.Appointment) {
	sort.Slice(list, func(i, j int) bool { return list[i].StartMinute < list[j].StartMinute })
}

var _ domain.Repository = (*MemoryRepository)(nil)
