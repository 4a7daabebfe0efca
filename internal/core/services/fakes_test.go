package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

type recordedEvent struct {
	direction, event, outcome string
}

type fakeMetrics struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (m *fakeMetrics) RecordEvent(direction, event, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, recordedEvent{direction, event, outcome})
}

// memoryMaintenanceRepo mirrors the guarded update of the postgres repository.
type memoryMaintenanceRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.MaintenanceTask
}

func newMemoryMaintenanceRepo() *memoryMaintenanceRepo {
	return &memoryMaintenanceRepo{rows: make(map[int64]domain.MaintenanceTask)}
}

func (r *memoryMaintenanceRepo) CreateMaintenance(_ context.Context, task *domain.MaintenanceTask) (*domain.MaintenanceTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	row := *task
	row.ID = r.nextID
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	r.rows[row.ID] = row
	return &row, nil
}

func (r *memoryMaintenanceRepo) GetMaintenanceByID(_ context.Context, id int64) (*domain.MaintenanceTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound, "maintenance %d not found", id)
	}
	return &row, nil
}

func (r *memoryMaintenanceRepo) ListMaintenances(context.Context) ([]*domain.MaintenanceTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tasks := make([]*domain.MaintenanceTask, 0, len(r.rows))
	for id := int64(1); id <= r.nextID; id++ {
		if row, ok := r.rows[id]; ok {
			tasks = append(tasks, &row)
		}
	}
	return tasks, nil
}

func (r *memoryMaintenanceRepo) UpdateMaintenanceStatus(_ context.Context, task *domain.MaintenanceTask, expected domain.MaintenanceStatus) (*domain.MaintenanceTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[task.ID]
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound, "maintenance %d not found", task.ID)
	}
	if row.Status != expected {
		return nil, domain.NewError(domain.ErrConflict, "maintenance %d was modified concurrently", task.ID)
	}
	row.Status = task.Status
	row.Amount = task.Amount
	row.MechanicID = task.MechanicID
	row.UpdatedAt = time.Now()
	r.rows[task.ID] = row
	return &row, nil
}

func (r *memoryMaintenanceRepo) DeleteMaintenance(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.NewError(domain.ErrNotFound, "maintenance %d not found", id)
	}
	delete(r.rows, id)
	return nil
}

func (r *memoryMaintenanceRepo) status(id int64) domain.MaintenanceStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id].Status
}

// fakeDirectory stands in for both the user and the vehicle service.
type fakeDirectory struct {
	users    map[int64]*domain.User
	vehicles map[int64]*domain.Vehicle
	err      error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		users: map[int64]*domain.User{
			7:  {ID: 7, FirstName: "Awa", LastName: "Diop", Email: "awa@example.com", Role: domain.RoleClient},
			9:  {ID: 9, FirstName: "Moussa", LastName: "Fall", Email: "moussa@example.com", Role: domain.RoleMechanic},
			11: {ID: 11, FirstName: "Ibou", LastName: "Ndiaye", Email: "ibou@example.com", Role: domain.RoleClient},
		},
		vehicles: map[int64]*domain.Vehicle{
			1: {ID: 1, Marque: "Toyota", Modele: "Corolla", Annee: 2019, NumImmatriculation: "DK-1234-AB", ProprietaireID: 7},
		},
	}
}

func (d *fakeDirectory) GetUser(_ context.Context, id int64) (*domain.User, error) {
	if d.err != nil {
		return nil, d.err
	}
	u, ok := d.users[id]
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound, "user %d not found", id)
	}
	return u, nil
}

func (d *fakeDirectory) ListUsers(context.Context) ([]*domain.User, error) {
	if d.err != nil {
		return nil, d.err
	}
	users := make([]*domain.User, 0, len(d.users))
	for _, id := range []int64{7, 9, 11} {
		if u, ok := d.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (d *fakeDirectory) UserExists(ctx context.Context, id int64) (bool, error) {
	_, err := d.GetUser(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (d *fakeDirectory) GetVehicle(_ context.Context, id int64) (*domain.Vehicle, error) {
	if d.err != nil {
		return nil, d.err
	}
	v, ok := d.vehicles[id]
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound, "vehicle %d not found", id)
	}
	return v, nil
}

func (d *fakeDirectory) VehicleExists(ctx context.Context, id int64) (bool, error) {
	_, err := d.GetVehicle(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*domain.MaintenanceEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event *domain.MaintenanceEvent) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) names() []domain.EventName {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]domain.EventName, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.Event)
	}
	return names
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []*domain.Email
	err  error
}

func (m *recordingMailer) Send(_ context.Context, email *domain.Email) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, email)
	return nil
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return v, nil
}

func (c *memoryCache) Set(key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}
