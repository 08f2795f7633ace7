package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/clothing-store/internal/auth"
	"github.com/spec-kit/clothing-store/internal/domain"
	"github.com/spec-kit/clothing-store/internal/events"
	"github.com/spec-kit/clothing-store/internal/repository"
)

const testSecret = "service-test-secret-0123456789abcdef"

type memoryUsers struct {
	mu     sync.Mutex
	byID   map[string]*domain.User
	nextID int
	err    error
}

func newMemoryUsers(users ...*domain.User) *memoryUsers {
	m := &memoryUsers{byID: map[string]*domain.User{}}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memoryUsers) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, u := range m.byID {
		if u.Email == user.Email {
			return domain.ErrConflict
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	m.byID[user.ID] = &stored
	return nil
}

func (m *memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memoryUsers) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.User{}
	for _, u := range m.byID {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryUsers) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[user.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, u := range m.byID {
		if id != user.ID && u.Email == user.Email {
			return domain.ErrConflict
		}
	}
	user.UpdatedAt = time.Now()
	stored := *user
	m.byID[user.ID] = &stored
	return nil
}

func (m *memoryUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memoryProducts struct {
	mu       sync.Mutex
	byID     map[string]*domain.Product
	nextID   int
	lastList [2]int
}

func newMemoryProducts() *memoryProducts {
	return &memoryProducts{byID: map[string]*domain.Product{}}
}

func (m *memoryProducts) Create(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.SKU == p.SKU {
			return domain.ErrConflict
		}
	}
	m.nextID++
	p.ID = fmt.Sprintf("product-%d", m.nextID)
	stored := *p
	m.byID[p.ID] = &stored
	return nil
}

func (m *memoryProducts) Update(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *p
	m.byID[p.ID] = &stored
	return nil
}

func (m *memoryProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memoryProducts) List(_ context.Context, limit, offset int) ([]domain.Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastList = [2]int{limit, offset}
	out := make([]domain.Product, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, *p)
	}
	return out, len(m.byID), nil
}

func (m *memoryProducts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type recordingRevoker struct {
	revoked map[string]time.Time
	err     error
}

func (r *recordingRevoker) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	if r.err != nil {
		return r.err
	}
	if r.revoked == nil {
		r.revoked = map[string]time.Time{}
	}
	r.revoked[tokenID] = expiresAt
	return nil
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func newRecordingDispatcher() (events.Dispatcher, *eventRecorder) {
	d := events.NewInMemoryDispatcher()
	rec := &eventRecorder{}
	for _, t := range []events.EventType{
		events.EventUserRegistered, events.EventUserUpdated, events.EventUserDeleted,
		events.EventProductCreated, events.EventProductUpdated, events.EventProductDeleted,
	} {
		d.Subscribe(t, func(_ context.Context, e events.Event) error {
			rec.mu.Lock()
			defer rec.mu.Unlock()
			rec.events = append(rec.events, e)
			return nil
		})
	}
	return d, rec
}

func (r *eventRecorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func identity(id string, role domain.Role) *auth.Identity {
	return &auth.Identity{ID: id, Role: role, User: &domain.User{ID: id, Role: role}}
}

func sampleProduct(name string) *domain.Product {
	p := domain.NewProduct()
	p.Name = name
	p.Description = "Soft organic cotton."
	p.Price = 25
	p.CategoryID = "tshirts"
	p.Inventory = 40
	return p
}
