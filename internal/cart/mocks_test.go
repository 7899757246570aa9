package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockCartRepo is a mock implementation of CartRepo for testing
type MockCartRepo struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*CartEntry

	CreateFunc      func(ctx context.Context, entry *CartEntry) error
	GetFunc         func(ctx context.Context, id uuid.UUID) (*CartEntry, error)
	ListByEmailFunc func(ctx context.Context, email string) ([]*CartEntry, error)
	SetQuantityFunc func(ctx context.Context, id uuid.UUID, quantity int) error
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
}

func NewMockCartRepo() *MockCartRepo {
	return &MockCartRepo{
		entries: make(map[uuid.UUID]*CartEntry),
	}
}

func (m *MockCartRepo) Create(ctx context.Context, entry *CartEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockCartRepo) Get(ctx context.Context, id uuid.UUID) (*CartEntry, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries[id], nil
}

func (m *MockCartRepo) ListByEmail(ctx context.Context, email string) ([]*CartEntry, error) {
	if m.ListByEmailFunc != nil {
		return m.ListByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*CartEntry
	for _, e := range m.entries {
		if e.CustomerEmail == email {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *MockCartRepo) SetQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	if m.SetQuantityFunc != nil {
		return m.SetQuantityFunc(ctx, id, quantity)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return ErrNotFound
	}
	e.Quantity = quantity
	return nil
}

func (m *MockCartRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return ErrNotFound
	}
	delete(m.entries, id)
	return nil
}
