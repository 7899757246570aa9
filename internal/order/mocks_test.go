package order

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockOrderRepo is a mock implementation of OrderRepo for testing
type MockOrderRepo struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*Order

	GetFunc       func(ctx context.Context, id uuid.UUID) (*Order, error)
	ListFunc      func(ctx context.Context) ([]*Order, error)
	SetStatusFunc func(ctx context.Context, id uuid.UUID, status string) error
	DeleteFunc    func(ctx context.Context, id uuid.UUID) error
}

func NewMockOrderRepo() *MockOrderRepo {
	return &MockOrderRepo{
		orders: make(map[uuid.UUID]*Order),
	}
}

func (m *MockOrderRepo) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orders[id], nil
}

func (m *MockOrderRepo) List(ctx context.Context) ([]*Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Order
	for _, o := range m.orders {
		result = append(result, o)
	}
	return result, nil
}

func (m *MockOrderRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.OrderStatus = status
	return nil
}

func (m *MockOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

// MockCheckoutStore records placed orders and can be forced to fail
type MockCheckoutStore struct {
	mu     sync.Mutex
	placed []*Order

	PlaceOrderFunc func(ctx context.Context, o *Order) error
}

func NewMockCheckoutStore() *MockCheckoutStore {
	return &MockCheckoutStore{}
}

func (m *MockCheckoutStore) PlaceOrder(ctx context.Context, o *Order) error {
	if m.PlaceOrderFunc != nil {
		return m.PlaceOrderFunc(ctx, o)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.placed = append(m.placed, o)
	return nil
}

func (m *MockCheckoutStore) Placed() []*Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Order(nil), m.placed...)
}
