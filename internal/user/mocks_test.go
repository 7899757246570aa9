package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockUserRepo is a mock implementation of UserRepo for testing
type MockUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User

	LoginOrRegisterFunc func(ctx context.Context, name, email string) (*User, uuid.UUID, error)
	GetFunc             func(ctx context.Context, id uuid.UUID) (*User, error)
	ListFunc            func(ctx context.Context) ([]*User, error)
	SetRoleFunc         func(ctx context.Context, id uuid.UUID, role string) error
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
}

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{
		users: make(map[uuid.UUID]*User),
	}
}

// LoginOrRegister mirrors the store behavior: return the pre-update snapshot
// for a known email, otherwise insert and return the new ID.
func (m *MockUserRepo) LoginOrRegister(ctx context.Context, name, email string) (*User, uuid.UUID, error) {
	if m.LoginOrRegisterFunc != nil {
		return m.LoginOrRegisterFunc(ctx, name, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			before := *u
			u.Activity.LastLogin = time.Now()
			u.Activity.LoginCount++
			return &before, uuid.Nil, nil
		}
	}
	id := uuid.New()
	m.users[id] = &User{
		ID:    id,
		Name:  name,
		Email: email,
		Role:  DefaultRole,
		Activity: Activity{
			CreatedAt:  time.Now(),
			LastLogin:  time.Now(),
			LoginCount: 1,
		},
	}
	return nil, id, nil
}

func (m *MockUserRepo) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[id], nil
}

func (m *MockUserRepo) List(ctx context.Context) ([]*User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*User
	for _, u := range m.users {
		result = append(result, u)
	}
	return result, nil
}

func (m *MockUserRepo) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	if m.SetRoleFunc != nil {
		return m.SetRoleFunc(ctx, id, role)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Role = role
	return nil
}

func (m *MockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}
