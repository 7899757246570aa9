package contact

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockMessageRepo is a mock implementation of MessageRepo for testing
type MockMessageRepo struct {
	mu       sync.RWMutex
	messages map[uuid.UUID]*Message

	CreateFunc    func(ctx context.Context, msg *Message) error
	GetFunc       func(ctx context.Context, id uuid.UUID) (*Message, error)
	ListFunc      func(ctx context.Context) ([]*Message, error)
	SetStatusFunc func(ctx context.Context, id uuid.UUID, status string) error
	DeleteFunc    func(ctx context.Context, id uuid.UUID) error
}

func NewMockMessageRepo() *MockMessageRepo {
	return &MockMessageRepo{
		messages: make(map[uuid.UUID]*Message),
	}
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *Message) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, msg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[msg.ID] = msg
	return nil
}

func (m *MockMessageRepo) Get(ctx context.Context, id uuid.UUID) (*Message, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.messages[id], nil
}

func (m *MockMessageRepo) List(ctx context.Context) ([]*Message, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Message
	for _, msg := range m.messages {
		result = append(result, msg)
	}
	return result, nil
}

func (m *MockMessageRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[id]
	if !ok {
		return ErrNotFound
	}
	msg.Status = status
	return nil
}

func (m *MockMessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.messages[id]; !ok {
		return ErrNotFound
	}
	delete(m.messages, id)
	return nil
}

// MockPublisher records published events and can be forced to fail
type MockPublisher struct {
	mu        sync.Mutex
	published []publishedEvent

	PublishFunc func(ctx context.Context, topic string, payload []byte) error
}

type publishedEvent struct {
	Topic   string
	Payload []byte
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, payload)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, publishedEvent{Topic: topic, Payload: payload})
	return nil
}

func (m *MockPublisher) Published() []publishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]publishedEvent(nil), m.published...)
}
