package contact

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an operation matched no message.
var ErrNotFound = errors.New("message not found")

type MessageRepo interface {
	Create(ctx context.Context, msg *Message) error
	Get(ctx context.Context, id uuid.UUID) (*Message, error)
	List(ctx context.Context) ([]*Message, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
