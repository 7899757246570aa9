package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an operation matched no cart entry.
var ErrNotFound = errors.New("cart entry not found")

type CartRepo interface {
	Create(ctx context.Context, entry *CartEntry) error
	Get(ctx context.Context, id uuid.UUID) (*CartEntry, error)
	ListByEmail(ctx context.Context, email string) ([]*CartEntry, error)
	SetQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	Delete(ctx context.Context, id uuid.UUID) error
}
