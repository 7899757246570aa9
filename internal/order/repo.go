package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an operation matched no order.
var ErrNotFound = errors.New("order not found")

type OrderRepo interface {
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CheckoutStore persists an order and clears the customer's cart as one unit:
// either both writes commit or neither does.
type CheckoutStore interface {
	PlaceOrder(ctx context.Context, o *Order) error
}
