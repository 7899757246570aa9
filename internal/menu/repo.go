package menu

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an operation matched no menu item.
var ErrNotFound = errors.New("menu item not found")

type MenuItemRepo interface {
	Create(ctx context.Context, item *MenuItem) error
	Get(ctx context.Context, id uuid.UUID) (*MenuItem, error)
	List(ctx context.Context) ([]*MenuItem, error)
	Patch(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}
