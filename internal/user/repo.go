package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an operation matched no user.
var ErrNotFound = errors.New("user not found")

type UserRepo interface {
	// LoginOrRegister performs a single conditional upsert keyed on the unique
	// email: an existing user gets lastLogin refreshed and loginCount
	// incremented, an unknown email gets a fresh customer document. The
	// returned user is the pre-update snapshot, nil when a new user was
	// inserted (insertedID then carries the generated key).
	LoginOrRegister(ctx context.Context, name, email string) (existing *User, insertedID uuid.UUID, err error)

	Get(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context) ([]*User, error)
	SetRole(ctx context.Context, id uuid.UUID, role string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
