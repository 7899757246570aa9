package user

import (
	"time"

	"github.com/google/uuid"
)

const DefaultRole = "customer"

// User is a storefront account, keyed by email. It is created implicitly on
// first contact and its activity counters grow on every subsequent login.
type User struct {
	ID       uuid.UUID `json:"id" bson:"_id"`
	Name     string    `json:"name,omitempty" bson:"name,omitempty"`
	Email    string    `json:"email" bson:"email"`
	Role     string    `json:"role" bson:"role"`
	Activity Activity  `json:"activity" bson:"activity"`
}

// Activity tracks login behavior for a user.
type Activity struct {
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	LastLogin  time.Time `json:"lastLogin" bson:"lastLogin"`
	LoginCount int       `json:"loginCount" bson:"loginCount"`
}

// GetID returns the user ID
func (u *User) GetID() uuid.UUID {
	return u.ID
}
