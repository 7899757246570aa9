package cart

import (
	"time"

	"github.com/google/uuid"
)

// CartEntry is one item a customer put in their cart. Repeated adds of the same
// dish create separate entries; nothing folds them together.
type CartEntry struct {
	ID            uuid.UUID `json:"id" bson:"_id"`
	CustomerEmail string    `json:"customerEmail" bson:"customerEmail"`
	FoodID        string    `json:"foodId,omitempty" bson:"foodId,omitempty"`
	Name          string    `json:"name,omitempty" bson:"name,omitempty"`
	Price         float64   `json:"price,omitempty" bson:"price,omitempty"`
	Image         string    `json:"image,omitempty" bson:"image,omitempty"`
	Quantity      int       `json:"quantity" bson:"quantity"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
}

// EnsureID generates a new UUID if ID is nil
func (c *CartEntry) EnsureID() {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
}

// GetID returns the cart entry ID
func (c *CartEntry) GetID() uuid.UUID {
	return c.ID
}

// BeforeCreate sets up the cart entry before creation
func (c *CartEntry) BeforeCreate() {
	c.EnsureID()
	c.CreatedAt = time.Now()
	if c.Quantity <= 0 {
		c.Quantity = 1
	}
}
