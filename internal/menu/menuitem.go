package menu

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem represents a dish offered on the food menu. Beyond the name, fields
// are whatever the storefront sends; partial updates may touch keys this struct
// does not model.
type MenuItem struct {
	ID          uuid.UUID `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Category    string    `json:"category,omitempty" bson:"category,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Rating      float64   `json:"rating,omitempty" bson:"rating,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// EnsureID generates a new UUID if ID is nil
func (m *MenuItem) EnsureID() {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
}

// GetID returns the menu item ID
func (m *MenuItem) GetID() uuid.UUID {
	return m.ID
}

// BeforeCreate sets up the menu item before creation
func (m *MenuItem) BeforeCreate() {
	m.EnsureID()
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
}
