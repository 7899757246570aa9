package contact

import (
	"time"

	"github.com/google/uuid"
)

// Initial status of a submitted message. Later values are whatever the admin
// dashboard sends.
const StatusUnread = "Unread"

// Message is a contact-form submission.
type Message struct {
	ID        uuid.UUID `json:"id" bson:"_id"`
	FirstName string    `json:"firstName" bson:"firstName"`
	LastName  string    `json:"lastName" bson:"lastName"`
	Email     string    `json:"email" bson:"email"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	Status    string    `json:"status" bson:"status"`
}

// EnsureID generates a new UUID if ID is nil
func (m *Message) EnsureID() {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
}

// GetID returns the message ID
func (m *Message) GetID() uuid.UUID {
	return m.ID
}

// BeforeCreate sets up the message before creation
func (m *Message) BeforeCreate() {
	m.EnsureID()
	m.CreatedAt = time.Now()
	if m.Status == "" {
		m.Status = StatusUnread
	}
}
