package domain

import (
	"strings"
	"time"
)

// Message is a single direct message between two profiles. ConversationID is
// derived, not assigned: both participants compute the same value
// independently.
type Message struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	ConversationID string    `json:"conversation_id" bson:"conversation_id"`
	SenderID       string    `json:"sender_id" bson:"sender_id"`
	ReceiverID     string    `json:"receiver_id" bson:"receiver_id"`
	Subject        string    `json:"subject,omitempty" bson:"subject,omitempty"`
	Content        string    `json:"content" bson:"content"`
	Read           bool      `json:"read" bson:"read"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// ConversationID returns the canonical conversation identifier for a pair of
// participants: the two profile ids sorted and joined, so that
// ConversationID(a, b) == ConversationID(b, a).
func ConversationID(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + ":" + b
}

// Counterparty returns the other participant of a message relative to self.
func (m *Message) Counterparty(self string) string {
	if m.SenderID == self {
		return m.ReceiverID
	}
	return m.SenderID
}
