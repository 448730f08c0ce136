package ports

import (
	"context"
	"time"

	"github.com/fedmatch/marketplace/internal/core/domain"
)

// MessageRepository defines persistence for direct messages.
type MessageRepository interface {
	Insert(ctx context.Context, m *domain.Message) error
	// ListByParticipant returns every message the profile sent or received,
	// newest first.
	ListByParticipant(ctx context.Context, profileID string) ([]*domain.Message, error)
	// ListByConversation returns the conversation's messages oldest first.
	ListByConversation(ctx context.Context, conversationID string) ([]*domain.Message, error)
	// MarkConversationRead flips read=false to true on every message in the
	// conversation addressed to receiverID, in a single store operation.
	MarkConversationRead(ctx context.Context, conversationID, receiverID string) error
	CountUnread(ctx context.Context, receiverID string) (int64, error)
}

// InboxNotice is the push event published when a message is delivered.
type InboxNotice struct {
	MessageID      string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Subject        string    `json:"subject,omitempty"`
	Preview        string    `json:"preview"`
	CreatedAt      time.Time `json:"created_at"`
}

// InboxPublisher pushes a notice onto the receiver's inbox feed. Publishing
// is best-effort: a failed push never fails the write that triggered it.
type InboxPublisher interface {
	Publish(ctx context.Context, receiverID string, notice InboxNotice) error
}

// InboxSubscription is a live feed of notices for one receiver.
type InboxSubscription interface {
	Notices() <-chan InboxNotice
	Close() error
}

// InboxSubscriber attaches a live subscription to a receiver's inbox feed.
type InboxSubscriber interface {
	Subscribe(ctx context.Context, receiverID string) (InboxSubscription, error)
}
