package ports

import (
	"context"

	"github.com/fedmatch/marketplace/internal/core/domain"
)

// SendMessageInput carries a new direct message.
type SendMessageInput struct {
	ReceiverID string
	Subject    string
	Content    string
}

// ConversationSummary is one inbox row: the counterparty, the latest message,
// and how many of its messages the viewer has not read yet.
type ConversationSummary struct {
	ConversationID string
	CounterpartyID string
	LastMessage    *domain.Message
	UnreadCount    int
}

// MessageService covers direct messaging and conversation threading.
type MessageService interface {
	Send(ctx context.Context, identity Identity, input SendMessageInput) (*domain.Message, error)
	ListConversations(ctx context.Context, identity Identity) ([]ConversationSummary, error)
	// GetConversation returns the thread oldest-first and atomically marks
	// every message addressed to the caller as read.
	GetConversation(ctx context.Context, identity Identity, conversationID string) ([]*domain.Message, error)
	UnreadCount(ctx context.Context, identity Identity) (int64, error)
}
