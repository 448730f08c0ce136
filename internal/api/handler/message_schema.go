package handler

import "github.com/fedmatch/marketplace/internal/core/domain"

type sendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	Subject    string `json:"subject"`
	Content    string `json:"content"     validate:"required"`
}

type conversationSummaryResponse struct {
	ConversationID string          `json:"conversation_id"`
	CounterpartyID string          `json:"counterparty_id"`
	LastMessage    *domain.Message `json:"last_message"`
	UnreadCount    int             `json:"unread_count"`
}

type unreadCountResponse struct {
	Unread int64 `json:"unread"`
}
