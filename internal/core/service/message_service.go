package service

import (
	"context"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

const previewLen = 120

// MessageService implements direct messaging and conversation threading.
// Sent messages are pushed onto the receiver's inbox feed so open clients
// observe them without a manual refresh.
type MessageService struct {
	messages ports.MessageRepository
	profiles ports.ProfileRepository
	inbox    ports.InboxPublisher
	logger   zerolog.Logger

	now func() time.Time
}

func NewMessageService(
	messages ports.MessageRepository,
	profiles ports.ProfileRepository,
	inbox ports.InboxPublisher,
	logger zerolog.Logger,
) *MessageService {
	return &MessageService{
		messages: messages,
		profiles: profiles,
		inbox:    inbox,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Send persists the message and publishes a best-effort push notice on the
// receiver's feed. The push never fails the write.
func (s *MessageService) Send(ctx context.Context, identity ports.Identity, input ports.SendMessageInput) (*domain.Message, error) {
	if input.ReceiverID == "" || input.Content == "" || input.ReceiverID == identity.ProfileID {
		return nil, domain.ErrInvalidMessage
	}
	if _, err := s.profiles.FindByID(ctx, input.ReceiverID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: domain.ConversationID(identity.ProfileID, input.ReceiverID),
		SenderID:       identity.ProfileID,
		ReceiverID:     input.ReceiverID,
		Subject:        input.Subject,
		Content:        input.Content,
		Read:           false,
		CreatedAt:      s.now(),
	}

	if err := s.messages.Insert(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("receiver_id", input.ReceiverID).Msg("failed to insert message")
		return nil, err
	}

	notice := ports.InboxNotice{
		MessageID:      msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Subject:        msg.Subject,
		Preview:        preview(msg.Content),
		CreatedAt:      msg.CreatedAt,
	}
	if err := s.inbox.Publish(ctx, msg.ReceiverID, notice); err != nil {
		s.logger.Warn().Err(err).Str("receiver_id", msg.ReceiverID).Msg("inbox push failed")
	}

	return msg, nil
}

// ListConversations groups the caller's flat message history into
// per-counterparty summaries with unread counts, most recent first.
func (s *MessageService) ListConversations(ctx context.Context, identity ports.Identity) ([]ports.ConversationSummary, error) {
	msgs, err := s.messages.ListByParticipant(ctx, identity.ProfileID)
	if err != nil {
		return nil, err
	}

	byConversation := make(map[string]*ports.ConversationSummary)
	for _, m := range msgs {
		summary, ok := byConversation[m.ConversationID]
		if !ok {
			summary = &ports.ConversationSummary{
				ConversationID: m.ConversationID,
				CounterpartyID: m.Counterparty(identity.ProfileID),
			}
			byConversation[m.ConversationID] = summary
		}
		if summary.LastMessage == nil || m.CreatedAt.After(summary.LastMessage.CreatedAt) {
			summary.LastMessage = m
		}
		if m.ReceiverID == identity.ProfileID && !m.Read {
			summary.UnreadCount++
		}
	}

	summaries := make([]ports.ConversationSummary, 0, len(byConversation))
	for _, s := range byConversation {
		summaries = append(summaries, *s)
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastMessage.CreatedAt.After(summaries[j].LastMessage.CreatedAt)
	})
	return summaries, nil
}

// GetConversation returns the thread oldest-first and marks every message
// addressed to the caller read in one store operation, so no partial-read
// state is ever visible.
func (s *MessageService) GetConversation(ctx context.Context, identity ports.Identity, conversationID string) ([]*domain.Message, error) {
	msgs, err := s.messages.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	participant := false
	for _, m := range msgs {
		if m.SenderID == identity.ProfileID || m.ReceiverID == identity.ProfileID {
			participant = true
			break
		}
	}
	if len(msgs) > 0 && !participant {
		return nil, domain.ErrForbidden
	}

	if err := s.messages.MarkConversationRead(ctx, conversationID, identity.ProfileID); err != nil {
		s.logger.Error().Err(err).Str("conversation_id", conversationID).Msg("failed to mark conversation read")
		return nil, err
	}
	for _, m := range msgs {
		if m.ReceiverID == identity.ProfileID {
			m.Read = true
		}
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}

func (s *MessageService) UnreadCount(ctx context.Context, identity ports.Identity) (int64, error) {
	return s.messages.CountUnread(ctx, identity.ProfileID)
}

// preview truncates on a rune boundary so a multi-byte character straddling
// the cut never leaks invalid UTF-8 into the push payload.
func preview(content string) string {
	if len(content) <= previewLen {
		return content
	}
	cut := previewLen
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut]
}
