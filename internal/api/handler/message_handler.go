package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fedmatch/marketplace/internal/api/metrics"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

type MessageHandler struct {
	messageService ports.MessageService
}

func NewMessageHandler(messageService ports.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send handles POST /v1/messages.
func (h *MessageHandler) Send(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	msg, err := h.messageService.Send(c.Request().Context(), identity, ports.SendMessageInput{
		ReceiverID: req.ReceiverID,
		Subject:    req.Subject,
		Content:    req.Content,
	})
	if err != nil {
		return err
	}

	metrics.MessagesSentTotal.Inc()
	return c.JSON(http.StatusCreated, msg)
}

// ListConversations handles GET /v1/conversations.
func (h *MessageHandler) ListConversations(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	summaries, err := h.messageService.ListConversations(c.Request().Context(), identity)
	if err != nil {
		return err
	}

	out := make([]conversationSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, conversationSummaryResponse{
			ConversationID: s.ConversationID,
			CounterpartyID: s.CounterpartyID,
			LastMessage:    s.LastMessage,
			UnreadCount:    s.UnreadCount,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// GetConversation handles GET /v1/conversations/:id. Opening a thread marks
// the caller's side read.
func (h *MessageHandler) GetConversation(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	msgs, err := h.messageService.GetConversation(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

// UnreadCount handles GET /v1/messages/unread.
func (h *MessageHandler) UnreadCount(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	n, err := h.messageService.UnreadCount(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadCountResponse{Unread: n})
}
