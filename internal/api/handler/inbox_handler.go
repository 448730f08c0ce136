package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fedmatch/marketplace/internal/api/metrics"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

const (
	inboxWriteWait = 10 * time.Second
	inboxPongWait  = 60 * time.Second
)

// InboxHandler bridges the Redis inbox feed to a websocket connection so an
// open client sees new messages without polling.
type InboxHandler struct {
	subscriber ports.InboxSubscriber
	upgrader   websocket.Upgrader
	logger     zerolog.Logger
}

func NewInboxHandler(subscriber ports.InboxSubscriber, logger zerolog.Logger) *InboxHandler {
	return &InboxHandler{
		subscriber: subscriber,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
		logger: logger,
	}
}

// Stream handles GET /v1/inbox/ws. The caller only ever receives their own
// feed: the channel is derived from the authenticated identity, never from
// request input.
func (h *InboxHandler) Stream(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	sub, err := h.subscriber.Subscribe(c.Request().Context(), identity.ProfileID)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "inbox feed unavailable")
	}
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// upgrade already wrote the response in most cases
		return nil
	}
	defer conn.Close()

	metrics.InboxConnectionsActive.Inc()
	defer metrics.InboxConnectionsActive.Dec()

	// reader goroutine: the client sends nothing meaningful, but reading is
	// what surfaces close frames and keeps pong handling alive
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = conn.SetReadDeadline(time.Now().Add(inboxPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(inboxPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return nil
		case notice, ok := <-sub.Notices():
			if !ok {
				return nil
			}
			payload, err := json.Marshal(notice)
			if err != nil {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(inboxWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.logger.Debug().Err(err).Str("profile_id", identity.ProfileID).Msg("inbox websocket write failed")
				return nil
			}
		}
	}
}
