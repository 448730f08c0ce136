package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fedmatch/marketplace/internal/api/metrics"
	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

type eventResponse struct {
	*domain.Event
	Registered bool `json:"registered"`
}

type EventHandler struct {
	eventService ports.EventService
}

func NewEventHandler(eventService ports.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List handles GET /v1/events. Upcoming events only, soonest first.
func (h *EventHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	views, err := h.eventService.List(c.Request().Context(), identity, ports.ListEventsInput{
		Type:  c.QueryParam("type"),
		Query: c.QueryParam("q"),
	})
	if err != nil {
		return err
	}

	out := make([]eventResponse, 0, len(views))
	for _, v := range views {
		out = append(out, eventResponse{Event: v.Event, Registered: v.Registered})
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.eventService.Get(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventResponse{Event: view.Event, Registered: view.Registered})
}

// Register handles POST /v1/events/:id/register.
func (h *EventHandler) Register(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.eventService.Register(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}

	metrics.EventRegistrationsTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Unregister handles DELETE /v1/events/:id/register.
func (h *EventHandler) Unregister(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.eventService.Unregister(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRegistered handles GET /v1/events/registrations.
func (h *EventHandler) ListRegistered(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	events, err := h.eventService.ListRegistered(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
