package ports

import (
	"context"

	"github.com/fedmatch/marketplace/internal/core/domain"
)

// ListEventsInput is the criteria object for the upcoming-events view.
type ListEventsInput struct {
	Type  string
	Query string
}

// EventView is an event annotated with the viewer's registration state.
type EventView struct {
	Event      *domain.Event
	Registered bool
}

// EventService covers browsing and registration.
type EventService interface {
	List(ctx context.Context, identity Identity, input ListEventsInput) ([]EventView, error)
	Get(ctx context.Context, identity Identity, id string) (*EventView, error)
	Register(ctx context.Context, identity Identity, eventID string) error
	Unregister(ctx context.Context, identity Identity, eventID string) error
	ListRegistered(ctx context.Context, identity Identity) ([]*domain.Event, error)
}
