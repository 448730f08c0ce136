package ports

import (
	"context"
	"time"

	"github.com/fedmatch/marketplace/internal/core/domain"
)

// ListEventsFilter scopes the upcoming-events query.
type ListEventsFilter struct {
	Type  string    // optional category
	Query string    // free text over title and location
	From  time.Time // events on or after this date; zero = today, set by service
}

// EventRepository defines persistence for events and registrations. The
// attendee counter is the only shared-mutable value in the system and must be
// changed with IncrementAttendees, never read-modify-write.
type EventRepository interface {
	ListUpcoming(ctx context.Context, filter ListEventsFilter) ([]*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)

	FindRegistration(ctx context.Context, profileID, eventID string) (*domain.EventRegistration, error)
	InsertRegistration(ctx context.Context, r *domain.EventRegistration) error
	DeleteRegistration(ctx context.Context, profileID, eventID string) error
	ListRegistrationsByProfile(ctx context.Context, profileID string) ([]*domain.EventRegistration, error)

	// IncrementAttendees atomically adds delta to the event's attendee counter
	// server-side. For positive delta the update only applies while the
	// counter is below max_attendees (when set); a capacity miss returns
	// domain.ErrEventFull.
	IncrementAttendees(ctx context.Context, eventID string, delta int) error
}
