package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

// EventService implements event browsing and registration. The attendee
// counter is only ever changed through the repository's atomic increment so
// concurrent registrations cannot lose updates.
type EventService struct {
	events ports.EventRepository
	logger zerolog.Logger

	now func() time.Time
}

func NewEventService(events ports.EventRepository, logger zerolog.Logger) *EventService {
	return &EventService{
		events: events,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *EventService) List(ctx context.Context, identity ports.Identity, input ports.ListEventsInput) ([]ports.EventView, error) {
	events, err := s.events.ListUpcoming(ctx, ports.ListEventsFilter{
		Type:  input.Type,
		Query: input.Query,
		From:  s.now(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list events")
		return nil, err
	}

	registered := s.registeredSet(ctx, identity.ProfileID)
	views := make([]ports.EventView, 0, len(events))
	for _, e := range events {
		_, isRegistered := registered[e.ID]
		views = append(views, ports.EventView{Event: e, Registered: isRegistered})
	}
	return views, nil
}

func (s *EventService) Get(ctx context.Context, identity ports.Identity, id string) (*ports.EventView, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &ports.EventView{Event: event}
	if _, err := s.events.FindRegistration(ctx, identity.ProfileID, id); err == nil {
		view.Registered = true
	}
	return view, nil
}

// Register creates the join row and bumps the attendee counter atomically.
// The capacity guard lives in the increment itself: if the event is full the
// counter is untouched and the join row is compensated away.
func (s *EventService) Register(ctx context.Context, identity ports.Identity, eventID string) error {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return err
	}
	if _, err := s.events.FindRegistration(ctx, identity.ProfileID, eventID); err == nil {
		return domain.ErrAlreadyRegistered
	}

	reg := &domain.EventRegistration{
		ProfileID:    identity.ProfileID,
		EventID:      eventID,
		RegisteredAt: s.now(),
	}
	if err := s.events.InsertRegistration(ctx, reg); err != nil {
		return err
	}

	if err := s.events.IncrementAttendees(ctx, eventID, 1); err != nil {
		// roll the join row back so a full event never shows the caller as registered
		if delErr := s.events.DeleteRegistration(ctx, identity.ProfileID, eventID); delErr != nil {
			s.logger.Error().Err(delErr).Str("event_id", eventID).Msg("failed to compensate registration")
		}
		if errors.Is(err, domain.ErrEventFull) {
			return domain.ErrEventFull
		}
		return err
	}

	s.logger.Info().Str("event_id", eventID).Str("profile_id", identity.ProfileID).Msg("event registration created")
	return nil
}

func (s *EventService) Unregister(ctx context.Context, identity ports.Identity, eventID string) error {
	reg, err := s.events.FindRegistration(ctx, identity.ProfileID, eventID)
	if err != nil {
		return domain.ErrRegistrationNotFound
	}
	if err := s.events.DeleteRegistration(ctx, identity.ProfileID, eventID); err != nil {
		return err
	}
	if err := s.events.IncrementAttendees(ctx, eventID, -1); err != nil {
		// restore the join row so the counter and registrations stay in step
		if insErr := s.events.InsertRegistration(ctx, reg); insErr != nil {
			s.logger.Error().Err(insErr).Str("event_id", eventID).Msg("failed to compensate unregistration")
		}
		return err
	}
	return nil
}

func (s *EventService) ListRegistered(ctx context.Context, identity ports.Identity) ([]*domain.Event, error) {
	regs, err := s.events.ListRegistrationsByProfile(ctx, identity.ProfileID)
	if err != nil {
		return nil, err
	}

	events := make([]*domain.Event, 0, len(regs))
	for _, r := range regs {
		e, err := s.events.FindByID(ctx, r.EventID)
		if err != nil {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func (s *EventService) registeredSet(ctx context.Context, profileID string) map[string]struct{} {
	regs, err := s.events.ListRegistrationsByProfile(ctx, profileID)
	if err != nil {
		return nil
	}
	set := make(map[string]struct{}, len(regs))
	for _, r := range regs {
		set[r.EventID] = struct{}{}
	}
	return set
}
