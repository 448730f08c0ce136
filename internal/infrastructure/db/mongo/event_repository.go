package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

const (
	collectionEvents        = "events"
	collectionRegistrations = "event_registrations"
)

type EventRepository struct {
	events        *mongo.Collection
	registrations *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{
		events:        db.Collection(collectionEvents),
		registrations: db.Collection(collectionRegistrations),
	}
}

func (r *EventRepository) ListUpcoming(ctx context.Context, filter ports.ListEventsFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if !filter.From.IsZero() {
		query["date"] = bson.M{"$gte": filter.From.Truncate(24 * time.Hour)}
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Query != "" {
		pattern := primitiveRegex(filter.Query)
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"location": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cur, err := r.events.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Event
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return out, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.Event
	if err := r.events.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &e, nil
}

func (r *EventRepository) FindRegistration(ctx context.Context, profileID, eventID string) (*domain.EventRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var reg domain.EventRegistration
	err := r.registrations.FindOne(ctx, bson.M{
		"profile_id": profileID,
		"event_id":   eventID,
	}).Decode(&reg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return &reg, nil
}

func (r *EventRepository) InsertRegistration(ctx context.Context, reg *domain.EventRegistration) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.registrations.InsertOne(ctx, reg); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (r *EventRepository) DeleteRegistration(ctx context.Context, profileID, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.registrations.DeleteOne(ctx, bson.M{
		"profile_id": profileID,
		"event_id":   eventID,
	})
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

func (r *EventRepository) ListRegistrationsByProfile(ctx context.Context, profileID string) ([]*domain.EventRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.registrations.Find(ctx, bson.M{"profile_id": profileID})
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.EventRegistration
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}
	return out, nil
}

// IncrementAttendees applies the delta with a conditional update so the
// capacity check and the write are a single server-side operation. A
// positive delta that matches no document means either the event is gone or
// it is at capacity; the two are told apart with a second lookup.
func (r *EventRepository) IncrementAttendees(ctx context.Context, eventID string, delta int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": eventID}
	if delta > 0 {
		filter["$or"] = bson.A{
			bson.M{"max_attendees": bson.M{"$exists": false}},
			bson.M{"max_attendees": nil},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$attendees_count", "$max_attendees"}}},
		}
	}

	res, err := r.events.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"attendees_count": delta}})
	if err != nil {
		return fmt.Errorf("increment attendees: %w", err)
	}
	if res.MatchedCount == 0 {
		if delta > 0 {
			if _, findErr := r.FindByID(ctx, eventID); findErr != nil {
				return findErr
			}
			return domain.ErrEventFull
		}
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	if _, err := r.events.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}},
	}); err != nil {
		return err
	}
	_, err := r.registrations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "profile_id", Value: 1}, {Key: "event_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
