package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

const (
	collectionOpportunities = "opportunities"
	collectionSaved         = "saved_opportunities"
)

type OpportunityRepository struct {
	col *mongo.Collection
}

func NewOpportunityRepository(db *mongo.Database) *OpportunityRepository {
	return &OpportunityRepository{col: db.Collection(collectionOpportunities)}
}

func (r *OpportunityRepository) Create(ctx context.Context, o *domain.Opportunity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("insert opportunity: %w", err)
	}
	return nil
}

func (r *OpportunityRepository) FindByID(ctx context.Context, id string) (*domain.Opportunity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.Opportunity
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("find opportunity: %w", err)
	}
	return &o, nil
}

func (r *OpportunityRepository) Update(ctx context.Context, o *domain.Opportunity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return fmt.Errorf("update opportunity: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOpportunityNotFound
	}
	return nil
}

func (r *OpportunityRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete opportunity: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOpportunityNotFound
	}
	return nil
}

// List fetches by the equality scopes only; free-text search and ordering
// are applied by the caller.
func (r *OpportunityRepository) List(ctx context.Context, filter ports.ListOpportunitiesFilter) ([]*domain.Opportunity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.PostedBy != "" {
		query["posted_by"] = filter.PostedBy
	}

	cur, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Opportunity
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode opportunities: %w", err)
	}
	return out, nil
}

func (r *OpportunityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "posted_by", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

type SavedOpportunityRepository struct {
	col *mongo.Collection
}

func NewSavedOpportunityRepository(db *mongo.Database) *SavedOpportunityRepository {
	return &SavedOpportunityRepository{col: db.Collection(collectionSaved)}
}

func (r *SavedOpportunityRepository) Exists(ctx context.Context, profileID, opportunityID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{
		"profile_id":     profileID,
		"opportunity_id": opportunityID,
	})
	if err != nil {
		return false, fmt.Errorf("saved exists: %w", err)
	}
	return n > 0, nil
}

func (r *SavedOpportunityRepository) Insert(ctx context.Context, s *domain.SavedOpportunity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, s); err != nil {
		// a concurrent toggle may have raced us; the row exists either way
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert saved opportunity: %w", err)
	}
	return nil
}

func (r *SavedOpportunityRepository) Delete(ctx context.Context, profileID, opportunityID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{
		"profile_id":     profileID,
		"opportunity_id": opportunityID,
	}); err != nil {
		return fmt.Errorf("delete saved opportunity: %w", err)
	}
	return nil
}

func (r *SavedOpportunityRepository) ListByProfile(ctx context.Context, profileID string) ([]*domain.SavedOpportunity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"profile_id": profileID})
	if err != nil {
		return nil, fmt.Errorf("list saved opportunities: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.SavedOpportunity
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode saved opportunities: %w", err)
	}
	return out, nil
}

func (r *SavedOpportunityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "profile_id", Value: 1}, {Key: "opportunity_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
