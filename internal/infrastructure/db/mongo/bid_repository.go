package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fedmatch/marketplace/internal/core/domain"
)

const collectionBids = "bids"

type BidRepository struct {
	col *mongo.Collection
}

func NewBidRepository(db *mongo.Database) *BidRepository {
	return &BidRepository{col: db.Collection(collectionBids)}
}

func (r *BidRepository) Create(ctx context.Context, b *domain.Bid) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateBid
		}
		return fmt.Errorf("insert bid: %w", err)
	}
	return nil
}

func (r *BidRepository) FindByID(ctx context.Context, id string) (*domain.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.Bid
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBidNotFound
		}
		return nil, fmt.Errorf("find bid: %w", err)
	}
	return &b, nil
}

func (r *BidRepository) FindByOpportunityAndContractor(ctx context.Context, opportunityID, contractorID string) (*domain.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.Bid
	err := r.col.FindOne(ctx, bson.M{
		"opportunity_id": opportunityID,
		"contractor_id":  contractorID,
	}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBidNotFound
		}
		return nil, fmt.Errorf("find bid by opportunity and contractor: %w", err)
	}
	return &b, nil
}

func (r *BidRepository) ListByOpportunity(ctx context.Context, opportunityID string) ([]*domain.Bid, error) {
	return r.list(ctx, bson.M{"opportunity_id": opportunityID})
}

func (r *BidRepository) ListByContractor(ctx context.Context, contractorID string) ([]*domain.Bid, error) {
	return r.list(ctx, bson.M{"contractor_id": contractorID})
}

func (r *BidRepository) list(ctx context.Context, filter bson.M) ([]*domain.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Bid
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode bids: %w", err)
	}
	return out, nil
}

func (r *BidRepository) UpdateStatus(ctx context.Context, id string, status domain.BidStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update bid status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBidNotFound
	}
	return nil
}

// RejectOtherPending sweeps the remaining pending bids on an awarded
// opportunity in a single multi-update.
func (r *BidRepository) RejectOtherPending(ctx context.Context, opportunityID, exceptBidID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateMany(ctx, bson.M{
		"opportunity_id": opportunityID,
		"status":         domain.BidPending,
		"_id":            bson.M{"$ne": exceptBidID},
	}, bson.M{"$set": bson.M{"status": domain.BidRejected}})
	if err != nil {
		return fmt.Errorf("reject pending bids: %w", err)
	}
	return nil
}

func (r *BidRepository) CountByOpportunity(ctx context.Context, opportunityID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"opportunity_id": opportunityID})
	if err != nil {
		return 0, fmt.Errorf("count bids: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the one-bid-per-contractor unique index plus the
// listing indexes.
func (r *BidRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "opportunity_id", Value: 1}, {Key: "contractor_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "contractor_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
