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

const (
	collectionProfiles    = "profiles"
	collectionContractors = "contractor_profiles"
)

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles)}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrProfileExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Profile
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Profile
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile by email: %w", err)
	}
	return &p, nil
}

// Update persists the mutable profile fields. account_type and
// password_hash are deliberately absent from the update document.
func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"full_name":    p.FullName,
		"company_name": p.CompanyName,
		"phone":        p.Phone,
		"location":     p.Location,
		"updated_at":   p.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email index on the profiles collection.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

type ContractorRepository struct {
	col *mongo.Collection
}

func NewContractorRepository(db *mongo.Database) *ContractorRepository {
	return &ContractorRepository{col: db.Collection(collectionContractors)}
}

func (r *ContractorRepository) Create(ctx context.Context, cp *domain.ContractorProfile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, cp); err != nil {
		return fmt.Errorf("insert contractor profile: %w", err)
	}
	return nil
}

func (r *ContractorRepository) FindByProfileID(ctx context.Context, profileID string) (*domain.ContractorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var cp domain.ContractorProfile
	if err := r.col.FindOne(ctx, bson.M{"_id": profileID}).Decode(&cp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContractorNotFound
		}
		return nil, fmt.Errorf("find contractor profile: %w", err)
	}
	return &cp, nil
}

func (r *ContractorRepository) Update(ctx context.Context, cp *domain.ContractorProfile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": cp.ProfileID}, bson.M{"$set": bson.M{
		"naics_codes":    cp.NAICSCodes,
		"certifications": cp.Certifications,
		"service_areas":  cp.ServiceAreas,
		"description":    cp.Description,
		"updated_at":     cp.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update contractor profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrContractorNotFound
	}
	return nil
}

func (r *ContractorRepository) ListAll(ctx context.Context) ([]*domain.ContractorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list contractors: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.ContractorProfile
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode contractors: %w", err)
	}
	return out, nil
}
