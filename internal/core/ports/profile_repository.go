package ports

import (
	"context"

	"github.com/fedmatch/marketplace/internal/core/domain"
)

// ProfileRepository defines persistence for identity records.
type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
	// Update persists mutable profile fields. AccountType is never written.
	Update(ctx context.Context, p *domain.Profile) error
}

// ContractorRepository defines persistence for the contractor extension
// record, keyed 1:1 by profile id.
type ContractorRepository interface {
	Create(ctx context.Context, cp *domain.ContractorProfile) error
	FindByProfileID(ctx context.Context, profileID string) (*domain.ContractorProfile, error)
	Update(ctx context.Context, cp *domain.ContractorProfile) error
	// ListAll returns every contractor extension record. Directory filters are
	// applied in memory by the matching engine; pushing them into the store is
	// a scalability decision, not a correctness one.
	ListAll(ctx context.Context) ([]*domain.ContractorProfile, error)
}
