package ports

import (
	"context"

	"github.com/fedmatch/marketplace/internal/core/domain"
)

// ListOpportunitiesFilter carries the store-side scoping for listing queries.
// Empty fields mean no constraint. Free-text search and urgency annotation
// are applied after the fetch by the matching engine.
type ListOpportunitiesFilter struct {
	Status   domain.OpportunityStatus // usually "open" for public listings
	Type     domain.OpportunityType   // optional type partition
	PostedBy string                   // scope to a single poster ("my listings")
}

// OpportunityRepository defines persistence for listings.
type OpportunityRepository interface {
	Create(ctx context.Context, o *domain.Opportunity) error
	FindByID(ctx context.Context, id string) (*domain.Opportunity, error)
	Update(ctx context.Context, o *domain.Opportunity) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListOpportunitiesFilter) ([]*domain.Opportunity, error)
}

// SavedOpportunityRepository is the (profile, opportunity) bookmark join.
type SavedOpportunityRepository interface {
	Exists(ctx context.Context, profileID, opportunityID string) (bool, error)
	Insert(ctx context.Context, s *domain.SavedOpportunity) error
	Delete(ctx context.Context, profileID, opportunityID string) error
	ListByProfile(ctx context.Context, profileID string) ([]*domain.SavedOpportunity, error)
}
