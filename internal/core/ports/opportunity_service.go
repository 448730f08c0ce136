package ports

import (
	"context"
	"time"

	"github.com/fedmatch/marketplace/internal/core/domain"
)

// CreateOpportunityInput carries the data for posting a listing.
type CreateOpportunityInput struct {
	Title              string
	Description        string
	NAICSCodes         []string
	Location           string
	BudgetMin          *float64
	BudgetMax          *float64
	SubmissionDeadline time.Time
	Type               string
}

// UpdateOpportunityInput carries poster-editable fields. Status lets the
// poster close a listing.
type UpdateOpportunityInput struct {
	Title              string
	Description        string
	NAICSCodes         []string
	Location           string
	BudgetMin          *float64
	BudgetMax          *float64
	SubmissionDeadline time.Time
	Status             string
}

// ListOpportunitiesInput is the criteria object a view sends for a listing.
type ListOpportunitiesInput struct {
	Query string
	Type  string
}

// OpportunityView is a listing annotated for one viewer: urgency is a render-
// time derivation and Saved reflects the viewer's bookmark set.
type OpportunityView struct {
	Opportunity *domain.Opportunity
	Urgent      bool
	Saved       bool
	BidCount    int64 // populated on detail views for the poster
}

// OpportunityService covers posting, listing, and viewing listings.
type OpportunityService interface {
	Create(ctx context.Context, identity Identity, input CreateOpportunityInput) (*domain.Opportunity, error)
	Update(ctx context.Context, identity Identity, id string, input UpdateOpportunityInput) (*domain.Opportunity, error)
	Delete(ctx context.Context, identity Identity, id string) error
	Get(ctx context.Context, identity Identity, id string) (*OpportunityView, error)
	// List returns open listings filtered by the criteria, newest first.
	List(ctx context.Context, identity Identity, input ListOpportunitiesInput) ([]OpportunityView, error)
	// ListMine returns the caller's own listings regardless of status.
	ListMine(ctx context.Context, identity Identity) ([]OpportunityView, error)
}

// SavedOpportunityService is the idempotent per-user bookmark toggle.
type SavedOpportunityService interface {
	// Toggle flips the saved state and returns the resulting value.
	Toggle(ctx context.Context, identity Identity, opportunityID string) (bool, error)
	List(ctx context.Context, identity Identity) ([]OpportunityView, error)
}
