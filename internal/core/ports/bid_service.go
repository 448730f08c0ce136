package ports

import (
	"context"

	"github.com/fedmatch/marketplace/internal/core/domain"
)

// SubmitBidInput carries a contractor's response to an opportunity. Amount is
// required for procurement listings and ignored for teaming listings.
type SubmitBidInput struct {
	OpportunityID string
	Amount        *float64
	Summary       string
}

// OpportunityBids is the poster's aggregated view of responses.
type OpportunityBids struct {
	Bids  []*domain.Bid
	Count int64
}

// BidService covers bid submission and the poster's review workflow.
type BidService interface {
	Submit(ctx context.Context, identity Identity, input SubmitBidInput) (*domain.Bid, error)
	// ListForOpportunity is restricted to the opportunity poster.
	ListForOpportunity(ctx context.Context, identity Identity, opportunityID string) (*OpportunityBids, error)
	ListMine(ctx context.Context, identity Identity) ([]*domain.Bid, error)
	// UpdateStatus transitions a pending bid to accepted or rejected; only the
	// opportunity poster may call it. Awarding (accepted) rejects all other
	// pending bids on the same opportunity.
	UpdateStatus(ctx context.Context, identity Identity, bidID string, status string) (*domain.Bid, error)
}
