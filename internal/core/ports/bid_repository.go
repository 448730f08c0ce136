package ports

import (
	"context"

	"github.com/fedmatch/marketplace/internal/core/domain"
)

// BidRepository defines persistence for bids.
type BidRepository interface {
	Create(ctx context.Context, b *domain.Bid) error
	FindByID(ctx context.Context, id string) (*domain.Bid, error)
	// FindByOpportunityAndContractor returns the contractor's existing bid on
	// an opportunity, or domain.ErrBidNotFound.
	FindByOpportunityAndContractor(ctx context.Context, opportunityID, contractorID string) (*domain.Bid, error)
	ListByOpportunity(ctx context.Context, opportunityID string) ([]*domain.Bid, error)
	ListByContractor(ctx context.Context, contractorID string) ([]*domain.Bid, error)
	UpdateStatus(ctx context.Context, id string, status domain.BidStatus) error
	// RejectOtherPending moves every pending bid on the opportunity except the
	// given one to rejected. Used when a bid is awarded.
	RejectOtherPending(ctx context.Context, opportunityID, exceptBidID string) error
	CountByOpportunity(ctx context.Context, opportunityID string) (int64, error)
}
