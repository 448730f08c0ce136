package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

// BidService implements bid submission and the poster's review workflow.
type BidService struct {
	bids          ports.BidRepository
	opportunities ports.OpportunityRepository
	contractors   ports.ContractorRepository
	logger        zerolog.Logger

	now func() time.Time
}

func NewBidService(
	bids ports.BidRepository,
	opportunities ports.OpportunityRepository,
	contractors ports.ContractorRepository,
	logger zerolog.Logger,
) *BidService {
	return &BidService{
		bids:          bids,
		opportunities: opportunities,
		contractors:   contractors,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Submit records a contractor's response to an opportunity. Procurement
// listings require an amount; teaming listings are expressions of interest
// and any amount sent is dropped. One bid per contractor per opportunity.
func (s *BidService) Submit(ctx context.Context, identity ports.Identity, input ports.SubmitBidInput) (*domain.Bid, error) {
	if !identity.IsContractor() {
		return nil, domain.ErrContractorOnly
	}

	opp, err := s.opportunities.FindByID(ctx, input.OpportunityID)
	if err != nil {
		return nil, err
	}
	if !opp.Biddable(s.now()) {
		return nil, domain.ErrOpportunityClosed
	}

	amount := input.Amount
	switch opp.Type {
	case domain.TypeProcurement:
		if amount == nil || *amount <= 0 {
			return nil, domain.ErrAmountRequired
		}
	case domain.TypeTeaming:
		amount = nil
	}

	if existing, err := s.bids.FindByOpportunityAndContractor(ctx, input.OpportunityID, identity.ProfileID); err == nil && existing != nil {
		return nil, domain.ErrDuplicateBid
	}

	// Snapshot the contractor's certifications at submission time so later
	// profile edits don't rewrite past bids.
	var certs []string
	if cp, err := s.contractors.FindByProfileID(ctx, identity.ProfileID); err == nil {
		certs = cp.Certifications
	}

	bid := &domain.Bid{
		ID:             uuid.NewString(),
		OpportunityID:  input.OpportunityID,
		ContractorID:   identity.ProfileID,
		Amount:         amount,
		Summary:        input.Summary,
		Certifications: certs,
		Status:         domain.BidPending,
		SubmittedAt:    s.now(),
	}

	if err := s.bids.Create(ctx, bid); err != nil {
		s.logger.Error().Err(err).Str("opportunity_id", input.OpportunityID).Msg("failed to create bid")
		return nil, err
	}

	s.logger.Info().
		Str("bid_id", bid.ID).
		Str("opportunity_id", input.OpportunityID).
		Str("contractor_id", identity.ProfileID).
		Msg("bid submitted")
	return bid, nil
}

// ListForOpportunity returns the responses on a listing, poster only.
func (s *BidService) ListForOpportunity(ctx context.Context, identity ports.Identity, opportunityID string) (*ports.OpportunityBids, error) {
	opp, err := s.opportunities.FindByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if opp.PostedBy != identity.ProfileID {
		return nil, domain.ErrForbidden
	}

	bids, err := s.bids.ListByOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	return &ports.OpportunityBids{Bids: bids, Count: int64(len(bids))}, nil
}

func (s *BidService) ListMine(ctx context.Context, identity ports.Identity) ([]*domain.Bid, error) {
	if !identity.IsContractor() {
		return nil, domain.ErrContractorOnly
	}
	return s.bids.ListByContractor(ctx, identity.ProfileID)
}

// UpdateStatus transitions a pending bid, poster only. Awarding a bid
// rejects every other pending bid on the same opportunity so at most one
// accepted bid exists per listing.
func (s *BidService) UpdateStatus(ctx context.Context, identity ports.Identity, bidID string, status string) (*domain.Bid, error) {
	next := domain.BidStatus(status)
	if next != domain.BidAccepted && next != domain.BidRejected {
		return nil, domain.ErrInvalidTransition
	}

	bid, err := s.bids.FindByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	opp, err := s.opportunities.FindByID(ctx, bid.OpportunityID)
	if err != nil {
		return nil, err
	}
	if opp.PostedBy != identity.ProfileID {
		return nil, domain.ErrForbidden
	}

	if !bid.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.bids.UpdateStatus(ctx, bidID, next); err != nil {
		s.logger.Error().Err(err).Str("bid_id", bidID).Msg("failed to update bid status")
		return nil, err
	}
	bid.Status = next

	if next == domain.BidAccepted {
		if err := s.bids.RejectOtherPending(ctx, bid.OpportunityID, bidID); err != nil {
			s.logger.Error().Err(err).Str("opportunity_id", bid.OpportunityID).Msg("failed to reject competing bids")
		}
	}

	s.logger.Info().Str("bid_id", bidID).Str("status", status).Msg("bid status updated")
	return bid, nil
}
