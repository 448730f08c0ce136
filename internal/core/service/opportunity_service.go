package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/matching"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

// OpportunityService implements posting and listing. Listings fetched from
// the store are annotated per viewer (urgency, saved state) and sorted
// newest first before they reach the transport layer.
type OpportunityService struct {
	opportunities ports.OpportunityRepository
	saved         ports.SavedOpportunityRepository
	bids          ports.BidRepository
	logger        zerolog.Logger

	// now is the clock used for urgency annotation; overridable in tests.
	now func() time.Time
}

func NewOpportunityService(
	opportunities ports.OpportunityRepository,
	saved ports.SavedOpportunityRepository,
	bids ports.BidRepository,
	logger zerolog.Logger,
) *OpportunityService {
	return &OpportunityService{
		opportunities: opportunities,
		saved:         saved,
		bids:          bids,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Create posts a new listing. Only procurement accounts post.
func (s *OpportunityService) Create(ctx context.Context, identity ports.Identity, input ports.CreateOpportunityInput) (*domain.Opportunity, error) {
	if !identity.IsProcurement() {
		return nil, domain.ErrProcurementOnly
	}
	oppType := domain.OpportunityType(input.Type)
	if !oppType.Valid() {
		return nil, domain.ErrInvalidOpportunityType
	}
	if err := domain.ValidateBudget(input.BudgetMin, input.BudgetMax); err != nil {
		return nil, err
	}

	now := s.now()
	opp := &domain.Opportunity{
		ID:                 uuid.NewString(),
		Title:              input.Title,
		Description:        input.Description,
		NAICSCodes:         domain.DedupeStrings(input.NAICSCodes),
		Location:           input.Location,
		BudgetMin:          input.BudgetMin,
		BudgetMax:          input.BudgetMax,
		SubmissionDeadline: input.SubmissionDeadline,
		Type:               oppType,
		Status:             domain.StatusOpen,
		PostedBy:           identity.ProfileID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.opportunities.Create(ctx, opp); err != nil {
		s.logger.Error().Err(err).Str("posted_by", identity.ProfileID).Msg("failed to create opportunity")
		return nil, err
	}

	s.logger.Info().Str("opportunity_id", opp.ID).Str("type", string(oppType)).Msg("opportunity posted")
	return opp, nil
}

// Update applies poster edits, re-checking the budget invariant.
func (s *OpportunityService) Update(ctx context.Context, identity ports.Identity, id string, input ports.UpdateOpportunityInput) (*domain.Opportunity, error) {
	opp, err := s.opportunities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if opp.PostedBy != identity.ProfileID {
		return nil, domain.ErrForbidden
	}
	if err := domain.ValidateBudget(input.BudgetMin, input.BudgetMax); err != nil {
		return nil, err
	}

	opp.Title = input.Title
	opp.Description = input.Description
	opp.NAICSCodes = domain.DedupeStrings(input.NAICSCodes)
	opp.Location = input.Location
	opp.BudgetMin = input.BudgetMin
	opp.BudgetMax = input.BudgetMax
	opp.SubmissionDeadline = input.SubmissionDeadline
	if input.Status != "" {
		opp.Status = domain.OpportunityStatus(input.Status)
	}
	opp.UpdatedAt = s.now()

	if err := s.opportunities.Update(ctx, opp); err != nil {
		s.logger.Error().Err(err).Str("opportunity_id", id).Msg("failed to update opportunity")
		return nil, err
	}
	return opp, nil
}

func (s *OpportunityService) Delete(ctx context.Context, identity ports.Identity, id string) error {
	opp, err := s.opportunities.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if opp.PostedBy != identity.ProfileID {
		return domain.ErrForbidden
	}
	return s.opportunities.Delete(ctx, id)
}

// Get returns a single annotated listing. The poster additionally sees the
// bid count.
func (s *OpportunityService) Get(ctx context.Context, identity ports.Identity, id string) (*ports.OpportunityView, error) {
	opp, err := s.opportunities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := ports.OpportunityView{
		Opportunity: opp,
		Urgent:      matching.IsUrgent(opp.SubmissionDeadline, s.now()),
	}

	saved, err := s.saved.Exists(ctx, identity.ProfileID, id)
	if err == nil {
		view.Saved = saved
	}

	if opp.PostedBy == identity.ProfileID {
		if count, err := s.bids.CountByOpportunity(ctx, id); err == nil {
			view.BidCount = count
		}
	}

	return &view, nil
}

// List returns open listings matching the criteria, newest first.
func (s *OpportunityService) List(ctx context.Context, identity ports.Identity, input ports.ListOpportunitiesInput) ([]ports.OpportunityView, error) {
	opps, err := s.opportunities.List(ctx, ports.ListOpportunitiesFilter{Status: domain.StatusOpen})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list opportunities")
		return nil, err
	}
	return s.annotate(ctx, identity, opps, matching.OpportunityFilter{
		Query: input.Query,
		Type:  domain.OpportunityType(input.Type),
	})
}

// ListMine returns the caller's own listings regardless of status.
func (s *OpportunityService) ListMine(ctx context.Context, identity ports.Identity) ([]ports.OpportunityView, error) {
	opps, err := s.opportunities.List(ctx, ports.ListOpportunitiesFilter{PostedBy: identity.ProfileID})
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, identity, opps, matching.OpportunityFilter{})
}

// annotate filters the snapshot, sorts it, and derives the per-viewer flags.
func (s *OpportunityService) annotate(ctx context.Context, identity ports.Identity, opps []*domain.Opportunity, filter matching.OpportunityFilter) ([]ports.OpportunityView, error) {
	savedSet := s.savedSet(ctx, identity.ProfileID)
	now := s.now()

	matched := opps[:0:0]
	for _, o := range opps {
		if filter.Matches(o) {
			matched = append(matched, o)
		}
	}
	matching.SortNewestFirst(matched)

	views := make([]ports.OpportunityView, 0, len(matched))
	for _, o := range matched {
		_, isSaved := savedSet[o.ID]
		views = append(views, ports.OpportunityView{
			Opportunity: o,
			Urgent:      matching.IsUrgent(o.SubmissionDeadline, now),
			Saved:       isSaved,
		})
	}
	return views, nil
}

// savedSet is a pure lookup set of the viewer's bookmarked opportunity ids.
// A fetch failure degrades to "nothing saved" rather than failing the listing.
func (s *OpportunityService) savedSet(ctx context.Context, profileID string) map[string]struct{} {
	rows, err := s.saved.ListByProfile(ctx, profileID)
	if err != nil {
		s.logger.Warn().Err(err).Str("profile_id", profileID).Msg("failed to load saved set")
		return nil
	}
	set := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		set[r.OpportunityID] = struct{}{}
	}
	return set
}
