package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/matching"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

// SavedOpportunityService is the idempotent bookmark toggle. The saved state
// converges to the same value everywhere because it is derived from the join
// row's existence, never cached per view.
type SavedOpportunityService struct {
	saved         ports.SavedOpportunityRepository
	opportunities ports.OpportunityRepository
	logger        zerolog.Logger

	now func() time.Time
}

func NewSavedOpportunityService(
	saved ports.SavedOpportunityRepository,
	opportunities ports.OpportunityRepository,
	logger zerolog.Logger,
) *SavedOpportunityService {
	return &SavedOpportunityService{
		saved:         saved,
		opportunities: opportunities,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Toggle flips the bookmark and reports the resulting state: true when the
// row now exists. If the underlying write fails the state is unchanged and
// the error surfaces, so a caller never sees "saved" that did not persist.
func (s *SavedOpportunityService) Toggle(ctx context.Context, identity ports.Identity, opportunityID string) (bool, error) {
	if _, err := s.opportunities.FindByID(ctx, opportunityID); err != nil {
		return false, err
	}

	exists, err := s.saved.Exists(ctx, identity.ProfileID, opportunityID)
	if err != nil {
		return false, err
	}

	if exists {
		if err := s.saved.Delete(ctx, identity.ProfileID, opportunityID); err != nil {
			return true, err
		}
		return false, nil
	}

	row := &domain.SavedOpportunity{
		ProfileID:     identity.ProfileID,
		OpportunityID: opportunityID,
		SavedAt:       s.now(),
	}
	if err := s.saved.Insert(ctx, row); err != nil {
		return false, err
	}
	return true, nil
}

// List returns the caller's bookmarked listings, newest first.
func (s *SavedOpportunityService) List(ctx context.Context, identity ports.Identity) ([]ports.OpportunityView, error) {
	rows, err := s.saved.ListByProfile(ctx, identity.ProfileID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	opps := make([]*domain.Opportunity, 0, len(rows))
	for _, r := range rows {
		opp, err := s.opportunities.FindByID(ctx, r.OpportunityID)
		if err != nil {
			// the listing may have been deleted by its poster; drop the row
			s.logger.Debug().Str("opportunity_id", r.OpportunityID).Msg("saved opportunity no longer exists")
			continue
		}
		opps = append(opps, opp)
	}
	matching.SortNewestFirst(opps)

	views := make([]ports.OpportunityView, 0, len(opps))
	for _, opp := range opps {
		views = append(views, ports.OpportunityView{
			Opportunity: opp,
			Urgent:      matching.IsUrgent(opp.SubmissionDeadline, now),
			Saved:       true,
		})
	}
	return views, nil
}
