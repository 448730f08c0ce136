package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/matching"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

// ContractorService serves the contractor directory. Filters are applied in
// memory over the fetched snapshot by the matching engine; the collection is
// small enough that pushing predicates into the store is a scale concern,
// not a correctness one.
type ContractorService struct {
	profiles    ports.ProfileRepository
	contractors ports.ContractorRepository
	logger      zerolog.Logger
}

func NewContractorService(profiles ports.ProfileRepository, contractors ports.ContractorRepository, logger zerolog.Logger) *ContractorService {
	return &ContractorService{profiles: profiles, contractors: contractors, logger: logger}
}

func (s *ContractorService) List(ctx context.Context, filter ports.ContractorFilterInput) ([]ports.ContractorView, error) {
	extensions, err := s.contractors.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list contractors")
		return nil, err
	}

	pred := matching.ContractorFilter{
		NAICS:         filter.NAICS,
		Certification: filter.Certification,
		Location:      filter.Location,
		MinRating:     filter.MinRating,
		Query:         filter.Query,
	}

	views := make([]ports.ContractorView, 0, len(extensions))
	for _, cp := range extensions {
		profile, err := s.profiles.FindByID(ctx, cp.ProfileID)
		if err != nil {
			// orphaned extension rows are skipped, not fatal
			s.logger.Warn().Err(err).Str("profile_id", cp.ProfileID).Msg("contractor without profile")
			continue
		}
		if !pred.Matches(profile, cp) {
			continue
		}
		views = append(views, toContractorView(profile, cp))
	}

	sort.SliceStable(views, func(i, j int) bool { return views[i].Rating > views[j].Rating })
	return views, nil
}

func (s *ContractorService) Get(ctx context.Context, profileID string) (*ports.ContractorView, error) {
	cp, err := s.contractors.FindByProfileID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	view := toContractorView(profile, cp)
	return &view, nil
}

func toContractorView(p *domain.Profile, cp *domain.ContractorProfile) ports.ContractorView {
	return ports.ContractorView{
		ProfileID:      p.ID,
		CompanyName:    p.CompanyName,
		FullName:       p.FullName,
		Location:       p.Location,
		NAICSCodes:     cp.NAICSCodes,
		Certifications: cp.Certifications,
		ServiceAreas:   cp.ServiceAreas,
		Rating:         cp.Rating,
		Description:    cp.Description,
	}
}
