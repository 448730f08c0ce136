package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

// ProfileService implements self-service reads and owner-only updates.
type ProfileService struct {
	profiles    ports.ProfileRepository
	contractors ports.ContractorRepository
	logger      zerolog.Logger
}

func NewProfileService(profiles ports.ProfileRepository, contractors ports.ContractorRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, contractors: contractors, logger: logger}
}

func (s *ProfileService) Get(ctx context.Context, identity ports.Identity) (*ports.ProfileView, error) {
	profile, err := s.profiles.FindByID(ctx, identity.ProfileID)
	if err != nil {
		return nil, err
	}

	view := &ports.ProfileView{Profile: profile}
	if profile.AccountType == domain.AccountContractor {
		cp, err := s.contractors.FindByProfileID(ctx, identity.ProfileID)
		if err != nil {
			return nil, err
		}
		view.Contractor = cp
	}
	return view, nil
}

// Update writes the mutable identity fields. AccountType is never touched.
func (s *ProfileService) Update(ctx context.Context, identity ports.Identity, input ports.UpdateProfileInput) (*domain.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, identity.ProfileID)
	if err != nil {
		return nil, err
	}

	profile.FullName = input.FullName
	profile.CompanyName = input.CompanyName
	profile.Phone = input.Phone
	profile.Location = input.Location
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Update(ctx, profile); err != nil {
		s.logger.Error().Err(err).Str("profile_id", profile.ID).Msg("failed to update profile")
		return nil, err
	}
	return profile, nil
}

// UpdateContractor writes the contractor extension. Only the owning
// contractor account may call it.
func (s *ProfileService) UpdateContractor(ctx context.Context, identity ports.Identity, input ports.UpdateContractorInput) (*domain.ContractorProfile, error) {
	if !identity.IsContractor() {
		return nil, domain.ErrContractorOnly
	}
	for _, c := range input.Certifications {
		if !domain.Certification(c).Valid() {
			return nil, domain.ErrInvalidCertification
		}
	}
	for _, code := range input.NAICSCodes {
		if !domain.ValidNAICSCode(code) {
			return nil, domain.ErrInvalidNAICS
		}
	}

	cp, err := s.contractors.FindByProfileID(ctx, identity.ProfileID)
	if err != nil {
		return nil, err
	}

	cp.NAICSCodes = domain.DedupeStrings(input.NAICSCodes)
	cp.Certifications = domain.DedupeStrings(input.Certifications)
	cp.ServiceAreas = domain.DedupeStrings(input.ServiceAreas)
	cp.Description = input.Description
	cp.UpdatedAt = time.Now().UTC()

	if err := s.contractors.Update(ctx, cp); err != nil {
		s.logger.Error().Err(err).Str("profile_id", cp.ProfileID).Msg("failed to update contractor profile")
		return nil, err
	}
	return cp, nil
}
