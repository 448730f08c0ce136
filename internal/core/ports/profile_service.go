package ports

import (
	"context"

	"github.com/fedmatch/marketplace/internal/core/domain"
)

// UpdateProfileInput carries the mutable identity fields. Account type is
// immutable and deliberately absent.
type UpdateProfileInput struct {
	FullName    string
	CompanyName string
	Phone       string
	Location    string
}

// UpdateContractorInput carries the mutable contractor-extension fields.
type UpdateContractorInput struct {
	NAICSCodes     []string
	Certifications []string
	ServiceAreas   []string
	Description    string
}

// ProfileView bundles a profile with its contractor extension when present.
type ProfileView struct {
	Profile    *domain.Profile
	Contractor *domain.ContractorProfile // nil for procurement accounts
}

// ProfileService covers self-service profile reads and owner-only updates.
type ProfileService interface {
	Get(ctx context.Context, identity Identity) (*ProfileView, error)
	Update(ctx context.Context, identity Identity, input UpdateProfileInput) (*domain.Profile, error)
	UpdateContractor(ctx context.Context, identity Identity, input UpdateContractorInput) (*domain.ContractorProfile, error)
}

// ContractorFilterInput carries the directory filter criteria as received
// from the transport layer.
type ContractorFilterInput struct {
	NAICS         string
	Certification string
	Location      string
	MinRating     float64
	Query         string
}

// ContractorView is a directory entry: public identity plus capabilities.
type ContractorView struct {
	ProfileID      string
	CompanyName    string
	FullName       string
	Location       string
	NAICSCodes     []string
	Certifications []string
	ServiceAreas   []string
	Rating         float64
	Description    string
}

// ContractorService serves the contractor directory.
type ContractorService interface {
	List(ctx context.Context, filter ContractorFilterInput) ([]ContractorView, error)
	Get(ctx context.Context, profileID string) (*ContractorView, error)
}
