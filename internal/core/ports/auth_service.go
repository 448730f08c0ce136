package ports

import (
	"context"

	"github.com/fedmatch/marketplace/internal/core/domain"
)

// RegisterInput carries sign-up data. The contractor fields are only read
// when AccountType is "contractor".
type RegisterInput struct {
	Email       string
	Password    string
	FullName    string
	CompanyName string
	AccountType string
	Phone       string
	Location    string

	NAICSCodes     []string
	Certifications []string
	ServiceAreas   []string
	Description    string
}

// AuthService implements sign-up and sign-in against the profile store.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Profile, error)
	// Login returns a signed token and the authenticated profile.
	Login(ctx context.Context, email, password string) (string, *domain.Profile, error)
}
