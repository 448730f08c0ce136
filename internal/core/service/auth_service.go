package service

import (
	"context"
	"net/mail"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

const minPasswordLen = 8

// AuthService implements registration and login over the profile store.
type AuthService struct {
	profiles    ports.ProfileRepository
	contractors ports.ContractorRepository
	jwtSecret   string
	tokenTTL    time.Duration
	logger      zerolog.Logger
}

func NewAuthService(
	profiles ports.ProfileRepository,
	contractors ports.ContractorRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		profiles:    profiles,
		contractors: contractors,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// Register creates a Profile and, for contractor accounts, its
// ContractorProfile extension in the same operation.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Profile, error) {
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if len(input.Password) < minPasswordLen {
		return nil, domain.ErrInvalidCredentials
	}
	accountType := domain.AccountType(input.AccountType)
	if !accountType.Valid() {
		return nil, domain.ErrInvalidAccountType
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

	if existing, err := s.profiles.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, domain.ErrProfileExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		CompanyName:  input.CompanyName,
		AccountType:  accountType,
		Phone:        input.Phone,
		Location:     input.Location,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to create profile")
		return nil, err
	}

	if accountType == domain.AccountContractor {
		extension := &domain.ContractorProfile{
			ProfileID:      profile.ID,
			NAICSCodes:     domain.DedupeStrings(input.NAICSCodes),
			Certifications: domain.DedupeStrings(input.Certifications),
			ServiceAreas:   domain.DedupeStrings(input.ServiceAreas),
			Description:    input.Description,
			UpdatedAt:      now,
		}
		if err := s.contractors.Create(ctx, extension); err != nil {
			s.logger.Error().Err(err).Str("profile_id", profile.ID).Msg("failed to create contractor profile")
			return nil, err
		}
	}

	s.logger.Info().Str("profile_id", profile.ID).Str("account_type", string(accountType)).Msg("profile registered")
	return profile, nil
}

// Login verifies credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	profile, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(profile)
	if err != nil {
		return "", nil, err
	}

	return token, profile, nil
}

func (s *AuthService) generateToken(p *domain.Profile) (string, error) {
	claims := jwt.MapClaims{
		"profile_id":   p.ID,
		"account_type": string(p.AccountType),
		"email":        p.Email,
		"exp":          time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
