package handler

import "github.com/fedmatch/marketplace/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=8"`
	FullName    string `json:"full_name"    validate:"required"`
	CompanyName string `json:"company_name" validate:"required"`
	AccountType string `json:"account_type" validate:"required,oneof=contractor procurement"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`

	// contractor extension, read only when account_type is "contractor"
	NAICSCodes     []string `json:"naics_codes"`
	Certifications []string `json:"certifications"`
	ServiceAreas   []string `json:"service_areas"`
	Description    string   `json:"description"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token   string          `json:"token,omitempty"`
	Profile *domain.Profile `json:"profile,omitempty"`
}
