package handler

import "github.com/fedmatch/marketplace/internal/core/domain"

type updateProfileRequest struct {
	FullName    string `json:"full_name"    validate:"required"`
	CompanyName string `json:"company_name" validate:"required"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
}

type updateContractorRequest struct {
	NAICSCodes     []string `json:"naics_codes"`
	Certifications []string `json:"certifications" validate:"dive,oneof=DBE MBE WBE 8(a) HUBZone SDVOSB"`
	ServiceAreas   []string `json:"service_areas"`
	Description    string   `json:"description"`
}

type profileResponse struct {
	Profile    *domain.Profile           `json:"profile"`
	Contractor *domain.ContractorProfile `json:"contractor,omitempty"`
}

type contractorResponse struct {
	ProfileID      string   `json:"profile_id"`
	CompanyName    string   `json:"company_name"`
	FullName       string   `json:"full_name"`
	Location       string   `json:"location"`
	NAICSCodes     []string `json:"naics_codes"`
	Certifications []string `json:"certifications"`
	ServiceAreas   []string `json:"service_areas"`
	Rating         float64  `json:"rating"`
	Description    string   `json:"description"`
}
