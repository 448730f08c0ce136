package handler

import (
	"time"

	"github.com/fedmatch/marketplace/internal/core/domain"
)

type createOpportunityRequest struct {
	Title              string    `json:"title"               validate:"required"`
	Description        string    `json:"description"         validate:"required"`
	NAICSCodes         []string  `json:"naics_codes"`
	Location           string    `json:"location"            validate:"required"`
	BudgetMin          *float64  `json:"budget_min"          validate:"omitempty,gte=0"`
	BudgetMax          *float64  `json:"budget_max"          validate:"omitempty,gte=0"`
	SubmissionDeadline time.Time `json:"submission_deadline" validate:"required"`
	Type               string    `json:"type"                validate:"required,oneof=procurement teaming"`
}

type updateOpportunityRequest struct {
	Title              string    `json:"title"               validate:"required"`
	Description        string    `json:"description"         validate:"required"`
	NAICSCodes         []string  `json:"naics_codes"`
	Location           string    `json:"location"            validate:"required"`
	BudgetMin          *float64  `json:"budget_min"          validate:"omitempty,gte=0"`
	BudgetMax          *float64  `json:"budget_max"          validate:"omitempty,gte=0"`
	SubmissionDeadline time.Time `json:"submission_deadline" validate:"required"`
	Status             string    `json:"status"              validate:"omitempty,oneof=open closed"`
}

// opportunityResponse is a listing annotated for the requesting viewer.
type opportunityResponse struct {
	*domain.Opportunity
	Urgent   bool   `json:"urgent"`
	Saved    bool   `json:"saved"`
	BidCount *int64 `json:"bid_count,omitempty"`
}

type savedToggleResponse struct {
	Saved bool `json:"saved"`
}
