package domain

import "errors"

var (
	ErrProfileNotFound        = errors.New("profile not found")
	ErrProfileExists          = errors.New("profile already exists")
	ErrContractorNotFound     = errors.New("contractor profile not found")
	ErrOpportunityNotFound    = errors.New("opportunity not found")
	ErrOpportunityClosed      = errors.New("opportunity is closed")
	ErrBidNotFound            = errors.New("bid not found")
	ErrDuplicateBid           = errors.New("bid already submitted for this opportunity")
	ErrAmountRequired         = errors.New("bid amount is required for procurement opportunities")
	ErrBudgetRange            = errors.New("budget_max must be greater than or equal to budget_min")
	ErrInvalidTransition      = errors.New("invalid bid status transition")
	ErrEventNotFound          = errors.New("event not found")
	ErrEventFull              = errors.New("event has reached maximum capacity")
	ErrAlreadyRegistered      = errors.New("already registered for this event")
	ErrRegistrationNotFound   = errors.New("event registration not found")
	ErrMessageNotFound        = errors.New("message not found")
	ErrInvalidMessage         = errors.New("message requires a receiver and content")
	ErrConversationNotFound   = errors.New("conversation not found")
	ErrForbidden              = errors.New("access forbidden")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidAccountType     = errors.New("account type must be contractor or procurement")
	ErrInvalidOpportunityType = errors.New("opportunity type must be procurement or teaming")
	ErrInvalidCertification   = errors.New("unknown certification tag")
	ErrInvalidNAICS           = errors.New("naics codes must be 2 to 6 digit numbers")
	ErrContractorOnly         = errors.New("operation requires a contractor account")
	ErrProcurementOnly        = errors.New("operation requires a procurement account")
)
