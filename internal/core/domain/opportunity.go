package domain

import "time"

// OpportunityType distinguishes priced procurements from teaming listings.
type OpportunityType string

const (
	TypeProcurement OpportunityType = "procurement"
	TypeTeaming     OpportunityType = "teaming"
)

// Valid reports whether t is a known opportunity type.
func (t OpportunityType) Valid() bool {
	return t == TypeProcurement || t == TypeTeaming
}

// OpportunityStatus is the lifecycle state of a listing. Closed listings
// remain readable but stop accepting bids.
type OpportunityStatus string

const (
	StatusOpen   OpportunityStatus = "open"
	StatusClosed OpportunityStatus = "closed"
)

// Opportunity is a posted procurement or teaming listing, owned exclusively
// by its poster.
type Opportunity struct {
	ID                 string            `json:"id" bson:"_id,omitempty"`
	Title              string            `json:"title" bson:"title"`
	Description        string            `json:"description" bson:"description"`
	NAICSCodes         []string          `json:"naics_codes" bson:"naics_codes"`
	Location           string            `json:"location" bson:"location"`
	BudgetMin          *float64          `json:"budget_min,omitempty" bson:"budget_min,omitempty"`
	BudgetMax          *float64          `json:"budget_max,omitempty" bson:"budget_max,omitempty"`
	SubmissionDeadline time.Time         `json:"submission_deadline" bson:"submission_deadline"`
	Type               OpportunityType   `json:"type" bson:"type"`
	Status             OpportunityStatus `json:"status" bson:"status"`
	PostedBy           string            `json:"posted_by" bson:"posted_by"`
	CreatedAt          time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at" bson:"updated_at"`
}

// ValidateBudget enforces budget_max >= budget_min when both bounds are
// present. Either bound may be absent, and a bound may not be negative.
func ValidateBudget(min, max *float64) error {
	if min != nil && *min < 0 {
		return ErrBudgetRange
	}
	if max != nil && *max < 0 {
		return ErrBudgetRange
	}
	if min != nil && max != nil && *max < *min {
		return ErrBudgetRange
	}
	return nil
}

// Biddable reports whether the opportunity still accepts bids at the given
// instant: it must be open and its submission deadline must not have passed.
func (o *Opportunity) Biddable(now time.Time) bool {
	if o.Status != StatusOpen {
		return false
	}
	return !o.SubmissionDeadline.Before(truncateToDay(now))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
