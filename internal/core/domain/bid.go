package domain

import "time"

// BidStatus is the review state of a bid. Only the opportunity poster may
// move a bid out of pending; accepted and rejected are terminal.
type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

// validBidTransitions defines the allowed review-state transitions.
var validBidTransitions = map[BidStatus][]BidStatus{
	BidPending: {BidAccepted, BidRejected},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s BidStatus) CanTransitionTo(next BidStatus) bool {
	for _, allowed := range validBidTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Bid is a contractor's response to an opportunity. Amount carries a price
// quote for procurement listings and is absent on teaming listings, where a
// bid is an expression of interest. Bids are immutable after creation except
// for status transitions performed by the opportunity poster.
type Bid struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	OpportunityID  string    `json:"opportunity_id" bson:"opportunity_id"`
	ContractorID   string    `json:"contractor_id" bson:"contractor_id"`
	Amount         *float64  `json:"amount,omitempty" bson:"amount,omitempty"`
	Summary        string    `json:"summary" bson:"summary"`
	Certifications []string  `json:"certifications" bson:"certifications"`
	Status         BidStatus `json:"status" bson:"status"`
	SubmittedAt    time.Time `json:"submitted_at" bson:"submitted_at"`
}
