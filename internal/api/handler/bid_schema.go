package handler

import "github.com/fedmatch/marketplace/internal/core/domain"

type submitBidRequest struct {
	Amount  *float64 `json:"amount" validate:"omitempty,gt=0"`
	Summary string   `json:"summary"`
}

type updateBidStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

type opportunityBidsResponse struct {
	Bids  []*domain.Bid `json:"bids"`
	Count int64         `json:"count"`
}
