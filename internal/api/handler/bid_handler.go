package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fedmatch/marketplace/internal/api/metrics"
	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

type BidHandler struct {
	bidService ports.BidService
}

func NewBidHandler(bidService ports.BidService) *BidHandler {
	return &BidHandler{bidService: bidService}
}

// Submit handles POST /v1/opportunities/:id/bids.
func (h *BidHandler) Submit(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req submitBidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	bid, err := h.bidService.Submit(c.Request().Context(), identity, ports.SubmitBidInput{
		OpportunityID: c.Param("id"),
		Amount:        req.Amount,
		Summary:       req.Summary,
	})
	if err != nil {
		return err
	}

	metrics.BidsSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, bid)
}

// ListForOpportunity handles GET /v1/opportunities/:id/bids. Poster only.
func (h *BidHandler) ListForOpportunity(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.bidService.ListForOpportunity(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, opportunityBidsResponse{Bids: result.Bids, Count: result.Count})
}

// ListMine handles GET /v1/bids/mine.
func (h *BidHandler) ListMine(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	bids, err := h.bidService.ListMine(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bids)
}

// UpdateStatus handles PATCH /v1/bids/:id/status. Poster only.
func (h *BidHandler) UpdateStatus(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateBidStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	bid, err := h.bidService.UpdateStatus(c.Request().Context(), identity, c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	if bid.Status == domain.BidAccepted {
		metrics.BidsAwardedTotal.Inc()
	}
	return c.JSON(http.StatusOK, bid)
}
