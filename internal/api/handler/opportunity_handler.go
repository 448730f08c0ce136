package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fedmatch/marketplace/internal/api/metrics"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

type OpportunityHandler struct {
	opportunityService ports.OpportunityService
	savedService       ports.SavedOpportunityService
}

func NewOpportunityHandler(opportunityService ports.OpportunityService, savedService ports.SavedOpportunityService) *OpportunityHandler {
	return &OpportunityHandler{
		opportunityService: opportunityService,
		savedService:       savedService,
	}
}

// Create handles POST /v1/opportunities.
func (h *OpportunityHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createOpportunityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	opp, err := h.opportunityService.Create(c.Request().Context(), identity, ports.CreateOpportunityInput{
		Title:              req.Title,
		Description:        req.Description,
		NAICSCodes:         req.NAICSCodes,
		Location:           req.Location,
		BudgetMin:          req.BudgetMin,
		BudgetMax:          req.BudgetMax,
		SubmissionDeadline: req.SubmissionDeadline,
		Type:               req.Type,
	})
	if err != nil {
		return err
	}

	metrics.OpportunitiesCreatedTotal.WithLabelValues(string(opp.Type)).Inc()
	return c.JSON(http.StatusCreated, opp)
}

// Update handles PUT /v1/opportunities/:id.
func (h *OpportunityHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateOpportunityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	opp, err := h.opportunityService.Update(c.Request().Context(), identity, c.Param("id"), ports.UpdateOpportunityInput{
		Title:              req.Title,
		Description:        req.Description,
		NAICSCodes:         req.NAICSCodes,
		Location:           req.Location,
		BudgetMin:          req.BudgetMin,
		BudgetMax:          req.BudgetMax,
		SubmissionDeadline: req.SubmissionDeadline,
		Status:             req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, opp)
}

// Delete handles DELETE /v1/opportunities/:id.
func (h *OpportunityHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.opportunityService.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /v1/opportunities/:id.
func (h *OpportunityHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.opportunityService.Get(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOpportunityResponse(*view, identity))
}

// List handles GET /v1/opportunities. Only open listings are returned;
// free text and type partition come from query params.
func (h *OpportunityHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	views, err := h.opportunityService.List(c.Request().Context(), identity, ports.ListOpportunitiesInput{
		Query: c.QueryParam("q"),
		Type:  c.QueryParam("type"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOpportunityResponses(views, identity))
}

// ListMine handles GET /v1/opportunities/mine.
func (h *OpportunityHandler) ListMine(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	views, err := h.opportunityService.ListMine(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOpportunityResponses(views, identity))
}

// ToggleSaved handles POST /v1/opportunities/:id/save.
func (h *OpportunityHandler) ToggleSaved(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	saved, err := h.savedService.Toggle(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}

	result := "unsaved"
	if saved {
		result = "saved"
	}
	metrics.SavedToggleTotal.WithLabelValues(result).Inc()
	return c.JSON(http.StatusOK, savedToggleResponse{Saved: saved})
}

// ListSaved handles GET /v1/saved.
func (h *OpportunityHandler) ListSaved(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	views, err := h.savedService.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOpportunityResponses(views, identity))
}

func toOpportunityResponse(v ports.OpportunityView, identity ports.Identity) opportunityResponse {
	resp := opportunityResponse{
		Opportunity: v.Opportunity,
		Urgent:      v.Urgent,
		Saved:       v.Saved,
	}
	// bid counts are poster-only information
	if v.Opportunity.PostedBy == identity.ProfileID {
		count := v.BidCount
		resp.BidCount = &count
	}
	return resp
}

func toOpportunityResponses(views []ports.OpportunityView, identity ports.Identity) []opportunityResponse {
	out := make([]opportunityResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toOpportunityResponse(v, identity))
	}
	return out
}
