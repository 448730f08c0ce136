package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fedmatch/marketplace/internal/core/ports"
)

// ContractorHandler serves the public contractor directory.
type ContractorHandler struct {
	contractorService ports.ContractorService
}

func NewContractorHandler(contractorService ports.ContractorService) *ContractorHandler {
	return &ContractorHandler{contractorService: contractorService}
}

// List handles GET /v1/contractors. All filters are optional query params
// and compose with AND semantics.
func (h *ContractorHandler) List(c echo.Context) error {
	minRating := 0.0
	if raw := c.QueryParam("min_rating"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "min_rating must be a number")
		}
		minRating = parsed
	}

	views, err := h.contractorService.List(c.Request().Context(), ports.ContractorFilterInput{
		NAICS:         c.QueryParam("naics"),
		Certification: c.QueryParam("certification"),
		Location:      c.QueryParam("location"),
		MinRating:     minRating,
		Query:         c.QueryParam("q"),
	})
	if err != nil {
		return err
	}

	out := make([]contractorResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toContractorResponse(v))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/contractors/:id.
func (h *ContractorHandler) Get(c echo.Context) error {
	view, err := h.contractorService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	resp := toContractorResponse(*view)
	return c.JSON(http.StatusOK, resp)
}

func toContractorResponse(v ports.ContractorView) contractorResponse {
	return contractorResponse{
		ProfileID:      v.ProfileID,
		CompanyName:    v.CompanyName,
		FullName:       v.FullName,
		Location:       v.Location,
		NAICSCodes:     v.NAICSCodes,
		Certifications: v.Certifications,
		ServiceAreas:   v.ServiceAreas,
		Rating:         v.Rating,
		Description:    v.Description,
	}
}
