package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fedmatch/marketplace/internal/core/ports"
)

type ProfileHandler struct {
	profileService ports.ProfileService
}

func NewProfileHandler(profileService ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Me handles GET /v1/profiles/me.
func (h *ProfileHandler) Me(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.profileService.Get(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{Profile: view.Profile, Contractor: view.Contractor})
}

// Update handles PUT /v1/profiles/me.
func (h *ProfileHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	profile, err := h.profileService.Update(c.Request().Context(), identity, ports.UpdateProfileInput{
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
		Phone:       req.Phone,
		Location:    req.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{Profile: profile})
}

// UpdateContractor handles PUT /v1/contractors/me.
func (h *ProfileHandler) UpdateContractor(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateContractorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	cp, err := h.profileService.UpdateContractor(c.Request().Context(), identity, ports.UpdateContractorInput{
		NAICSCodes:     req.NAICSCodes,
		Certifications: req.Certifications,
		ServiceAreas:   req.ServiceAreas,
		Description:    req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cp)
}
