package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fedmatch/marketplace/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	profile, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		FullName:       req.FullName,
		CompanyName:    req.CompanyName,
		AccountType:    req.AccountType,
		Phone:          req.Phone,
		Location:       req.Location,
		NAICSCodes:     req.NAICSCodes,
		Certifications: req.Certifications,
		ServiceAreas:   req.ServiceAreas,
		Description:    req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Profile: profile})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, profile, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, Profile: profile})
}
