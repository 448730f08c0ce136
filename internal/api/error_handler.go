package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fedmatch/marketplace/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrContractorNotFound),
		errors.Is(err, domain.ErrOpportunityNotFound),
		errors.Is(err, domain.ErrBidNotFound),
		errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrRegistrationNotFound),
		errors.Is(err, domain.ErrMessageNotFound),
		errors.Is(err, domain.ErrConversationNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, domain.ErrProfileExists),
		errors.Is(err, domain.ErrDuplicateBid),
		errors.Is(err, domain.ErrAlreadyRegistered):
		return http.StatusConflict, err.Error()

	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrContractorOnly),
		errors.Is(err, domain.ErrProcurementOnly):
		return http.StatusForbidden, "access forbidden"

	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"

	case errors.Is(err, domain.ErrOpportunityClosed),
		errors.Is(err, domain.ErrEventFull),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error()

	case errors.Is(err, domain.ErrAmountRequired),
		errors.Is(err, domain.ErrBudgetRange),
		errors.Is(err, domain.ErrInvalidAccountType),
		errors.Is(err, domain.ErrInvalidOpportunityType),
		errors.Is(err, domain.ErrInvalidCertification),
		errors.Is(err, domain.ErrInvalidNAICS),
		errors.Is(err, domain.ErrInvalidMessage):
		return http.StatusBadRequest, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
