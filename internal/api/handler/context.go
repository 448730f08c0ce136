package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty profile_id
// proves the middleware ran, and account_type must parse to a known type.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	profileID, _ := c.Get("profile_id").(string)
	if profileID == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	accountType, _ := c.Get("account_type").(string)
	if !domain.AccountType(accountType).Valid() {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing account type")
	}

	email, _ := c.Get("email").(string)
	return ports.Identity{
		ProfileID:   profileID,
		AccountType: domain.AccountType(accountType),
		Email:       email,
	}, nil
}
