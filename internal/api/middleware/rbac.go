package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AccountType restricts a route to the given account types. The contractor
// and procurement sides of the marketplace see different write surfaces:
// contractors bid, procurement accounts post.
func AccountType(allowed ...string) echo.MiddlewareFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accountType, _ := c.Get("account_type").(string)
			if _, ok := set[accountType]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
