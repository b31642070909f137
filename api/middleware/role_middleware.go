package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin must run after RequireAuth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := ClaimsFromContext(c)
		if !ok || !claims.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "You need admin privileges to access this route.")
		}
		return next(c)
	}
}
