package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/MinhMaxx/personal-website-backend/internal/metrics"
	"github.com/MinhMaxx/personal-website-backend/internal/utils"

	"github.com/labstack/echo/v4"
)

const (
	msgMissingToken   = "Authentication token is missing or invalid"
	msgSessionExpired = "Session expired. Please log in again."
	msgInvalidToken   = "Authentication failed. Invalid token."
)

// RevocationChecker reports whether a raw token was logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type AuthMiddleware struct {
	JWT         *utils.JWTManager
	Revocations RevocationChecker
}

// RequireAuth accepts a bearer token only if it was never logged out and
// still verifies. The revocation lookup runs first.
func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.JWT == nil || m.Revocations == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, msgMissingToken)
		}
		token := extractBearerToken(c.Request())
		if token == "" {
			metrics.AuthRejections.WithLabelValues("missing").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, msgMissingToken)
		}

		revoked, err := m.Revocations.IsRevoked(c.Request().Context(), token)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
		}
		if revoked {
			metrics.AuthRejections.WithLabelValues("revoked").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, msgSessionExpired)
		}

		claims, err := m.JWT.ParseAdminToken(token)
		if err != nil {
			metrics.AuthRejections.WithLabelValues("invalid").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken)
		}
		SetAdminContext(c, claims, token)
		return next(c)
	}
}

func extractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
