package middleware

import (
	"github.com/MinhMaxx/personal-website-backend/internal/utils"

	"github.com/labstack/echo/v4"
)

const (
	contextClaimsKey = "auth_claims"
	contextTokenKey  = "auth_token"
)

func SetAdminContext(c echo.Context, claims *utils.AdminClaims, token string) {
	c.Set(contextClaimsKey, claims)
	c.Set(contextTokenKey, token)
}

func ClaimsFromContext(c echo.Context) (*utils.AdminClaims, bool) {
	value := c.Get(contextClaimsKey)
	claims, ok := value.(*utils.AdminClaims)
	return claims, ok && claims != nil
}

// TokenFromContext returns the raw bearer token accepted by RequireAuth.
func TokenFromContext(c echo.Context) (string, bool) {
	value := c.Get(contextTokenKey)
	token, ok := value.(string)
	return token, ok && token != ""
}
