package middleware

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// CredentialChecker validates a username/password pair.
type CredentialChecker interface {
	CheckBasicCredentials(username string, password string) bool
}

// BasicAuth guards the legacy admin settings namespace. It is configured
// independently of the bearer guard.
func BasicAuth(checker CredentialChecker) echo.MiddlewareFunc {
	return echoMiddleware.BasicAuthWithConfig(echoMiddleware.BasicAuthConfig{
		Realm: "Admin",
		Validator: func(username string, password string, _ echo.Context) (bool, error) {
			if checker == nil {
				return false, nil
			}
			return checker.CheckBasicCredentials(username, password), nil
		},
	})
}
