package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole allows the request through only when the authenticated
// user's role matches one of the given roles. Must run after JWTAuth.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allowed[RoleOf(c)] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient permissions"})
			}
			return next(c)
		}
	}
}
