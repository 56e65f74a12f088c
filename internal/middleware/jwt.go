// Package middleware provides the HTTP middleware used by the router:
// JWT authentication, role checks, a Redis response cache and a Redis
// token-bucket rate limiter.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/guilhermereis1k/oscar-cinema/internal/utils"
)

// Context keys populated by JWTAuth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// JWTAuth validates the Bearer token and stores the caller's id and role
// in the request context. Requests without a valid token get 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, err := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, prefix))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

// UserID returns the authenticated user's id from the context, or 0 when
// the request is unauthenticated.
func UserID(c echo.Context) uint64 {
	if v, ok := c.Get(CtxUserID).(uint64); ok {
		return v
	}
	return 0
}

// RoleOf returns the authenticated user's role, or "" for guests.
func RoleOf(c echo.Context) string {
	if v, ok := c.Get(CtxRole).(string); ok {
		return v
	}
	return ""
}
