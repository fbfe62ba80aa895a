package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/homehub/household-api/internal/core/domain"
)

// RequireRole admits only identities whose role is in the allowed set.
// Authenticate must run earlier in the chain; a missing identity is an
// authentication failure, not a role failure.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := Identity(c)
			if !ok {
				return domain.ErrAuthRequired
			}
			if _, ok := allowed[identity.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
