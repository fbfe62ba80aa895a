package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/homehub/household-api/internal/core/domain"
)

// RequireOwnershipOrAdmin admits the admin, or the account whose id matches
// the :id path parameter. Authenticate must run earlier in the chain.
func RequireOwnershipOrAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := Identity(c)
			if !ok {
				return domain.ErrAuthRequired
			}
			if identity.Role == domain.RoleAdmin || identity.ID == c.Param("id") {
				return next(c)
			}
			return domain.ErrForbidden
		}
	}
}
