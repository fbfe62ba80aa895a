package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/homehub/household-api/internal/api/middleware"
	"github.com/homehub/household-api/internal/core/domain"
)

// ctxIdentity extracts the identity attached by the Authenticate middleware.
// Its absence means the route was wired without the middleware or the gate
// was bypassed; either way the request carries no proven identity.
func ctxIdentity(c echo.Context) (domain.TokenPayload, error) {
	identity, ok := middleware.Identity(c)
	if !ok {
		return domain.TokenPayload{}, domain.ErrAuthRequired
	}
	return identity, nil
}
