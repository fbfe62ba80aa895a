package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/homehub/household-api/internal/api/metrics"
	"github.com/homehub/household-api/internal/core/domain"
)

// identityKey is the echo context key under which Authenticate stores the
// verified token payload.
const identityKey = "identity"

// TokenVerifier is the slice of the auth service the middleware needs.
type TokenVerifier interface {
	Verify(accessToken string) (domain.TokenPayload, bool)
}

// Authenticate extracts the bearer token, verifies it, and attaches the
// identity payload to the request context. It is the mandatory first gate of
// every protected route.
func Authenticate(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrAuthRequired
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrAuthRequired
			}

			payload, ok := verifier.Verify(parts[1])
			if !ok {
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				return domain.ErrInvalidAccessToken
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			c.Set(identityKey, payload)
			return next(c)
		}
	}
}

// Identity returns the payload attached by Authenticate, or false when the
// gate has not run on this request.
func Identity(c echo.Context) (domain.TokenPayload, bool) {
	payload, ok := c.Get(identityKey).(domain.TokenPayload)
	return payload, ok
}
