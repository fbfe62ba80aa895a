package ports

import "github.com/homehub/household-api/internal/core/domain"

// TokenService signs and verifies the self-contained credentials carried by
// clients. Implementations are stateless; possession of a valid token is the
// sole authorization evidence.
type TokenService interface {
	IssueAccessToken(payload domain.TokenPayload) (string, error)
	IssueRefreshToken(payload domain.TokenPayload) (string, error)
	// Verify reports the embedded payload and true for a well-formed,
	// correctly signed, unexpired token; (zero, false) otherwise. Invalid
	// input is a routine condition, not an error.
	Verify(token string) (domain.TokenPayload, bool)
}
