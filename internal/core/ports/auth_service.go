package ports

import (
	"context"

	"github.com/homehub/household-api/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.TokenPair, error)
	Refresh(refreshToken string) (*domain.TokenPair, error)
	Verify(accessToken string) (domain.TokenPayload, bool)
	Logout(ctx context.Context, username string) error
}
