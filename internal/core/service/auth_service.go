package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/homehub/household-api/internal/core/domain"
	"github.com/homehub/household-api/internal/core/ports"
)

// AuthService implements login, token refresh, token verification and logout.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Login verifies the credentials and issues a fresh token pair. An unknown
// username and a wrong password are indistinguishable to the caller: both
// yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	user, err := s.repo.FindByUsername(ctx, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issuePair(domain.PayloadFor(user))
}

// Refresh exchanges a valid refresh token for a brand-new pair. There is no
// server-side tracking of issued refresh tokens: the old one stays usable
// until its natural expiry.
func (s *AuthService) Refresh(refreshToken string) (*domain.TokenPair, error) {
	payload, ok := s.tokens.Verify(refreshToken)
	if !ok {
		return nil, domain.ErrInvalidRefreshToken
	}
	return s.issuePair(payload)
}

// Verify reports the identity carried by an access token, or false when the
// token fails signature or expiry checks.
func (s *AuthService) Verify(accessToken string) (domain.TokenPayload, bool) {
	return s.tokens.Verify(accessToken)
}

// Logout acknowledges a logout request. Tokens are stateless, so there is
// nothing to invalidate server-side; the only failure is a nonexistent user.
func (s *AuthService) Logout(ctx context.Context, username string) error {
	if _, err := s.repo.FindByUsername(ctx, username); err != nil {
		return err
	}
	return nil
}

func (s *AuthService) issuePair(payload domain.TokenPayload) (*domain.TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(payload)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(payload)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
