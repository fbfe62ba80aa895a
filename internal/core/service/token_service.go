package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/homehub/household-api/internal/core/domain"
)

const (
	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// identityClaims is the wire shape of every issued token: the registered
// claims carry issued-at/expiry, the custom fields carry the identity
// snapshot taken at issuance time.
type identityClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// TokenService signs and verifies HS256 tokens with a shared secret and two
// independently configured lifetimes (short for access, long for refresh).
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (s *TokenService) IssueAccessToken(payload domain.TokenPayload) (string, error) {
	return s.issue(payload, s.accessTTL)
}

func (s *TokenService) IssueRefreshToken(payload domain.TokenPayload) (string, error) {
	return s.issue(payload, s.refreshTTL)
}

func (s *TokenService) issue(payload domain.TokenPayload, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			// jti makes every issued token unique even when two issuances
			// for the same identity land in the same second.
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   payload.ID,
		Username: payload.Username,
		Role:     payload.Role,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify decodes a token and returns its identity payload. The boolean is
// false on any of: malformed input, wrong signing method, signature mismatch,
// elapsed expiry. Expired tokens are an everyday condition, so no error is
// surfaced.
func (s *TokenService) Verify(token string) (domain.TokenPayload, bool) {
	claims := identityClaims{}
	tkn, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return domain.TokenPayload{}, false
	}

	return domain.TokenPayload{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, true
}
