package ports

import (
	"context"

	"github.com/homehub/household-api/internal/core/domain"
)

type UserService interface {
	HouseholdUsers(ctx context.Context) ([]*domain.User, error)
	User(ctx context.Context, id string) (*domain.User, error)
	CreateHouseholdUser(ctx context.Context, username, password string) (*domain.User, error)
	UpdateHouseholdUsername(ctx context.Context, id, username string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, password string) (*domain.User, error)
	DeleteHouseholdUser(ctx context.Context, id string) error
	ResetAdminPassword(ctx context.Context, resetCode, password string) error
}
