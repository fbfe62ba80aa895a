package ports

import (
	"context"

	"github.com/homehub/household-api/internal/core/domain"
)

// UserRepository defines the persistence contract for account records.
// Lookups return domain.ErrUserNotFound when no record matches; Create and
// Update return domain.ErrUsernameConflict on a uniqueness violation and
// must leave the stored record untouched in that case.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindHouseholdByID resolves only HOUSEHOLD-role accounts; the admin
	// account is invisible to it.
	FindHouseholdByID(ctx context.Context, id string) (*domain.User, error)
	FindAllHousehold(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
