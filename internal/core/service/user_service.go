package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/homehub/household-api/internal/core/domain"
	"github.com/homehub/household-api/internal/core/ports"
)

// UserService manages household accounts and the admin password reset flow.
type UserService struct {
	repo       ports.UserRepository
	monitoring ports.MonitoringNotifier
	resetGuard ports.ResetCodeGuard
	resetCode  string
	logger     zerolog.Logger
}

func NewUserService(
	repo ports.UserRepository,
	monitoring ports.MonitoringNotifier,
	resetGuard ports.ResetCodeGuard,
	resetCode string,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		repo:       repo,
		monitoring: monitoring,
		resetGuard: resetGuard,
		resetCode:  resetCode,
		logger:     logger,
	}
}

func (s *UserService) HouseholdUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.FindAllHousehold(ctx)
}

func (s *UserService) User(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateHouseholdUser adds a new HOUSEHOLD account. The username is stored
// lower-cased; a clash with any existing handle surfaces as
// domain.ErrUsernameConflict.
func (s *UserService) CreateHouseholdUser(ctx context.Context, username, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     strings.ToLower(strings.TrimSpace(username)),
		PasswordHash: string(hash),
		Role:         domain.RoleHousehold,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("household user created")
	return created, nil
}

// UpdateHouseholdUsername renames a household account. The admin handle is
// immutable, so an admin id resolves to domain.ErrUserNotFound here. A
// conflicting new name leaves the stored record unchanged.
func (s *UserService) UpdateHouseholdUsername(ctx context.Context, id, username string) (*domain.User, error) {
	user, err := s.repo.FindHouseholdByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Username = strings.ToLower(strings.TrimSpace(username))
	user.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, user)
}

// UpdatePassword re-hashes and stores a new password for any account.
func (s *UserService) UpdatePassword(ctx context.Context, id, password string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, user)
}

// DeleteHouseholdUser removes a household account and notifies the monitoring
// service so the user's measurement tags get cleaned up. The notification is
// best-effort: a monitoring outage never fails the deletion.
func (s *UserService) DeleteHouseholdUser(ctx context.Context, id string) error {
	user, err := s.repo.FindHouseholdByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return err
	}

	if s.monitoring != nil {
		if err := s.monitoring.NotifyUserRemoved(ctx, user.Username); err != nil {
			s.logger.Warn().Err(err).Str("username", user.Username).Msg("monitoring notification failed")
		}
	}

	s.logger.Info().Str("username", user.Username).Msg("household user deleted")
	return nil
}

// ResetAdminPassword sets a new admin password when the presented reset code
// matches the configured one and has not been used before. A consumed code is
// indistinguishable from a wrong one.
func (s *UserService) ResetAdminPassword(ctx context.Context, resetCode, password string) error {
	if resetCode != s.resetCode {
		return domain.ErrInvalidResetCode
	}

	if s.resetGuard != nil {
		used, err := s.resetGuard.Consumed(ctx)
		if err != nil {
			return err
		}
		if used {
			return domain.ErrInvalidResetCode
		}
	}

	admin, err := s.repo.FindByUsername(ctx, domain.AdminUsername)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin.PasswordHash = string(hash)
	admin.UpdatedAt = time.Now().UTC()
	if _, err := s.repo.Update(ctx, admin); err != nil {
		return err
	}

	if s.resetGuard != nil {
		if err := s.resetGuard.MarkConsumed(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("failed to mark reset code as consumed")
		}
	}

	s.logger.Info().Msg("admin password reset")
	return nil
}
