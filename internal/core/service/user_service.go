package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/credilinea/intake-system/internal/core/domain"
	"github.com/credilinea/intake-system/internal/core/ports"
)

// UserService implements user listing and role approval.
type UserService struct {
	repo       ports.UserRepository
	audit      ports.AuditRecorder
	adminEmail string
	logger     zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit ports.AuditRecorder, adminEmail string, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:       repo,
		audit:      audit,
		adminEmail: strings.ToLower(adminEmail),
		logger:     logger,
	}
}

// List returns every registrant, pending accounts included, so an
// administrator can approve them.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load users")
		return nil, err
	}
	return users, nil
}

// SetRole changes a user's role. The reserved administrator account is
// locked server-side, not just hidden in a client.
func (s *UserService) SetRole(ctx context.Context, userID, role, actorEmail string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.adminEmail != "" && user.Email == s.adminEmail {
		return nil, domain.ErrRoleLocked
	}

	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user", user.Email).Str("role", role).Str("actor", actorEmail).Msg("role updated")
	s.audit.Record(ports.AuditInput{
		Action:    domain.ActionRoleChanged,
		Actor:     actorEmail,
		Subject:   user.Email,
		Detail:    role,
		Timestamp: time.Now().UTC(),
	})

	user.Role = role
	return user, nil
}
