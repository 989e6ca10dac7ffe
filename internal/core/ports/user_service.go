package ports

import (
	"context"

	"github.com/credilinea/intake-system/internal/core/domain"
)

type UserService interface {
	// List returns every registrant, including pending accounts.
	List(ctx context.Context) ([]domain.User, error)
	// SetRole changes a user's role. The reserved admin account is locked.
	SetRole(ctx context.Context, userID, role, actorEmail string) (*domain.User, error)
}
