package ports

import (
	"context"
	"time"

	"github.com/credilinea/intake-system/internal/core/domain"
)

type AuthService interface {
	// Register creates a credential and role record. New accounts are
	// pending until approved; the reserved admin address is the exception.
	Register(ctx context.Context, email, password string) (*domain.User, error)
	// Login authenticates and returns a signed token. Pending accounts and
	// credentials without a role record are rejected without a session.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the token identified by tokenID until expiresAt.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}
