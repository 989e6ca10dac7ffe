package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/credilinea/intake-system/internal/core/domain"
	"github.com/credilinea/intake-system/internal/core/ports"
)

// TokenDenylist abstracts the revoked-token store (Redis).
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// AuthService implements registration, login, and logout.
type AuthService struct {
	repo       ports.UserRepository
	denylist   TokenDenylist
	jwtSecret  string
	tokenTTL   time.Duration
	adminEmail string
	logger     zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, denylist TokenDenylist, jwtSecret, adminEmail string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:       repo,
		denylist:   denylist,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		adminEmail: strings.ToLower(adminEmail),
		logger:     logger,
	}
}

// Register creates a new account. Everyone starts as pending except the
// reserved administrator address, which registers directly as admin.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := domain.RolePending
	if s.adminEmail != "" && email == s.adminEmail {
		role = domain.RoleAdmin
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", created.Email).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies the credential and issues a token. Accounts without a role
// record or still pending never get a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if user.Role == "" {
		return "", nil, domain.ErrNotRegistered
	}
	if user.Role == domain.RolePending {
		return "", nil, domain.ErrPendingApproval
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("email", user.Email).Str("role", user.Role).Msg("login succeeded")
	return token, user, nil
}

// Logout revokes the token until its natural expiry. Tokens are stateless,
// so revocation lives in the denylist checked by the auth middleware.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.denylist.Revoke(ctx, tokenID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// ProvisionAdmin ensures an administrator account exists for the given
// credentials. Run out-of-band by an operator (cmd/admin-init), never from
// the request path. Idempotent: an existing account is promoted to admin.
func (s *AuthService) ProvisionAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.ErrInvalidCredentials
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		if existing.Role == domain.RoleAdmin {
			return nil
		}
		if err := s.repo.UpdateRole(ctx, existing.ID, domain.RoleAdmin); err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		s.logger.Info().Str("email", email).Msg("existing account promoted to admin")
		return nil
	}
	if err != domain.ErrUserNotFound {
		return fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if _, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("admin account provisioned")
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"jti":   generateTokenID(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateTokenID returns a random token identifier in the format TK-XXXXXXXXXXXXXXXX.
func generateTokenID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("TK-%016X", time.Now().UnixNano())
	}
	return fmt.Sprintf("TK-%016X", b)
}
