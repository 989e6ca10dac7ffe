package domain

import (
	"errors"
	"time"
)

const (
	RolePending = "pending"
	RoleAgent   = "agent"
	RoleAdmin   = "admin"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrNotRegistered = errors.New("user has no role record")
var ErrPendingApproval = errors.New("account pending approval")
var ErrInvalidRole = errors.New("invalid role")
var ErrRoleLocked = errors.New("role changes are locked for this account")
var ErrForbidden = errors.New("access forbidden")

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r string) bool {
	return r == RolePending || r == RoleAgent || r == RoleAdmin
}

// User models an authenticated actor. New registrants start as pending and
// gain access only after an administrator promotes them.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
