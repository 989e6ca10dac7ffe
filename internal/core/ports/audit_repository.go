package ports

import (
	"context"

	"github.com/credilinea/intake-system/internal/core/domain"
)

// AuditRepository defines the interface for the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	// FindRecent returns the newest entries, up to limit.
	FindRecent(ctx context.Context, limit int64) ([]domain.AuditEntry, error)
}
