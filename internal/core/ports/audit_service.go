package ports

import (
	"context"
	"time"

	"github.com/credilinea/intake-system/internal/core/domain"
)

// AuditInput is a pending audit-trail record.
type AuditInput struct {
	Action    domain.AuditAction
	Actor     string
	Subject   string
	Detail    string
	Timestamp time.Time
}

// AuditService persists audit entries, skipping duplicates.
type AuditService interface {
	Process(ctx context.Context, in AuditInput) error
}

// AuditRecorder accepts audit entries for asynchronous processing. Services
// call Record and never block on the audit trail.
type AuditRecorder interface {
	Record(in AuditInput)
}
