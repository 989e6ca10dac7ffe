package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/credilinea/intake-system/internal/core/domain"
	"github.com/credilinea/intake-system/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) for audit entries.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, action, actor string, ts time.Time) (bool, error)
	Mark(ctx context.Context, action, actor string, ts time.Time) error
}

type auditService struct {
	repo  ports.AuditRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, dedup DedupChecker, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single audit entry. A failed dedup
// check is logged and processing continues; the trail tolerates an
// occasional duplicate better than a lost entry.
func (s *auditService) Process(ctx context.Context, in ports.AuditInput) error {
	isDup, err := s.dedup.IsDuplicate(ctx, string(in.Action), in.Actor, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("action", string(in.Action)).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("action", string(in.Action)).Str("actor", in.Actor).Msg("duplicate audit entry skipped")
		return nil
	}

	if markErr := s.dedup.Mark(ctx, string(in.Action), in.Actor, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("action", string(in.Action)).Msg("failed to set dedup key")
	}

	entry := &domain.AuditEntry{
		Action:    in.Action,
		Actor:     in.Actor,
		Subject:   in.Subject,
		Detail:    in.Detail,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("process audit entry: %w", err)
	}

	s.log.Info().
		Str("action", string(in.Action)).
		Str("actor", in.Actor).
		Str("subject", in.Subject).
		Msg("audit entry recorded")

	return nil
}
