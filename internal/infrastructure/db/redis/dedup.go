package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/credilinea/intake-system/internal/api/metrics"
)

const dedupTTL = time.Hour

// AuditDedup provides idempotency checks for audit entries backed by Redis.
// Key format: audit:<action>:<actor>:<unix_timestamp>
type AuditDedup struct {
	client *redis.Client
}

// NewAuditDedup creates an AuditDedup wrapping the given Redis client.
func NewAuditDedup(client *redis.Client) *AuditDedup {
	return &AuditDedup{client: client}
}

// IsDuplicate reports whether this exact entry has already been recorded.
func (d *AuditDedup) IsDuplicate(ctx context.Context, action, actor string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(action, actor, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	if n > 0 {
		metrics.AuditDedupTotal.WithLabelValues("hit").Inc()
		return true, nil
	}
	metrics.AuditDedupTotal.WithLabelValues("miss").Inc()
	return false, nil
}

// Mark records that this entry has been persisted (expires after dedupTTL).
func (d *AuditDedup) Mark(ctx context.Context, action, actor string, ts time.Time) error {
	return d.client.Set(ctx, d.key(action, actor, ts), "1", dedupTTL).Err()
}

func (d *AuditDedup) key(action, actor string, ts time.Time) string {
	return fmt.Sprintf("audit:%s:%s:%d", action, actor, ts.Unix())
}
