package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/credilinea/intake-system/internal/core/domain"
	"github.com/credilinea/intake-system/internal/core/ports"
)

type stubAuditRepo struct {
	entries []domain.AuditEntry
	failing bool
}

func (r *stubAuditRepo) Insert(_ context.Context, entry *domain.AuditEntry) error {
	if r.failing {
		return fmt.Errorf("insert failed")
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubAuditRepo) FindRecent(_ context.Context, limit int64) ([]domain.AuditEntry, error) {
	if int64(len(r.entries)) < limit {
		limit = int64(len(r.entries))
	}
	return r.entries[:limit], nil
}

type stubDedup struct {
	seen      map[string]bool
	checkErr  error
	markCalls int
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) key(action, actor string, ts time.Time) string {
	return fmt.Sprintf("%s|%s|%d", action, actor, ts.Unix())
}

func (d *stubDedup) IsDuplicate(_ context.Context, action, actor string, ts time.Time) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[d.key(action, actor, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, action, actor string, ts time.Time) error {
	d.markCalls++
	d.seen[d.key(action, actor, ts)] = true
	return nil
}

func auditInput(ts time.Time) ports.AuditInput {
	return ports.AuditInput{
		Action:    domain.ActionClientRegistered,
		Actor:     "agent@x.com",
		Subject:   "123",
		Timestamp: ts,
	}
}

func TestAuditService_Process_PersistsEntry(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, newStubDedup(), zerolog.Nop())

	if err := svc.Process(context.Background(), auditInput(time.Now())); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(repo.entries))
	}
	if repo.entries[0].Actor != "agent@x.com" || repo.entries[0].Subject != "123" {
		t.Fatalf("unexpected entry: %+v", repo.entries[0])
	}
}

func TestAuditService_Process_SkipsDuplicate(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, newStubDedup(), zerolog.Nop())

	ts := time.Now()
	if err := svc.Process(context.Background(), auditInput(ts)); err != nil {
		t.Fatalf("first Process failed: %v", err)
	}
	if err := svc.Process(context.Background(), auditInput(ts)); err != nil {
		t.Fatalf("duplicate Process failed: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("duplicate should have been skipped, got %d entries", len(repo.entries))
	}
}

func TestAuditService_Process_DedupFailureIsNonFatal(t *testing.T) {
	repo := &stubAuditRepo{}
	dedup := newStubDedup()
	dedup.checkErr = fmt.Errorf("redis down")
	svc := NewAuditService(repo, dedup, zerolog.Nop())

	if err := svc.Process(context.Background(), auditInput(time.Now())); err != nil {
		t.Fatalf("Process should tolerate dedup failure: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("entry should still be persisted, got %d", len(repo.entries))
	}
}

func TestAuditService_Process_InsertFailureSurfaces(t *testing.T) {
	repo := &stubAuditRepo{failing: true}
	svc := NewAuditService(repo, newStubDedup(), zerolog.Nop())

	if err := svc.Process(context.Background(), auditInput(time.Now())); err == nil {
		t.Fatalf("expected error from failing repository")
	}
}
