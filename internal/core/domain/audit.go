package domain

import "time"

// AuditAction identifies the kind of operation recorded in the audit trail.
type AuditAction string

const (
	ActionClientRegistered AuditAction = "client_registered"
	ActionClientDeleted    AuditAction = "client_deleted"
	ActionRoleChanged      AuditAction = "role_changed"
)

// AuditEntry records a single administrative or intake action.
type AuditEntry struct {
	ID        string      `json:"id"`
	Action    AuditAction `json:"action"`
	Actor     string      `json:"actor"`
	Subject   string      `json:"subject"`
	Detail    string      `json:"detail,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
