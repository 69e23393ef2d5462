package domain

import "time"

// AuditAction names an auditable operation.
type AuditAction string

const (
	AuditActionConflictScan  AuditAction = "conflict_scan"
	AuditActionConflictSweep AuditAction = "conflict_sweep"
	AuditActionTripPriced    AuditAction = "trip_priced"
)

// AuditEntry is an append-only record of a dispatch operation.
type AuditEntry struct {
	ID        string
	Action    AuditAction
	Actor     string
	Subject   string
	Details   map[string]any
	CreatedAt time.Time
}
