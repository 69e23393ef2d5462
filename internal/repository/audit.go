package repository

import (
	"context"

	"nemt/internal/domain"
)

// AuditRepository is an append-only store of audit entries.
type AuditRepository interface {
	// Append persists a new entry.
	Append(ctx context.Context, entry *domain.AuditEntry) error

	// ListRecent retrieves the newest entries, optionally for one action.
	ListRecent(ctx context.Context, action domain.AuditAction, limit int) ([]domain.AuditEntry, error)
}
