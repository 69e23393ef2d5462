package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"nemt/internal/domain"
	"nemt/internal/logger"
	"nemt/internal/repository"
)

// AuditSink receives audit entries. Recording never fails the caller.
type AuditSink interface {
	Record(ctx context.Context, entry domain.AuditEntry)
}

// AuditLogger is an AuditSink backed by an append-only repository.
type AuditLogger struct {
	repo repository.AuditRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewAuditLogger creates a new AuditLogger.
func NewAuditLogger(repo repository.AuditRepository) *AuditLogger {
	return &AuditLogger{
		repo: repo,
		log:  logger.WithService("audit"),
		now:  time.Now,
	}
}

// Record assigns an id and timestamp when missing and appends the entry.
// Storage failures are logged and swallowed.
func (a *AuditLogger) Record(ctx context.Context, entry domain.AuditEntry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = a.now().UTC()
	}

	if err := a.repo.Append(ctx, &entry); err != nil {
		a.log.WarnContext(ctx, "failed to record audit entry",
			"action", entry.Action, "subject", entry.Subject, "error", err)
	}
}

// Recent returns the newest entries, optionally for one action.
func (a *AuditLogger) Recent(ctx context.Context, action domain.AuditAction, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 || limit > 200 {
		return nil, ErrInvalidLimit
	}
	return a.repo.ListRecent(ctx, action, limit)
}

// Ensure AuditLogger implements AuditSink.
var _ AuditSink = (*AuditLogger)(nil)
