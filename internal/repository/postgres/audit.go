package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"nemt/internal/domain"
	"nemt/internal/logger"
	"nemt/internal/repository"
)

// AuditRepository is a PostgreSQL implementation of repository.AuditRepository.
type AuditRepository struct {
	q Querier
}

// NewAuditRepository creates a new PostgreSQL audit repository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{q: db}
}

// Append persists a new audit entry.
func (r *AuditRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	query := `
		INSERT INTO audit_log (id, action, actor, subject, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}

	_, err = r.q.ExecContext(ctx, query,
		entry.ID,
		entry.Action,
		entry.Actor,
		entry.Subject,
		details,
		entry.CreatedAt,
	)
	if err != nil {
		logger.DatabaseResult("append_audit", 0, err)
	}
	return err
}

// ListRecent retrieves the newest entries, optionally filtered by action.
func (r *AuditRepository) ListRecent(ctx context.Context, action domain.AuditAction, limit int) ([]domain.AuditEntry, error) {
	query := `SELECT id, action, actor, subject, details, created_at FROM audit_log`
	var args []any
	if action != "" {
		query += ` WHERE action = $1`
		args = append(args, action)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("list_audit", 0, err)
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		var details []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&entry.Actor,
			&entry.Subject,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, fmt.Errorf("failed to decode audit details: %w", err)
			}
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Ensure AuditRepository implements repository.AuditRepository.
var _ repository.AuditRepository = (*AuditRepository)(nil)
