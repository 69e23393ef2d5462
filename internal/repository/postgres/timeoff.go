package postgres

import (
	"context"
	"database/sql"
	"time"

	"nemt/internal/domain"
	"nemt/internal/logger"
	"nemt/internal/repository"
)

// TimeOffRepository is a PostgreSQL implementation of repository.TimeOffRepository.
type TimeOffRepository struct {
	q Querier
}

// NewTimeOffRepository creates a new PostgreSQL time-off repository.
func NewTimeOffRepository(db *sql.DB) *TimeOffRepository {
	return &TimeOffRepository{q: db}
}

// ListApprovedOverlapping retrieves approved time off intersecting [start, end].
func (r *TimeOffRepository) ListApprovedOverlapping(ctx context.Context, start, end time.Time, driverID string) ([]domain.DriverTimeOff, error) {
	query := `
		SELECT id, driver_id, start_date, end_date, status
		FROM driver_time_off
		WHERE LOWER(status) = 'approved'
		  AND start_date <= $2 AND end_date >= $1`
	args := []any{start, end}
	if driverID != "" {
		query += ` AND driver_id = $3`
		args = append(args, driverID)
	}
	query += ` ORDER BY start_date, id`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("list_time_off", 0, err)
		return nil, err
	}
	defer rows.Close()

	var entries []domain.DriverTimeOff
	for rows.Next() {
		var entry domain.DriverTimeOff
		if err := rows.Scan(
			&entry.ID,
			&entry.DriverID,
			&entry.StartDate,
			&entry.EndDate,
			&entry.Status,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	logger.DatabaseResult("list_time_off", len(entries), rows.Err())
	return entries, rows.Err()
}

// Ensure TimeOffRepository implements repository.TimeOffRepository.
var _ repository.TimeOffRepository = (*TimeOffRepository)(nil)
