package postgres

import (
	"context"
	"database/sql"
	"time"

	"nemt/internal/domain"
	"nemt/internal/logger"
	"nemt/internal/repository"
)

// ShiftRepository is a PostgreSQL implementation of repository.ShiftRepository.
type ShiftRepository struct {
	q Querier
}

// NewShiftRepository creates a new PostgreSQL shift repository.
func NewShiftRepository(db *sql.DB) *ShiftRepository {
	return &ShiftRepository{q: db}
}

// ListBetween retrieves non-cancelled shifts dated within [start, end]. Dates
// and clock times are rendered by the database so they match the shift's own
// calendar day.
func (r *ShiftRepository) ListBetween(ctx context.Context, start, end time.Time, driverID string) ([]domain.ScheduledShift, error) {
	query := `
		SELECT id, driver_id, to_char(shift_date, 'YYYY-MM-DD'),
		       to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), status
		FROM scheduled_shifts
		WHERE shift_date >= $1::date AND shift_date <= $2::date
		  AND LOWER(status) <> 'cancelled'`
	args := []any{start.Format(domain.ShiftDateLayout), end.Format(domain.ShiftDateLayout)}
	if driverID != "" {
		query += ` AND driver_id = $3`
		args = append(args, driverID)
	}
	query += ` ORDER BY shift_date, start_time, id`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("list_shifts", 0, err)
		return nil, err
	}
	defer rows.Close()

	var shifts []domain.ScheduledShift
	for rows.Next() {
		var shift domain.ScheduledShift
		if err := rows.Scan(
			&shift.ID,
			&shift.DriverID,
			&shift.Date,
			&shift.StartTime,
			&shift.EndTime,
			&shift.Status,
		); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	logger.DatabaseResult("list_shifts", len(shifts), rows.Err())
	return shifts, rows.Err()
}

// Ensure ShiftRepository implements repository.ShiftRepository.
var _ repository.ShiftRepository = (*ShiftRepository)(nil)
