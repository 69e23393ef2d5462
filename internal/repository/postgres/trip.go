package postgres

import (
	"context"
	"database/sql"
	"time"

	"nemt/internal/domain"
	"nemt/internal/logger"
	"nemt/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// ListScheduledBetween retrieves non-terminal trips with a pickup in [start, end].
func (r *TripRepository) ListScheduledBetween(ctx context.Context, start, end time.Time, driverID string) ([]domain.Trip, error) {
	query := `
		SELECT t.id, t.driver_id, COALESCE(d.name, ''), t.scheduled_pickup_time, t.actual_dropoff_time,
		       t.estimated_duration_minutes, t.status, COALESCE(t.destination_label, '')
		FROM trips t
		LEFT JOIN drivers d ON d.id = t.driver_id
		WHERE t.scheduled_pickup_time >= $1 AND t.scheduled_pickup_time <= $2
		  AND UPPER(t.status) NOT IN ('CANCELLED', 'COMPLETED')`
	args := []any{start, end}
	if driverID != "" {
		query += ` AND t.driver_id = $3`
		args = append(args, driverID)
	}
	query += ` ORDER BY t.scheduled_pickup_time, t.id`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("list_trips", 0, err)
		return nil, err
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		var trip domain.Trip
		var driver sql.NullString
		var dropoff sql.NullTime
		var duration sql.NullInt64

		if err := rows.Scan(
			&trip.ID,
			&driver,
			&trip.DriverName,
			&trip.ScheduledPickupTime,
			&dropoff,
			&duration,
			&trip.Status,
			&trip.DestinationLabel,
		); err != nil {
			return nil, err
		}

		if driver.Valid {
			trip.DriverID = driver.String
		}
		if dropoff.Valid {
			trip.ActualDropoffTime = dropoff.Time
		}
		if duration.Valid {
			trip.EstimatedDurationMinutes = int(duration.Int64)
		}

		trips = append(trips, trip)
	}

	logger.DatabaseResult("list_trips", len(trips), rows.Err())
	return trips, rows.Err()
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
