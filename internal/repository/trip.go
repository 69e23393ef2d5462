package repository

import (
	"context"
	"time"

	"nemt/internal/domain"
)

// TripRepository defines the read operations the dispatch engine needs on trips.
type TripRepository interface {
	// ListScheduledBetween retrieves non-terminal trips whose pickup falls in
	// [start, end]. An empty driverID returns trips for every driver.
	ListScheduledBetween(ctx context.Context, start, end time.Time, driverID string) ([]domain.Trip, error)
}

// ShiftRepository defines the read operations on driver shifts.
type ShiftRepository interface {
	// ListBetween retrieves non-cancelled shifts dated within [start, end].
	ListBetween(ctx context.Context, start, end time.Time, driverID string) ([]domain.ScheduledShift, error)
}

// TimeOffRepository defines the read operations on driver time off.
type TimeOffRepository interface {
	// ListApprovedOverlapping retrieves approved time off intersecting [start, end].
	ListApprovedOverlapping(ctx context.Context, start, end time.Time, driverID string) ([]domain.DriverTimeOff, error)
}
