package domain

import (
	"strings"
	"time"
)

// TripStatus represents the dispatch status of a transport trip.
type TripStatus string

const (
	TripStatusPending    TripStatus = "PENDING"
	TripStatusScheduled  TripStatus = "SCHEDULED"
	TripStatusAssigned   TripStatus = "ASSIGNED"
	TripStatusInProgress TripStatus = "IN_PROGRESS"
	TripStatusCompleted  TripStatus = "COMPLETED"
	TripStatusCancelled  TripStatus = "CANCELLED"
)

// Terminal reports whether a trip in this status can no longer conflict
// with future work. Unknown statuses are treated as live.
func (s TripStatus) Terminal() bool {
	switch TripStatus(strings.ToUpper(string(s))) {
	case TripStatusCompleted, TripStatusCancelled:
		return true
	default:
		return false
	}
}

// DefaultTripDurationMinutes is used when a trip carries no usable estimate.
const DefaultTripDurationMinutes = 60

// Trip represents a single scheduled medical transport.
type Trip struct {
	ID                       string
	DriverID                 string // Empty when unassigned
	DriverName               string
	ScheduledPickupTime      time.Time
	ActualDropoffTime        time.Time // Zero when the trip has not been dropped off
	EstimatedDurationMinutes int       // <= 0 means no estimate
	Status                   TripStatus
	DestinationLabel         string
}

// HasDriver reports whether the trip is assigned to a driver.
func (t *Trip) HasDriver() bool {
	return t.DriverID != ""
}

// DurationMinutes returns the estimated duration, falling back to the default.
func (t *Trip) DurationMinutes() int {
	if t.EstimatedDurationMinutes <= 0 {
		return DefaultTripDurationMinutes
	}
	return t.EstimatedDurationMinutes
}

// EndTime returns the actual dropoff when known, otherwise the estimated end.
func (t *Trip) EndTime() time.Time {
	if !t.ActualDropoffTime.IsZero() {
		return t.ActualDropoffTime
	}
	return t.ScheduledPickupTime.Add(time.Duration(t.DurationMinutes()) * time.Minute)
}
