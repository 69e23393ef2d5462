// Package scheduling detects inconsistencies between trips, driver shifts and
// approved time off. Everything here is pure and safe for concurrent use.
package scheduling

import (
	"time"

	"nemt/internal/domain"
)

// Interval is a half-open span of time [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether a and b share any instant. Touching endpoints do
// not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// GapMinutes returns the signed minutes from the end of a to the start of b.
// The result is negative when the intervals overlap; check Overlaps first.
func GapMinutes(a, b Interval) float64 {
	return b.Start.Sub(a.End).Minutes()
}

// TripInterval resolves the span a trip occupies its driver.
func TripInterval(trip *domain.Trip) Interval {
	return Interval{
		Start: trip.ScheduledPickupTime,
		End:   trip.EndTime(),
	}
}
