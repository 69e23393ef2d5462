package domain

import "strings"

// ShiftStatus represents the status of a scheduled driver shift.
type ShiftStatus string

const (
	ShiftStatusScheduled ShiftStatus = "scheduled"
	ShiftStatusConfirmed ShiftStatus = "confirmed"
	ShiftStatusCompleted ShiftStatus = "completed"
	ShiftStatusCancelled ShiftStatus = "cancelled"
)

// Excluded reports whether the shift is ignored by conflict detection.
func (s ShiftStatus) Excluded() bool {
	switch ShiftStatus(strings.ToLower(string(s))) {
	case ShiftStatusCancelled:
		return true
	default:
		return false
	}
}

// ShiftDateLayout is the layout of ScheduledShift.Date.
const ShiftDateLayout = "2006-01-02"

// ScheduledShift is a driver's planned on-duty window for one date.
type ScheduledShift struct {
	ID        string
	DriverID  string
	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM
	Status    ShiftStatus
}
