package domain

import (
	"strings"
	"time"
)

// TimeOffStatus represents the approval state of a time-off request.
type TimeOffStatus string

const (
	TimeOffStatusPending  TimeOffStatus = "pending"
	TimeOffStatusApproved TimeOffStatus = "approved"
	TimeOffStatusRejected TimeOffStatus = "rejected"
)

// Approved reports whether the request blocks the driver's availability.
func (s TimeOffStatus) Approved() bool {
	return TimeOffStatus(strings.ToLower(string(s))) == TimeOffStatusApproved
}

// DriverTimeOff is a period during which a driver is unavailable.
type DriverTimeOff struct {
	ID        string
	DriverID  string
	StartDate time.Time
	EndDate   time.Time
	Status    TimeOffStatus
}

// Covers reports whether t falls within [StartDate, EndDate] inclusive.
func (o *DriverTimeOff) Covers(t time.Time) bool {
	return !t.Before(o.StartDate) && !t.After(o.EndDate)
}
