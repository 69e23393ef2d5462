package domain

import "time"

// ConflictType classifies a scheduling inconsistency.
type ConflictType string

const (
	ConflictTypeTripOverlap       ConflictType = "trip_overlap"
	ConflictTypeTimeGap           ConflictType = "time_gap"
	ConflictTypeDriverUnavailable ConflictType = "driver_unavailable"
	ConflictTypeShiftConflict     ConflictType = "shift_conflict"
	ConflictTypeVehicleConflict   ConflictType = "vehicle_conflict"
)

// Severity ranks how urgently a conflict needs a dispatcher.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Rank orders severities, lowest first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// AffectedItemKind identifies the entity behind an AffectedItem.
type AffectedItemKind string

const (
	AffectedItemTrip  AffectedItemKind = "trip"
	AffectedItemShift AffectedItemKind = "shift"
)

// AffectedItem references a trip or shift involved in a conflict.
type AffectedItem struct {
	Kind      AffectedItemKind `json:"kind"`
	ID        string           `json:"id"`
	StartTime string           `json:"start_time"`
	EndTime   string           `json:"end_time"`
	Details   string           `json:"details"`
}

// Conflict is a single detected scheduling inconsistency.
type Conflict struct {
	ID                  string         `json:"id"`
	Type                ConflictType   `json:"type"`
	Severity            Severity       `json:"severity"`
	DriverID            string         `json:"driver_id"`
	DriverName          string         `json:"driver_name"`
	Date                string         `json:"date"`
	Description         string         `json:"description"`
	SuggestedResolution string         `json:"suggested_resolution"`
	AffectedItems       []AffectedItem `json:"affected_items"`
}

// ConflictTypeCounts counts conflicts by type.
type ConflictTypeCounts struct {
	TripOverlap       int `json:"trip_overlap"`
	ShiftConflict     int `json:"shift_conflict"`
	DriverUnavailable int `json:"driver_unavailable"`
	TimeGap           int `json:"time_gap"`
}

// ConflictStats summarizes a report.
type ConflictStats struct {
	Total    int                `json:"total"`
	Critical int                `json:"critical"`
	Warning  int                `json:"warning"`
	Info     int                `json:"info"`
	ByType   ConflictTypeCounts `json:"by_type"`
}

// DateRange is a closed window of time.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ConflictReport is the result of a conflict scan.
type ConflictReport struct {
	Conflicts []Conflict    `json:"conflicts"`
	Stats     ConflictStats `json:"stats"`
	DateRange DateRange     `json:"date_range"`
}
