package service

import (
	"time"

	"nemt/internal/calendar"
)

// CalendarService exposes the holiday and surcharge calendar.
type CalendarService struct {
	location *time.Location
}

// NewCalendarService creates a new CalendarService.
func NewCalendarService(location *time.Location) *CalendarService {
	if location == nil {
		location = time.UTC
	}
	return &CalendarService{location: location}
}

// Holidays returns the federal holidays of year.
func (s *CalendarService) Holidays(year int) ([]calendar.Holiday, error) {
	if year < 1900 || year > 2200 {
		return nil, ErrInvalidYear
	}
	return calendar.HolidaysForYear(year), nil
}

// DayClassification describes how a moment is treated for surcharges.
type DayClassification struct {
	Time        time.Time
	Holiday     bool
	HolidayName string
	Weekend     bool
	AfterHours  bool
}

// Classify reports the surcharge calendar flags for t in the operator timezone.
func (s *CalendarService) Classify(t time.Time) DayClassification {
	local := t.In(s.location)
	name, holiday := calendar.HolidayName(local)
	return DayClassification{
		Time:        local,
		Holiday:     holiday,
		HolidayName: name,
		Weekend:     calendar.IsWeekend(local),
		AfterHours:  calendar.IsAfterHours(local),
	}
}
