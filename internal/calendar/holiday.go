// Package calendar classifies dates for surcharge purposes: US federal
// holidays, weekends and after-hours service.
package calendar

import (
	"sort"
	"time"
)

const (
	// BusinessDayStartHour is the first hour of standard-rate service.
	BusinessDayStartHour = 6
	// BusinessDayEndHour is the first hour of after-hours service.
	BusinessDayEndHour = 18
)

// Holiday is a named federal holiday on a specific date.
type Holiday struct {
	Name  string
	Month time.Month
	Day   int
	Year  int
}

// Date returns the holiday as midnight in loc.
func (h Holiday) Date(loc *time.Location) time.Time {
	return time.Date(h.Year, h.Month, h.Day, 0, 0, 0, 0, loc)
}

type fixedRule struct {
	name  string
	month time.Month
	day   int
}

// nthWeekdayRule selects the nth weekday of a month; nth < 0 selects the last.
type nthWeekdayRule struct {
	name    string
	month   time.Month
	weekday time.Weekday
	nth     int
}

var fixedHolidays = []fixedRule{
	{"New Year's Day", time.January, 1},
	{"Independence Day", time.July, 4},
	{"Veterans Day", time.November, 11},
	{"Christmas Day", time.December, 25},
}

var floatingHolidays = []nthWeekdayRule{
	{"Martin Luther King Jr. Day", time.January, time.Monday, 3},
	{"Presidents' Day", time.February, time.Monday, 3},
	{"Memorial Day", time.May, time.Monday, -1},
	{"Labor Day", time.September, time.Monday, 1},
	{"Columbus Day", time.October, time.Monday, 2},
	{"Thanksgiving Day", time.November, time.Thursday, 4},
}

// HolidaysForYear returns the federal holidays of year in calendar order.
// Holidays are not shifted to an observed weekday.
func HolidaysForYear(year int) []Holiday {
	holidays := make([]Holiday, 0, len(fixedHolidays)+len(floatingHolidays))

	for _, rule := range fixedHolidays {
		holidays = append(holidays, Holiday{Name: rule.name, Year: year, Month: rule.month, Day: rule.day})
	}
	for _, rule := range floatingHolidays {
		holidays = append(holidays, Holiday{Name: rule.name, Year: year, Month: rule.month, Day: rule.dayIn(year)})
	}

	sort.Slice(holidays, func(i, j int) bool {
		if holidays[i].Month != holidays[j].Month {
			return holidays[i].Month < holidays[j].Month
		}
		return holidays[i].Day < holidays[j].Day
	})
	return holidays
}

func (r nthWeekdayRule) dayIn(year int) int {
	if r.nth < 0 {
		last := time.Date(year, r.month+1, 0, 0, 0, 0, 0, time.UTC)
		back := (int(last.Weekday()) - int(r.weekday) + 7) % 7
		return last.Day() - back
	}
	first := time.Date(year, r.month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(r.weekday) - int(first.Weekday()) + 7) % 7
	return 1 + offset + (r.nth-1)*7
}

// HolidayName returns the holiday falling on t's calendar date, if any.
func HolidayName(t time.Time) (string, bool) {
	for _, h := range HolidaysForYear(t.Year()) {
		if h.Month == t.Month() && h.Day == t.Day() {
			return h.Name, true
		}
	}
	return "", false
}

// IsHoliday reports whether t falls on a federal holiday.
func IsHoliday(t time.Time) bool {
	_, ok := HolidayName(t)
	return ok
}

// IsWeekend reports whether t is a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	day := t.Weekday()
	return day == time.Saturday || day == time.Sunday
}

// IsAfterHours reports whether t is before 06:00 or at/after 18:00 local time.
func IsAfterHours(t time.Time) bool {
	hour := t.Hour()
	return hour < BusinessDayStartHour || hour >= BusinessDayEndHour
}
