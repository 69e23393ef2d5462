package scheduling

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"nemt/internal/domain"
)

// MinTurnaroundMinutes is the smallest acceptable gap between two trips of
// the same driver.
const MinTurnaroundMinutes = 15

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"

	resolutionReassign    = "Reassign one trip to another available driver"
	resolutionBuffer      = "Add buffer time between trips or reassign one trip to another driver"
	resolutionUnavailable = "Reassign the trip to an available driver"
)

// DetectConflicts scans trips, shifts and time off for inconsistencies and
// returns them ranked by severity then date. An empty driverID disables the
// driver filter. dateRange is echoed into the report; callers are expected
// to have loaded only records for that window.
func DetectConflicts(
	trips []domain.Trip,
	shifts []domain.ScheduledShift,
	timeOff []domain.DriverTimeOff,
	dateRange domain.DateRange,
	driverID string,
) domain.ConflictReport {
	activeTrips := filterTrips(trips, driverID)
	activeShifts := filterShifts(shifts, driverID)
	approvedTimeOff := filterTimeOff(timeOff, driverID)

	conflicts := make([]domain.Conflict, 0)
	conflicts = append(conflicts, detectTripConflicts(activeTrips)...)
	conflicts = append(conflicts, detectUnavailable(activeTrips, approvedTimeOff)...)
	conflicts = append(conflicts, detectShiftConflicts(activeTrips, activeShifts)...)

	stats := computeStats(conflicts)

	sort.SliceStable(conflicts, func(i, j int) bool {
		ri, rj := conflicts[i].Severity.Rank(), conflicts[j].Severity.Rank()
		if ri != rj {
			return ri < rj
		}
		return conflicts[i].Date < conflicts[j].Date
	})

	return domain.ConflictReport{
		Conflicts: conflicts,
		Stats:     stats,
		DateRange: dateRange,
	}
}

func filterTrips(trips []domain.Trip, driverID string) []domain.Trip {
	result := make([]domain.Trip, 0, len(trips))
	for _, trip := range trips {
		if trip.Status.Terminal() || !trip.HasDriver() {
			continue
		}
		if driverID != "" && trip.DriverID != driverID {
			continue
		}
		result = append(result, trip)
	}
	return result
}

func filterShifts(shifts []domain.ScheduledShift, driverID string) []domain.ScheduledShift {
	result := make([]domain.ScheduledShift, 0, len(shifts))
	for _, shift := range shifts {
		if shift.Status.Excluded() {
			continue
		}
		if driverID != "" && shift.DriverID != driverID {
			continue
		}
		result = append(result, shift)
	}
	return result
}

func filterTimeOff(entries []domain.DriverTimeOff, driverID string) []domain.DriverTimeOff {
	result := make([]domain.DriverTimeOff, 0, len(entries))
	for _, entry := range entries {
		if !entry.Status.Approved() {
			continue
		}
		if driverID != "" && entry.DriverID != driverID {
			continue
		}
		result = append(result, entry)
	}
	return result
}

type driverDay struct {
	driverID string
	date     string
}

// groupByDriverDay buckets trips by driver and pickup date. Buckets keep the
// order in which they were first seen; trips inside a bucket are ordered by
// pickup time.
func groupByDriverDay(trips []domain.Trip) ([]driverDay, map[driverDay][]domain.Trip) {
	var keys []driverDay
	groups := make(map[driverDay][]domain.Trip)
	for _, trip := range trips {
		key := driverDay{driverID: trip.DriverID, date: trip.ScheduledPickupTime.Format(dateLayout)}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], trip)
	}
	for _, key := range keys {
		group := groups[key]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].ScheduledPickupTime.Before(group[j].ScheduledPickupTime)
		})
	}
	return keys, groups
}

func detectTripConflicts(trips []domain.Trip) []domain.Conflict {
	var conflicts []domain.Conflict

	keys, groups := groupByDriverDay(trips)
	for _, key := range keys {
		group := groups[key]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				first, second := &group[i], &group[j]
				a, b := TripInterval(first), TripInterval(second)

				if Overlaps(a, b) {
					conflicts = append(conflicts, domain.Conflict{
						ID:         fmt.Sprintf("overlap-%s-%s", first.ID, second.ID),
						Type:       domain.ConflictTypeTripOverlap,
						Severity:   domain.SeverityCritical,
						DriverID:   key.driverID,
						DriverName: driverName(first),
						Date:       key.date,
						Description: fmt.Sprintf("%s has overlapping trips: %s (%s-%s) and %s (%s-%s)",
							driverName(first),
							first.ID, a.Start.Format(clockLayout), a.End.Format(clockLayout),
							second.ID, b.Start.Format(clockLayout), b.End.Format(clockLayout)),
						SuggestedResolution: resolutionReassign,
						AffectedItems:       []domain.AffectedItem{tripItem(first, a), tripItem(second, b)},
					})
					continue
				}

				gap := GapMinutes(a, b)
				if gap > 0 && gap < MinTurnaroundMinutes {
					conflicts = append(conflicts, domain.Conflict{
						ID:         fmt.Sprintf("gap-%s-%s", first.ID, second.ID),
						Type:       domain.ConflictTypeTimeGap,
						Severity:   domain.SeverityWarning,
						DriverID:   key.driverID,
						DriverName: driverName(first),
						Date:       key.date,
						Description: fmt.Sprintf("Only %d minutes between trip %s (ends %s) and trip %s (starts %s); at least %d minutes are needed",
							int(math.Round(gap)),
							first.ID, a.End.Format(clockLayout),
							second.ID, b.Start.Format(clockLayout),
							MinTurnaroundMinutes),
						SuggestedResolution: resolutionBuffer,
						AffectedItems:       []domain.AffectedItem{tripItem(first, a), tripItem(second, b)},
					})
				}
			}
		}
	}

	return conflicts
}

func detectUnavailable(trips []domain.Trip, timeOff []domain.DriverTimeOff) []domain.Conflict {
	var conflicts []domain.Conflict
	for i := range timeOff {
		entry := &timeOff[i]
		for j := range trips {
			trip := &trips[j]
			if trip.DriverID != entry.DriverID || !entry.Covers(trip.ScheduledPickupTime) {
				continue
			}
			interval := TripInterval(trip)
			conflicts = append(conflicts, domain.Conflict{
				ID:         fmt.Sprintf("unavailable-%s-%s", entry.ID, trip.ID),
				Type:       domain.ConflictTypeDriverUnavailable,
				Severity:   domain.SeverityCritical,
				DriverID:   trip.DriverID,
				DriverName: driverName(trip),
				Date:       trip.ScheduledPickupTime.Format(dateLayout),
				Description: fmt.Sprintf("%s has approved time off from %s to %s but is assigned trip %s at %s",
					driverName(trip),
					entry.StartDate.Format(dateLayout), entry.EndDate.Format(dateLayout),
					trip.ID, trip.ScheduledPickupTime.Format(clockLayout)),
				SuggestedResolution: resolutionUnavailable,
				AffectedItems:       []domain.AffectedItem{tripItem(trip, interval)},
			})
		}
	}
	return conflicts
}

func detectShiftConflicts(trips []domain.Trip, shifts []domain.ScheduledShift) []domain.Conflict {
	var conflicts []domain.Conflict
	for i := range shifts {
		shift := &shifts[i]
		startMinutes, ok := clockMinutes(shift.StartTime)
		if !ok {
			continue
		}
		endMinutes, ok := clockMinutes(shift.EndTime)
		if !ok {
			continue
		}
		shiftDate := shiftDate(shift.Date)

		for j := range trips {
			trip := &trips[j]
			if trip.DriverID != shift.DriverID {
				continue
			}
			pickup := trip.ScheduledPickupTime
			if pickup.Format(dateLayout) != shiftDate {
				continue
			}
			pickupMinutes := pickup.Hour()*60 + pickup.Minute()
			if pickupMinutes >= startMinutes && pickupMinutes <= endMinutes {
				continue
			}

			interval := TripInterval(trip)
			conflicts = append(conflicts, domain.Conflict{
				ID:         fmt.Sprintf("shift-%s-%s", shift.ID, trip.ID),
				Type:       domain.ConflictTypeShiftConflict,
				Severity:   domain.SeverityWarning,
				DriverID:   trip.DriverID,
				DriverName: driverName(trip),
				Date:       shiftDate,
				Description: fmt.Sprintf("Trip %s pickup at %s is outside %s's shift (%s-%s)",
					trip.ID, pickup.Format(clockLayout), driverName(trip),
					formatMinutes(startMinutes), formatMinutes(endMinutes)),
				SuggestedResolution: fmt.Sprintf("Extend the shift to cover %s or reassign the trip to an on-shift driver",
					pickup.Format(clockLayout)),
				AffectedItems: []domain.AffectedItem{
					tripItem(trip, interval),
					{
						Kind:      domain.AffectedItemShift,
						ID:        shift.ID,
						StartTime: shiftDate + " " + formatMinutes(startMinutes),
						EndTime:   shiftDate + " " + formatMinutes(endMinutes),
						Details:   "Scheduled shift",
					},
				},
			})
		}
	}
	return conflicts
}

func computeStats(conflicts []domain.Conflict) domain.ConflictStats {
	stats := domain.ConflictStats{Total: len(conflicts)}
	for _, c := range conflicts {
		switch c.Severity {
		case domain.SeverityCritical:
			stats.Critical++
		case domain.SeverityWarning:
			stats.Warning++
		case domain.SeverityInfo:
			stats.Info++
		}
		switch c.Type {
		case domain.ConflictTypeTripOverlap:
			stats.ByType.TripOverlap++
		case domain.ConflictTypeShiftConflict:
			stats.ByType.ShiftConflict++
		case domain.ConflictTypeDriverUnavailable:
			stats.ByType.DriverUnavailable++
		case domain.ConflictTypeTimeGap:
			stats.ByType.TimeGap++
		}
	}
	return stats
}

func tripItem(trip *domain.Trip, interval Interval) domain.AffectedItem {
	return domain.AffectedItem{
		Kind:      domain.AffectedItemTrip,
		ID:        trip.ID,
		StartTime: interval.Start.Format(time.RFC3339),
		EndTime:   interval.End.Format(time.RFC3339),
		Details:   trip.DestinationLabel,
	}
}

func driverName(trip *domain.Trip) string {
	if trip.DriverName != "" {
		return trip.DriverName
	}
	return "Driver " + trip.DriverID
}

// clockMinutes converts "HH:MM" (or "HH:MM:SS") to minutes since midnight.
func clockMinutes(value string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 24 {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	// 24:00 is end of day; nothing runs past it.
	if hours == 24 && minutes > 0 {
		return 0, false
	}
	return hours*60 + minutes, true
}

func formatMinutes(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// shiftDate accepts both bare dates and timestamps that start with one.
func shiftDate(value string) string {
	value = strings.TrimSpace(value)
	if len(value) > len(dateLayout) {
		return value[:len(dateLayout)]
	}
	return value
}
