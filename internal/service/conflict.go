package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"nemt/internal/domain"
	"nemt/internal/logger"
	"nemt/internal/redis"
	"nemt/internal/repository"
	"nemt/internal/scheduling"
)

// ConflictService loads a scheduling window and runs conflict detection on it.
type ConflictService struct {
	tripRepo    repository.TripRepository
	shiftRepo   repository.ShiftRepository
	timeOffRepo repository.TimeOffRepository
	cache       redis.ReportCacheInterface
	audit       AuditSink
	config      ConflictConfig
	log         *slog.Logger
}

// ConflictConfig contains conflict scan configuration.
type ConflictConfig struct {
	Location  *time.Location // Operator timezone; calendar dates are taken in it
	CacheTTL  time.Duration  // Zero disables report caching
	MaxWindow time.Duration  // Largest scan window accepted
}

// DefaultConflictConfig returns the default conflict scan configuration.
func DefaultConflictConfig() ConflictConfig {
	return ConflictConfig{
		Location:  time.UTC,
		CacheTTL:  60 * time.Second,
		MaxWindow: 93 * 24 * time.Hour,
	}
}

// NewConflictService creates a new ConflictService. cache may be nil.
func NewConflictService(
	tripRepo repository.TripRepository,
	shiftRepo repository.ShiftRepository,
	timeOffRepo repository.TimeOffRepository,
	cache redis.ReportCacheInterface,
	audit AuditSink,
	config ConflictConfig,
) *ConflictService {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.MaxWindow <= 0 {
		config.MaxWindow = DefaultConflictConfig().MaxWindow
	}
	return &ConflictService{
		tripRepo:    tripRepo,
		shiftRepo:   shiftRepo,
		timeOffRepo: timeOffRepo,
		cache:       cache,
		audit:       audit,
		config:      config,
		log:         logger.WithService("conflicts"),
	}
}

// DetectConflictsRequest contains the input for a conflict scan.
type DetectConflictsRequest struct {
	Start    time.Time
	End      time.Time
	DriverID string // Empty scans every driver
	Actor    string
}

// DetectConflicts returns the conflict report for a window, serving it from
// cache when possible.
func (s *ConflictService) DetectConflicts(ctx context.Context, req DetectConflictsRequest) (*domain.ConflictReport, error) {
	return s.scan(ctx, req, domain.AuditActionConflictScan, true)
}

// SweepUpcoming drops every cached report, then rescans the next days starting
// at the operator's midnight of now and caches the fresh report for that window.
func (s *ConflictService) SweepUpcoming(ctx context.Context, now time.Time, days int) (*domain.ConflictReport, error) {
	if days <= 0 {
		return nil, ErrInvalidDateRange
	}
	local := now.In(s.config.Location)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.config.Location)
	end := start.AddDate(0, 0, days).Add(-time.Second)

	if s.cachingEnabled() {
		if err := s.cache.InvalidateConflictReports(ctx); err != nil {
			s.log.WarnContext(ctx, "conflict report cache invalidation failed", "error", err)
		}
	}

	return s.scan(ctx, DetectConflictsRequest{
		Start: start,
		End:   end,
		Actor: "sweep",
	}, domain.AuditActionConflictSweep, false)
}

func (s *ConflictService) scan(ctx context.Context, req DetectConflictsRequest, action domain.AuditAction, useCache bool) (*domain.ConflictReport, error) {
	logger.EnterMethod("ConflictService.scan", "start", req.Start, "end", req.End, "driver_id", req.DriverID)

	if req.Start.IsZero() || req.End.IsZero() || req.End.Before(req.Start) {
		return nil, ErrInvalidDateRange
	}
	if req.End.Sub(req.Start) > s.config.MaxWindow {
		return nil, ErrDateRangeTooLarge
	}

	loc := s.config.Location
	dateRange := domain.DateRange{Start: req.Start.In(loc), End: req.End.In(loc)}
	cacheKey := redis.ReportKey(dateRange, req.DriverID)

	if useCache && s.cachingEnabled() {
		cached, err := s.cache.GetConflictReport(ctx, cacheKey)
		if err != nil {
			s.log.WarnContext(ctx, "conflict report cache read failed", "error", err)
		} else if cached != nil {
			s.log.DebugContext(ctx, "conflict report served from cache", "key", cacheKey)
			s.recordScan(ctx, action, req, dateRange, cached, map[string]any{"cached": true})
			return cached, nil
		}
	}

	trips, err := s.tripRepo.ListScheduledBetween(ctx, dateRange.Start, dateRange.End, req.DriverID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trips: %w", err)
	}
	shifts, err := s.shiftRepo.ListBetween(ctx, dateRange.Start, dateRange.End, req.DriverID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shifts: %w", err)
	}
	timeOff, err := s.timeOffRepo.ListApprovedOverlapping(ctx, dateRange.Start, dateRange.End, req.DriverID)
	if err != nil {
		return nil, fmt.Errorf("failed to load time off: %w", err)
	}

	localizeTrips(trips, loc)
	localizeTimeOff(timeOff, loc)

	report := scheduling.DetectConflicts(trips, shifts, timeOff, dateRange, req.DriverID)

	if s.cachingEnabled() {
		if err := s.cache.SetConflictReport(ctx, cacheKey, &report, s.config.CacheTTL); err != nil {
			s.log.WarnContext(ctx, "conflict report cache write failed", "error", err)
		}
	}

	s.recordScan(ctx, action, req, dateRange, &report, map[string]any{"cached": false, "trips": len(trips)})

	s.log.InfoContext(ctx, "conflict scan complete",
		"action", action,
		"trips", len(trips),
		"shifts", len(shifts),
		"time_off", len(timeOff),
		"conflicts", report.Stats.Total,
		"critical", report.Stats.Critical,
	)

	return &report, nil
}

// recordScan audits a report a caller was shown, whether computed or cached.
func (s *ConflictService) recordScan(ctx context.Context, action domain.AuditAction, req DetectConflictsRequest, dateRange domain.DateRange, report *domain.ConflictReport, extra map[string]any) {
	if s.audit == nil {
		return
	}
	details := map[string]any{
		"driver_id": req.DriverID,
		"total":     report.Stats.Total,
		"critical":  report.Stats.Critical,
		"warning":   report.Stats.Warning,
	}
	for k, v := range extra {
		details[k] = v
	}
	s.audit.Record(ctx, domain.AuditEntry{
		Action:  action,
		Actor:   req.Actor,
		Subject: dateRange.Start.Format(time.RFC3339) + "/" + dateRange.End.Format(time.RFC3339),
		Details: details,
	})
}

func (s *ConflictService) cachingEnabled() bool {
	return s.cache != nil && s.config.CacheTTL > 0
}

// localizeTrips moves trip timestamps into the operator timezone so calendar
// dates and clock times match what dispatchers see.
func localizeTrips(trips []domain.Trip, loc *time.Location) {
	for i := range trips {
		trips[i].ScheduledPickupTime = trips[i].ScheduledPickupTime.In(loc)
		if !trips[i].ActualDropoffTime.IsZero() {
			trips[i].ActualDropoffTime = trips[i].ActualDropoffTime.In(loc)
		}
	}
}

func localizeTimeOff(entries []domain.DriverTimeOff, loc *time.Location) {
	for i := range entries {
		entries[i].StartDate = entries[i].StartDate.In(loc)
		entries[i].EndDate = entries[i].EndDate.In(loc)
	}
}
