package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"nemt/internal/jobs"
	"nemt/internal/logger"
)

// Schedules holds the cron expressions (with seconds) for each job. An empty
// expression leaves that job unregistered.
type Schedules struct {
	SweepConflicts   string
	ReloadRateConfig string
}

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron     *cron.Cron
	jobs     *jobs.JobRunner
	location *time.Location
}

// NewScheduler creates a scheduler firing in the operator timezone.
func NewScheduler(jobRunner *jobs.JobRunner, schedules Schedules, location *time.Location) *Scheduler {
	if location == nil {
		location = time.UTC
	}
	c := cron.New(
		cron.WithLocation(location),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron:     c,
		jobs:     jobRunner,
		location: location,
	}

	s.registerJobs(schedules)
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs(schedules Schedules) {
	if schedules.SweepConflicts != "" {
		if _, err := s.cron.AddFunc(schedules.SweepConflicts, s.jobs.SweepConflicts); err != nil {
			logger.Error("Failed to register SweepConflicts job", "schedule", schedules.SweepConflicts, "error", err)
		}
	}

	if schedules.ReloadRateConfig != "" {
		if _, err := s.cron.AddFunc(schedules.ReloadRateConfig, s.jobs.ReloadRateConfig); err != nil {
			logger.Error("Failed to register ReloadRateConfig job", "schedule", schedules.ReloadRateConfig, "error", err)
		}
	}

	logger.Info("Cron jobs registered", "count", len(s.cron.Entries()))
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Cron scheduler started")
}

// Stop waits for running jobs and stops the scheduler.
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if any job is registered.
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}

// NextRuns returns the next fire time of each registered job in the
// scheduler's location. Parsed schedules evaluate in the zone of the time they
// are given, so now is converted first.
func (s *Scheduler) NextRuns(now time.Time) []time.Time {
	now = now.In(s.location)
	entries := s.cron.Entries()
	next := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		next = append(next, entry.Schedule.Next(now))
	}
	return next
}
