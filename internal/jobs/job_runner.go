package jobs

import (
	"context"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"

	"nemt/internal/domain"
	"nemt/internal/logger"
	"nemt/internal/pricing"
)

// ConflictSweeper rescans an upcoming window of the schedule.
type ConflictSweeper interface {
	SweepUpcoming(ctx context.Context, now time.Time, days int) (*domain.ConflictReport, error)
}

// RateConfigReloader exposes and swaps the active rate policy.
type RateConfigReloader interface {
	RateConfig(ctx context.Context) (pricing.RateConfig, error)
	Reload(config pricing.RateConfig)
}

// Locker keeps a job from running on more than one replica at once.
type Locker interface {
	AcquireJobLock(ctx context.Context, job string, ttl time.Duration) (string, error)
	ReleaseJobLock(ctx context.Context, job, token string) error
}

// Config holds job parameters.
type Config struct {
	SweepDays      int
	RateConfigPath string // Empty disables policy reloads
	JobTimeout     time.Duration
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	sweeper ConflictSweeper
	rates   RateConfigReloader
	nrApp   *newrelic.Application
	locker  Locker
	config  Config
	now     func() time.Time
}

// NewJobRunner creates a new job runner. nrApp may be nil.
func NewJobRunner(sweeper ConflictSweeper, rates RateConfigReloader, nrApp *newrelic.Application, cfg Config) *JobRunner {
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Minute
	}
	return &JobRunner{
		sweeper: sweeper,
		rates:   rates,
		nrApp:   nrApp,
		config:  cfg,
		now:     time.Now,
	}
}

// WithLocker makes cluster-wide jobs take a distributed lock before running.
func (jr *JobRunner) WithLocker(locker Locker) *JobRunner {
	jr.locker = locker
	return jr
}

// runWithRecovery wraps job execution with panic recovery and a New Relic
// background transaction. Exclusive jobs run on one replica at a time when a
// locker is configured.
func (jr *JobRunner) runWithRecovery(jobName string, exclusive bool, jobFunc func(ctx context.Context) error) {
	txn := jr.nrApp.StartTransaction("job/" + jobName)
	defer txn.End()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(newrelic.NewContext(context.Background(), txn), jr.config.JobTimeout)
	defer cancel()

	if exclusive && jr.locker != nil {
		token, err := jr.locker.AcquireJobLock(ctx, jobName, jr.config.JobTimeout)
		if err != nil {
			logger.Error("Failed to acquire job lock", "job", jobName, "error", err)
			return
		}
		if token == "" {
			logger.Info("Job already running elsewhere, skipping", "job", jobName)
			return
		}
		defer func() {
			if err := jr.locker.ReleaseJobLock(context.Background(), jobName, token); err != nil {
				logger.Warn("Failed to release job lock", "job", jobName, "error", err)
			}
		}()
	}

	start := jr.now()
	logger.Info("Starting job", "job", jobName)
	if err := jobFunc(ctx); err != nil {
		txn.NoticeError(err)
		logger.Error("Job failed", "job", jobName, "error", err)
		return
	}
	logger.Info("Job completed", "job", jobName, "duration", jr.now().Sub(start))
}
