package jobs

import (
	"context"
	"fmt"

	"nemt/internal/logger"
)

// SweepConflicts rescans the upcoming days and refreshes the cached report.
func (jr *JobRunner) SweepConflicts() {
	jr.runWithRecovery("SweepConflicts", true, func(ctx context.Context) error {
		if jr.sweeper == nil {
			return nil
		}
		report, err := jr.sweeper.SweepUpcoming(ctx, jr.now(), jr.config.SweepDays)
		if err != nil {
			return fmt.Errorf("sweep upcoming conflicts: %w", err)
		}

		if report.Stats.Critical > 0 {
			logger.Warn("Critical scheduling conflicts in upcoming window",
				"critical", report.Stats.Critical,
				"total", report.Stats.Total,
				"start", report.DateRange.Start,
				"end", report.DateRange.End)
		}
		return nil
	})
}
