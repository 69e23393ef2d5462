package jobs

import (
	"context"
	"fmt"

	"nemt/internal/logger"
	"nemt/internal/pricing"
)

// ReloadRateConfig rereads the rate policy file and swaps it in when its
// version changed. A file that fails to load or validate leaves the active
// policy in place. Every replica reloads its own copy.
func (jr *JobRunner) ReloadRateConfig() {
	jr.runWithRecovery("ReloadRateConfig", false, func(ctx context.Context) error {
		if jr.rates == nil || jr.config.RateConfigPath == "" {
			return nil
		}

		next, err := pricing.LoadRateConfig(jr.config.RateConfigPath)
		if err != nil {
			return fmt.Errorf("load rate config: %w", err)
		}

		current, err := jr.rates.RateConfig(ctx)
		if err != nil {
			return fmt.Errorf("read active rate config: %w", err)
		}
		if current.Version == next.Version {
			logger.Debug("Rate config unchanged", "version", next.Version)
			return nil
		}

		jr.rates.Reload(next)
		logger.Info("Rate config reloaded", "from", current.Version, "to", next.Version)
		return nil
	})
}
