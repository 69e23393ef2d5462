package pricing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRateConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadRateConfig("")
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Version)
	assertMoney(t, "45", cfg.BaseRates[ServiceTypeWheelchair], "wheelchair base")
}

func TestLoadRateConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	content := `
version: "2026-q1"
base_rates:
  wheelchair: 50
minimum_charge: 60
multipliers:
  holiday: 1.75
fees:
  late_cancel_window: 3h
discounts:
  round_trip: 0.15
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadRateConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "2026-q1", cfg.Version)
	assertMoney(t, "50", cfg.BaseRates[ServiceTypeWheelchair], "wheelchair base")
	assertMoney(t, "35", cfg.BaseRates[ServiceTypeAmbulatory], "ambulatory base")
	assertMoney(t, "3.5", cfg.PerMileRates[ServiceTypeWheelchair], "wheelchair per mile")
	assertMoney(t, "60", cfg.MinimumCharge, "minimum")
	assertMoney(t, "1.75", cfg.HolidayMultiplier, "holiday multiplier")
	assertMoney(t, "1.15", cfg.WeekendMultiplier, "weekend multiplier")
	assertMoney(t, "0.15", cfg.RoundTripDiscount, "round trip discount")
	assert.Equal(t, 3*time.Hour, cfg.LateCancelWindow)
}

func TestLoadRateConfig_MissingFile(t *testing.T) {
	_, err := LoadRateConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseRateConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "base_rates: [1, 2"},
		{"zero multiplier", "multipliers:\n  weekend: 0\n"},
		{"full discount", "discounts:\n  standing_order: 1\n"},
		{"negative base", "base_rates:\n  wheelchair: -1\n"},
		{"base without per mile", "base_rates:\n  gurney: 80\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRateConfig([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestDefaultRateConfig_IsValid(t *testing.T) {
	cfg := DefaultRateConfig()
	require.NoError(t, cfg.Validate())

	for _, serviceType := range ServiceTypes {
		_, ok := cfg.BaseRates[serviceType]
		assert.True(t, ok, "missing base rate for %s", serviceType)
	}
	assert.True(t, cfg.LateCancelFee.Equal(decimal.NewFromInt(35)))
}
