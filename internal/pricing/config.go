package pricing

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// rateFile is the on-disk YAML shape of a RateConfig. Keys left out of the
// file keep their default values.
type rateFile struct {
	Version string `yaml:"version"`

	BaseRates    map[string]float64 `yaml:"base_rates"`
	PerMileRates map[string]float64 `yaml:"per_mile_rates"`

	MinimumCharge     float64 `yaml:"minimum_charge"`
	WaitTimePerMinute float64 `yaml:"wait_time_per_minute"`

	Multipliers struct {
		AfterHours float64 `yaml:"after_hours"`
		Weekend    float64 `yaml:"weekend"`
		Holiday    float64 `yaml:"holiday"`
	} `yaml:"multipliers"`

	Fees struct {
		AdditionalStop   float64       `yaml:"additional_stop"`
		Attendant        float64       `yaml:"attendant"`
		Oxygen           float64       `yaml:"oxygen"`
		StairsPerFlight  float64       `yaml:"stairs_per_flight"`
		NoShow           float64       `yaml:"no_show"`
		LateCancel       float64       `yaml:"late_cancel"`
		LateCancelWindow time.Duration `yaml:"late_cancel_window"`
	} `yaml:"fees"`

	Discounts struct {
		RoundTrip     float64 `yaml:"round_trip"`
		StandingOrder float64 `yaml:"standing_order"`
	} `yaml:"discounts"`
}

// LoadRateConfig reads a YAML rate policy from path. An empty path yields the
// default policy.
func LoadRateConfig(path string) (RateConfig, error) {
	if path == "" {
		return DefaultRateConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return RateConfig{}, fmt.Errorf("failed to read rate config: %w", err)
	}

	return ParseRateConfig(data)
}

// ParseRateConfig decodes a YAML rate policy layered over the defaults.
func ParseRateConfig(data []byte) (RateConfig, error) {
	file := toRateFile(DefaultRateConfig())
	if err := yaml.Unmarshal(data, &file); err != nil {
		return RateConfig{}, fmt.Errorf("failed to parse rate config: %w", err)
	}

	cfg := file.toRateConfig()
	if err := cfg.Validate(); err != nil {
		return RateConfig{}, err
	}
	return cfg, nil
}

// Validate checks the policy for values no calculation could use.
func (c *RateConfig) Validate() error {
	if len(c.BaseRates) == 0 {
		return errors.New("rate config: base_rates is empty")
	}
	for serviceType, base := range c.BaseRates {
		if base.IsNegative() {
			return fmt.Errorf("rate config: base_rates.%s must not be negative", serviceType)
		}
		perMile, ok := c.PerMileRates[serviceType]
		if !ok {
			return fmt.Errorf("rate config: per_mile_rates.%s is missing", serviceType)
		}
		if perMile.IsNegative() {
			return fmt.Errorf("rate config: per_mile_rates.%s must not be negative", serviceType)
		}
	}

	for name, multiplier := range map[string]decimal.Decimal{
		"after_hours": c.AfterHoursMultiplier,
		"weekend":     c.WeekendMultiplier,
		"holiday":     c.HolidayMultiplier,
	} {
		if !multiplier.IsPositive() {
			return fmt.Errorf("rate config: multipliers.%s must be positive", name)
		}
	}

	one := decimal.NewFromInt(1)
	for name, discount := range map[string]decimal.Decimal{
		"round_trip":     c.RoundTripDiscount,
		"standing_order": c.StandingOrderDiscount,
	} {
		if discount.IsNegative() || !discount.LessThan(one) {
			return fmt.Errorf("rate config: discounts.%s must be in [0, 1)", name)
		}
	}

	if c.MinimumCharge.IsNegative() {
		return errors.New("rate config: minimum_charge must not be negative")
	}
	return nil
}

func toRateFile(cfg RateConfig) rateFile {
	var f rateFile
	f.Version = cfg.Version
	f.BaseRates = make(map[string]float64, len(cfg.BaseRates))
	for k, v := range cfg.BaseRates {
		f.BaseRates[string(k)] = v.InexactFloat64()
	}
	f.PerMileRates = make(map[string]float64, len(cfg.PerMileRates))
	for k, v := range cfg.PerMileRates {
		f.PerMileRates[string(k)] = v.InexactFloat64()
	}
	f.MinimumCharge = cfg.MinimumCharge.InexactFloat64()
	f.WaitTimePerMinute = cfg.WaitTimePerMinute.InexactFloat64()
	f.Multipliers.AfterHours = cfg.AfterHoursMultiplier.InexactFloat64()
	f.Multipliers.Weekend = cfg.WeekendMultiplier.InexactFloat64()
	f.Multipliers.Holiday = cfg.HolidayMultiplier.InexactFloat64()
	f.Fees.AdditionalStop = cfg.AdditionalStopFee.InexactFloat64()
	f.Fees.Attendant = cfg.AttendantFee.InexactFloat64()
	f.Fees.Oxygen = cfg.OxygenFee.InexactFloat64()
	f.Fees.StairsPerFlight = cfg.StairsFeePerFlight.InexactFloat64()
	f.Fees.NoShow = cfg.NoShowFee.InexactFloat64()
	f.Fees.LateCancel = cfg.LateCancelFee.InexactFloat64()
	f.Fees.LateCancelWindow = cfg.LateCancelWindow
	f.Discounts.RoundTrip = cfg.RoundTripDiscount.InexactFloat64()
	f.Discounts.StandingOrder = cfg.StandingOrderDiscount.InexactFloat64()
	return f
}

func (f rateFile) toRateConfig() RateConfig {
	cfg := RateConfig{
		Version:               f.Version,
		BaseRates:             make(map[ServiceType]decimal.Decimal, len(f.BaseRates)),
		PerMileRates:          make(map[ServiceType]decimal.Decimal, len(f.PerMileRates)),
		MinimumCharge:         decimal.NewFromFloat(f.MinimumCharge),
		WaitTimePerMinute:     decimal.NewFromFloat(f.WaitTimePerMinute),
		AfterHoursMultiplier:  decimal.NewFromFloat(f.Multipliers.AfterHours),
		WeekendMultiplier:     decimal.NewFromFloat(f.Multipliers.Weekend),
		HolidayMultiplier:     decimal.NewFromFloat(f.Multipliers.Holiday),
		AdditionalStopFee:     decimal.NewFromFloat(f.Fees.AdditionalStop),
		AttendantFee:          decimal.NewFromFloat(f.Fees.Attendant),
		OxygenFee:             decimal.NewFromFloat(f.Fees.Oxygen),
		StairsFeePerFlight:    decimal.NewFromFloat(f.Fees.StairsPerFlight),
		NoShowFee:             decimal.NewFromFloat(f.Fees.NoShow),
		LateCancelFee:         decimal.NewFromFloat(f.Fees.LateCancel),
		LateCancelWindow:      f.Fees.LateCancelWindow,
		RoundTripDiscount:     decimal.NewFromFloat(f.Discounts.RoundTrip),
		StandingOrderDiscount: decimal.NewFromFloat(f.Discounts.StandingOrder),
	}
	for k, v := range f.BaseRates {
		cfg.BaseRates[ServiceType(k)] = decimal.NewFromFloat(v)
	}
	for k, v := range f.PerMileRates {
		cfg.PerMileRates[ServiceType(k)] = decimal.NewFromFloat(v)
	}
	return cfg
}
