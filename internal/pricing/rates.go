// Package pricing computes deterministic NEMT fares from trip attributes and
// a rate policy. Money is carried as decimal.Decimal and only rounded when
// formatted for output.
package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ServiceType is the level of care a trip requires.
type ServiceType string

const (
	ServiceTypeWheelchair ServiceType = "wheelchair"
	ServiceTypeAmbulatory ServiceType = "ambulatory"
	ServiceTypeStretcher  ServiceType = "stretcher"
	ServiceTypeBariatric  ServiceType = "bariatric"
)

// ServiceTypes lists the service types carried by the default policy.
var ServiceTypes = []ServiceType{
	ServiceTypeWheelchair,
	ServiceTypeAmbulatory,
	ServiceTypeStretcher,
	ServiceTypeBariatric,
}

// TripType describes the shape of a trip.
type TripType string

const (
	TripTypeOneWay    TripType = "one_way"
	TripTypeRoundTrip TripType = "round_trip"
	TripTypeMultiStop TripType = "multi_stop"
)

// Valid reports whether t is a known trip type.
func (t TripType) Valid() bool {
	switch t {
	case TripTypeOneWay, TripTypeRoundTrip, TripTypeMultiStop:
		return true
	default:
		return false
	}
}

// DefaultLateCancelWindow is how close to pickup a cancellation starts to cost.
const DefaultLateCancelWindow = 2 * time.Hour

// RateConfig is an immutable pricing policy. Callers must not mutate the maps
// of a config that is shared.
type RateConfig struct {
	Version string

	BaseRates    map[ServiceType]decimal.Decimal
	PerMileRates map[ServiceType]decimal.Decimal

	MinimumCharge     decimal.Decimal
	WaitTimePerMinute decimal.Decimal

	AfterHoursMultiplier decimal.Decimal
	WeekendMultiplier    decimal.Decimal
	HolidayMultiplier    decimal.Decimal

	AdditionalStopFee  decimal.Decimal
	AttendantFee       decimal.Decimal
	OxygenFee          decimal.Decimal
	StairsFeePerFlight decimal.Decimal
	NoShowFee          decimal.Decimal
	LateCancelFee      decimal.Decimal
	LateCancelWindow   time.Duration

	RoundTripDiscount     decimal.Decimal // Fraction, e.g. 0.10
	StandingOrderDiscount decimal.Decimal // Fraction, e.g. 0.05
}

// DefaultRateConfig returns the standard operator rate policy.
func DefaultRateConfig() RateConfig {
	return RateConfig{
		Version: "default",
		BaseRates: map[ServiceType]decimal.Decimal{
			ServiceTypeWheelchair: decimal.NewFromInt(45),
			ServiceTypeAmbulatory: decimal.NewFromInt(35),
			ServiceTypeStretcher:  decimal.NewFromInt(95),
			ServiceTypeBariatric:  decimal.NewFromInt(125),
		},
		PerMileRates: map[ServiceType]decimal.Decimal{
			ServiceTypeWheelchair: decimal.RequireFromString("3.50"),
			ServiceTypeAmbulatory: decimal.RequireFromString("2.50"),
			ServiceTypeStretcher:  decimal.RequireFromString("5.00"),
			ServiceTypeBariatric:  decimal.RequireFromString("6.00"),
		},
		MinimumCharge:         decimal.NewFromInt(55),
		WaitTimePerMinute:     decimal.RequireFromString("0.50"),
		AfterHoursMultiplier:  decimal.RequireFromString("1.25"),
		WeekendMultiplier:     decimal.RequireFromString("1.15"),
		HolidayMultiplier:     decimal.RequireFromString("1.50"),
		AdditionalStopFee:     decimal.NewFromInt(15),
		AttendantFee:          decimal.NewFromInt(25),
		OxygenFee:             decimal.NewFromInt(20),
		StairsFeePerFlight:    decimal.NewFromInt(10),
		NoShowFee:             decimal.NewFromInt(45),
		LateCancelFee:         decimal.NewFromInt(35),
		LateCancelWindow:      DefaultLateCancelWindow,
		RoundTripDiscount:     decimal.RequireFromString("0.10"),
		StandingOrderDiscount: decimal.RequireFromString("0.05"),
	}
}

// ConfigurationError is returned when the rate policy has no entry for a key
// a calculation needs.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("rate configuration has no entry for %q", e.Key)
}

// rates returns the base and per-mile rate for a service type.
func (c *RateConfig) rates(serviceType ServiceType) (decimal.Decimal, decimal.Decimal, error) {
	base, ok := c.BaseRates[serviceType]
	if !ok {
		return decimal.Zero, decimal.Zero, &ConfigurationError{Key: "base_rates." + string(serviceType)}
	}
	perMile, ok := c.PerMileRates[serviceType]
	if !ok {
		return decimal.Zero, decimal.Zero, &ConfigurationError{Key: "per_mile_rates." + string(serviceType)}
	}
	return base, perMile, nil
}
