package pricing

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainTuesday is a non-holiday weekday during business hours.
var plainTuesday = time.Date(2026, time.February, 10, 10, 0, 0, 0, time.UTC)

func assertMoney(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "%s: expected %s, got %s", field, want, got.String())
}

func TestCalculateTripRate_PlainWeekday(t *testing.T) {
	details := TripDetails{
		ServiceType:    ServiceTypeWheelchair,
		TripType:       TripTypeOneWay,
		DistanceMiles:  10,
		PickupDateTime: plainTuesday,
	}

	breakdown, err := CalculateTripRate(details, DefaultRateConfig())
	require.NoError(t, err)

	assertMoney(t, "45", breakdown.Charges.Base, "base")
	assertMoney(t, "35", breakdown.Charges.Mileage, "mileage")
	assertMoney(t, "1", breakdown.Multiplier, "multiplier")
	assert.Equal(t, ReasonStandard, breakdown.MultiplierReason)
	assertMoney(t, "80", breakdown.Subtotal, "subtotal")
	assertMoney(t, "80", breakdown.Total, "total")
	assert.False(t, breakdown.MinimumChargeApplied)
	assert.True(t, breakdown.PerLegTotal.IsZero())
}

func TestCalculateTripRate_MultiplierPriority(t *testing.T) {
	tests := []struct {
		name       string
		pickup     time.Time
		wantReason string
		wantTotal  string
	}{
		{"holiday on a saturday", time.Date(2026, time.July, 4, 10, 0, 0, 0, time.UTC), ReasonHoliday, "120"},
		{"holiday after hours", time.Date(2026, time.November, 26, 20, 0, 0, 0, time.UTC), ReasonHoliday, "120"},
		{"weekend after hours", time.Date(2026, time.February, 14, 5, 0, 0, 0, time.UTC), ReasonWeekend, "92"},
		{"weekend", time.Date(2026, time.February, 14, 10, 0, 0, 0, time.UTC), ReasonWeekend, "92"},
		{"weekday evening", time.Date(2026, time.February, 10, 18, 0, 0, 0, time.UTC), ReasonAfterHours, "100"},
		{"weekday early morning", time.Date(2026, time.February, 10, 5, 59, 0, 0, time.UTC), ReasonAfterHours, "100"},
		{"weekday six am", time.Date(2026, time.February, 10, 6, 0, 0, 0, time.UTC), ReasonStandard, "80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown, err := CalculateTripRate(TripDetails{
				ServiceType:    ServiceTypeWheelchair,
				TripType:       TripTypeOneWay,
				DistanceMiles:  10,
				PickupDateTime: tt.pickup,
			}, DefaultRateConfig())
			require.NoError(t, err)

			assert.Equal(t, tt.wantReason, breakdown.MultiplierReason)
			assertMoney(t, tt.wantTotal, breakdown.Total, "total")
		})
	}
}

func TestCalculateTripRate_FlatFeesAreNotMultiplied(t *testing.T) {
	details := TripDetails{
		ServiceType:          ServiceTypeWheelchair,
		TripType:             TripTypeMultiStop,
		DistanceMiles:        10,
		EstimatedWaitMinutes: 20,
		PickupDateTime:       time.Date(2026, time.February, 14, 10, 0, 0, 0, time.UTC),
		AdditionalStops:      2,
		HasAttendant:         true,
		RequiresOxygen:       true,
		StairFlights:         2,
	}

	breakdown, err := CalculateTripRate(details, DefaultRateConfig())
	require.NoError(t, err)

	assertMoney(t, "10", breakdown.Charges.WaitTime, "wait time")
	assertMoney(t, "30", breakdown.Charges.AdditionalStops, "additional stops")
	assertMoney(t, "25", breakdown.Charges.Attendant, "attendant")
	assertMoney(t, "20", breakdown.Charges.Oxygen, "oxygen")
	assertMoney(t, "20", breakdown.Charges.Stairs, "stairs")
	// 1.15 * (45 + 35) + 10 + 30 + 25 + 20 + 20
	assertMoney(t, "197", breakdown.Subtotal, "subtotal")
	assertMoney(t, "197", breakdown.Total, "total")
}

func TestCalculateTripRate_DiscountSequencing(t *testing.T) {
	cfg := DefaultRateConfig()
	cfg.BaseRates[ServiceTypeAmbulatory] = decimal.NewFromInt(100)
	cfg.PerMileRates[ServiceTypeAmbulatory] = decimal.Zero

	breakdown, err := CalculateTripRate(TripDetails{
		ServiceType:     ServiceTypeAmbulatory,
		TripType:        TripTypeRoundTrip,
		PickupDateTime:  plainTuesday,
		IsStandingOrder: true,
	}, cfg)
	require.NoError(t, err)

	assertMoney(t, "100", breakdown.Subtotal, "subtotal")
	assertMoney(t, "10", breakdown.Discounts.RoundTrip, "round trip discount")
	assertMoney(t, "4.5", breakdown.Discounts.StandingOrder, "standing order discount")
	assertMoney(t, "85.5", breakdown.PerLegTotal, "per leg")
	assertMoney(t, "171", breakdown.Total, "total")
}

func TestCalculateTripRate_StandingOrderWithoutRoundTrip(t *testing.T) {
	breakdown, err := CalculateTripRate(TripDetails{
		ServiceType:     ServiceTypeWheelchair,
		TripType:        TripTypeOneWay,
		DistanceMiles:   10,
		PickupDateTime:  plainTuesday,
		IsStandingOrder: true,
	}, DefaultRateConfig())
	require.NoError(t, err)

	assert.True(t, breakdown.Discounts.RoundTrip.IsZero())
	assertMoney(t, "4", breakdown.Discounts.StandingOrder, "standing order discount")
	assertMoney(t, "76", breakdown.Total, "total")
}

func TestCalculateTripRate_MinimumChargeBeforeDoubling(t *testing.T) {
	breakdown, err := CalculateTripRate(TripDetails{
		ServiceType:    ServiceTypeAmbulatory,
		TripType:       TripTypeRoundTrip,
		DistanceMiles:  0.5,
		PickupDateTime: plainTuesday,
	}, DefaultRateConfig())
	require.NoError(t, err)

	assertMoney(t, "36.25", breakdown.Subtotal, "subtotal")
	assert.True(t, breakdown.MinimumChargeApplied)
	assertMoney(t, "55", breakdown.PerLegTotal, "per leg")
	assertMoney(t, "110", breakdown.Total, "total")
}

func TestCalculateTripRate_MinimumChargeAfterDiscounts(t *testing.T) {
	// 35 + 8 * 2.5 = 55 exactly, then 5% standing order pulls it under the floor.
	breakdown, err := CalculateTripRate(TripDetails{
		ServiceType:     ServiceTypeAmbulatory,
		TripType:        TripTypeOneWay,
		DistanceMiles:   8,
		PickupDateTime:  plainTuesday,
		IsStandingOrder: true,
	}, DefaultRateConfig())
	require.NoError(t, err)

	assertMoney(t, "2.75", breakdown.Discounts.StandingOrder, "standing order discount")
	assert.True(t, breakdown.MinimumChargeApplied)
	assertMoney(t, "55", breakdown.Total, "total")
}

func TestCalculateTripRate_UnknownServiceType(t *testing.T) {
	_, err := CalculateTripRate(TripDetails{
		ServiceType:    ServiceType("helicopter"),
		TripType:       TripTypeOneWay,
		PickupDateTime: plainTuesday,
	}, DefaultRateConfig())

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "base_rates.helicopter", cfgErr.Key)
}

func TestCalculateTripRate_MissingPerMileRate(t *testing.T) {
	cfg := DefaultRateConfig()
	delete(cfg.PerMileRates, ServiceTypeStretcher)

	_, err := CalculateTripRate(TripDetails{ServiceType: ServiceTypeStretcher, PickupDateTime: plainTuesday}, cfg)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "per_mile_rates.stretcher", cfgErr.Key)
}

func TestEstimateTripCost(t *testing.T) {
	tests := []struct {
		name        string
		distance    float64
		serviceType ServiceType
		wantMin     string
		wantMax     string
	}{
		{"above minimum", 10, ServiceTypeWheelchair, "80", "104"},
		{"clamped to minimum", 1, ServiceTypeAmbulatory, "55", "71.5"},
		{"stretcher", 20, ServiceTypeStretcher, "195", "253.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			estimate, err := EstimateTripCost(tt.distance, tt.serviceType, DefaultRateConfig())
			require.NoError(t, err)
			assertMoney(t, tt.wantMin, estimate.Min, "min")
			assertMoney(t, tt.wantMax, estimate.Max, "max")
		})
	}

	_, err := EstimateTripCost(5, ServiceType("unknown"), DefaultRateConfig())
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestCalculateCancellationFee(t *testing.T) {
	trip := time.Date(2026, time.February, 10, 14, 0, 0, 0, time.UTC)
	cfg := DefaultRateConfig()

	tests := []struct {
		name        string
		cancelledAt time.Time
		want        string
	}{
		{"day before", trip.Add(-24 * time.Hour), "0"},
		{"exactly two hours", trip.Add(-2 * time.Hour), "0"},
		{"just inside window", trip.Add(-2*time.Hour + time.Minute), "35"},
		{"after pickup", trip.Add(10 * time.Minute), "35"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertMoney(t, tt.want, CalculateCancellationFee(trip, tt.cancelledAt, cfg), "fee")
		})
	}
}

func TestCalculateNoShowFee(t *testing.T) {
	assertMoney(t, "45", CalculateNoShowFee(DefaultRateConfig()), "no-show fee")
}
