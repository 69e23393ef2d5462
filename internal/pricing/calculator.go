package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"nemt/internal/calendar"
)

// Multiplier reasons reported in a RateBreakdown.
const (
	ReasonHoliday    = "Holiday rate"
	ReasonWeekend    = "Weekend rate"
	ReasonAfterHours = "After-hours rate"
	ReasonStandard   = "Standard rate"
)

// EstimateSpread is the ratio between the high and low end of a quick quote.
var EstimateSpread = decimal.RequireFromString("1.3")

// TripDetails are the attributes a fare is computed from.
type TripDetails struct {
	ServiceType          ServiceType `json:"service_type"`
	TripType             TripType    `json:"trip_type"`
	DistanceMiles        float64     `json:"distance_miles"`
	EstimatedWaitMinutes float64     `json:"estimated_wait_minutes"`
	PickupDateTime       time.Time   `json:"pickup_date_time"`
	AdditionalStops      int         `json:"additional_stops"`
	HasAttendant         bool        `json:"has_attendant"`
	RequiresOxygen       bool        `json:"requires_oxygen"`
	StairFlights         int         `json:"stair_flights"`
	IsStandingOrder      bool        `json:"is_standing_order"`
}

// Charges itemizes everything billed before discounts.
type Charges struct {
	Base            decimal.Decimal
	Mileage         decimal.Decimal
	WaitTime        decimal.Decimal
	AdditionalStops decimal.Decimal
	Attendant       decimal.Decimal
	Oxygen          decimal.Decimal
	Stairs          decimal.Decimal
}

// Discounts itemizes reductions applied to the subtotal.
type Discounts struct {
	RoundTrip     decimal.Decimal
	StandingOrder decimal.Decimal
}

// RateBreakdown is the itemized result of pricing one trip.
type RateBreakdown struct {
	Charges              Charges
	Multiplier           decimal.Decimal
	MultiplierReason     string
	Subtotal             decimal.Decimal
	Discounts            Discounts
	MinimumChargeApplied bool
	PerLegTotal          decimal.Decimal // Set for round trips only
	Total                decimal.Decimal
}

// CostRange is a quick quote range.
type CostRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// CalculateTripRate prices a trip. The time multiplier covers base and
// mileage only; the minimum charge is enforced per leg after discounts, and
// round trips are doubled last.
func CalculateTripRate(details TripDetails, config RateConfig) (RateBreakdown, error) {
	baseRate, perMile, err := config.rates(details.ServiceType)
	if err != nil {
		return RateBreakdown{}, err
	}

	charges := Charges{
		Base:            baseRate,
		Mileage:         decimal.NewFromFloat(details.DistanceMiles).Mul(perMile),
		WaitTime:        decimal.NewFromFloat(details.EstimatedWaitMinutes).Mul(config.WaitTimePerMinute),
		AdditionalStops: decimal.NewFromInt(int64(details.AdditionalStops)).Mul(config.AdditionalStopFee),
		Attendant:       decimal.Zero,
		Oxygen:          decimal.Zero,
		Stairs:          decimal.NewFromInt(int64(details.StairFlights)).Mul(config.StairsFeePerFlight),
	}
	if details.HasAttendant {
		charges.Attendant = config.AttendantFee
	}
	if details.RequiresOxygen {
		charges.Oxygen = config.OxygenFee
	}

	multiplier, reason := timeMultiplier(details.PickupDateTime, config)

	subtotal := charges.Base.Add(charges.Mileage).Mul(multiplier).
		Add(charges.WaitTime).
		Add(charges.AdditionalStops).
		Add(charges.Attendant).
		Add(charges.Oxygen).
		Add(charges.Stairs)

	roundTrip := details.TripType == TripTypeRoundTrip

	discounts := Discounts{RoundTrip: decimal.Zero, StandingOrder: decimal.Zero}
	if roundTrip {
		discounts.RoundTrip = subtotal.Mul(config.RoundTripDiscount)
	}
	if details.IsStandingOrder {
		discounts.StandingOrder = subtotal.Sub(discounts.RoundTrip).Mul(config.StandingOrderDiscount)
	}

	total := subtotal.Sub(discounts.RoundTrip).Sub(discounts.StandingOrder)
	minimumApplied := false
	if total.LessThan(config.MinimumCharge) {
		total = config.MinimumCharge
		minimumApplied = true
	}

	breakdown := RateBreakdown{
		Charges:              charges,
		Multiplier:           multiplier,
		MultiplierReason:     reason,
		Subtotal:             subtotal,
		Discounts:            discounts,
		MinimumChargeApplied: minimumApplied,
		PerLegTotal:          decimal.Zero,
		Total:                total,
	}
	if roundTrip {
		breakdown.PerLegTotal = total
		breakdown.Total = total.Mul(decimal.NewFromInt(2))
	}

	return breakdown, nil
}

// timeMultiplier picks the first matching surcharge: holiday, weekend, then
// after-hours.
func timeMultiplier(pickup time.Time, config RateConfig) (decimal.Decimal, string) {
	switch {
	case calendar.IsHoliday(pickup):
		return config.HolidayMultiplier, ReasonHoliday
	case calendar.IsWeekend(pickup):
		return config.WeekendMultiplier, ReasonWeekend
	case calendar.IsAfterHours(pickup):
		return config.AfterHoursMultiplier, ReasonAfterHours
	default:
		return decimal.NewFromInt(1), ReasonStandard
	}
}

// EstimateTripCost returns a quick quote range before full trip details are
// known. Min is base plus mileage clamped to the minimum charge.
func EstimateTripCost(distanceMiles float64, serviceType ServiceType, config RateConfig) (CostRange, error) {
	baseRate, perMile, err := config.rates(serviceType)
	if err != nil {
		return CostRange{}, err
	}

	estimate := baseRate.Add(decimal.NewFromFloat(distanceMiles).Mul(perMile))
	if estimate.LessThan(config.MinimumCharge) {
		estimate = config.MinimumCharge
	}

	return CostRange{
		Min: estimate,
		Max: estimate.Mul(EstimateSpread),
	}, nil
}

// CalculateCancellationFee returns zero when the trip is cancelled at least
// LateCancelWindow before pickup and the late cancellation fee otherwise.
func CalculateCancellationFee(tripDateTime, cancellationTime time.Time, config RateConfig) decimal.Decimal {
	window := config.LateCancelWindow
	if window <= 0 {
		window = DefaultLateCancelWindow
	}
	if tripDateTime.Sub(cancellationTime) >= window {
		return decimal.Zero
	}
	return config.LateCancelFee
}

// CalculateNoShowFee returns the flat fee charged when a rider is not present.
func CalculateNoShowFee(config RateConfig) decimal.Decimal {
	return config.NoShowFee
}
