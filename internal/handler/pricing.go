package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"nemt/internal/pricing"
	"nemt/internal/service"
)

// PricingHandler handles HTTP requests for trip pricing.
type PricingHandler struct {
	pricingService *service.PricingService
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// PriceTripRequest is the HTTP request body for pricing a trip.
type PriceTripRequest struct {
	ServiceType          string    `json:"service_type"`
	TripType             string    `json:"trip_type,omitempty"` // one_way, round_trip, multi_stop
	DistanceMiles        float64   `json:"distance_miles"`
	EstimatedWaitMinutes float64   `json:"estimated_wait_minutes"`
	PickupDateTime       time.Time `json:"pickup_date_time"`
	AdditionalStops      int       `json:"additional_stops"`
	HasAttendant         bool      `json:"has_attendant"`
	RequiresOxygen       bool      `json:"requires_oxygen"`
	StairFlights         int       `json:"stair_flights"`
	IsStandingOrder      bool      `json:"is_standing_order"`
}

// ChargesInfo itemizes charges in the response.
type ChargesInfo struct {
	Base            float64 `json:"base"`
	Mileage         float64 `json:"mileage"`
	WaitTime        float64 `json:"wait_time"`
	AdditionalStops float64 `json:"additional_stops"`
	Attendant       float64 `json:"attendant"`
	Oxygen          float64 `json:"oxygen"`
	Stairs          float64 `json:"stairs"`
}

// DiscountsInfo itemizes discounts in the response.
type DiscountsInfo struct {
	RoundTrip     float64 `json:"round_trip"`
	StandingOrder float64 `json:"standing_order"`
}

// RateBreakdownResponse is the HTTP response for pricing a trip.
type RateBreakdownResponse struct {
	Charges              ChargesInfo   `json:"charges"`
	Multiplier           float64       `json:"multiplier"`
	MultiplierReason     string        `json:"multiplier_reason"`
	Subtotal             float64       `json:"subtotal"`
	Discounts            DiscountsInfo `json:"discounts"`
	MinimumChargeApplied bool          `json:"minimum_charge_applied"`
	PerLegTotal          *float64      `json:"per_leg_total,omitempty"`
	Total                float64       `json:"total"`
	ConfigVersion        string        `json:"config_version"`
	Cached               bool          `json:"cached"`
}

// EstimateResponse is the HTTP response for a quick quote.
type EstimateResponse struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CancellationFeeRequest is the HTTP request body for a cancellation fee.
type CancellationFeeRequest struct {
	TripDateTime     time.Time `json:"trip_date_time"`
	CancellationTime time.Time `json:"cancellation_time"`
}

// FeeResponse is the HTTP response for flat fees.
type FeeResponse struct {
	Fee float64 `json:"fee"`
}

// PriceTrip handles POST /v1/trips/price
func (h *PricingHandler) PriceTrip(c *gin.Context) {
	var req PriceTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.pricingService.PriceTrip(c.Request.Context(), pricing.TripDetails{
		ServiceType:          pricing.ServiceType(req.ServiceType),
		TripType:             pricing.TripType(req.TripType),
		DistanceMiles:        req.DistanceMiles,
		EstimatedWaitMinutes: req.EstimatedWaitMinutes,
		PickupDateTime:       req.PickupDateTime,
		AdditionalStops:      req.AdditionalStops,
		HasAttendant:         req.HasAttendant,
		RequiresOxygen:       req.RequiresOxygen,
		StairFlights:         req.StairFlights,
		IsStandingOrder:      req.IsStandingOrder,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	b := result.Breakdown
	response := RateBreakdownResponse{
		Charges: ChargesInfo{
			Base:            money(b.Charges.Base),
			Mileage:         money(b.Charges.Mileage),
			WaitTime:        money(b.Charges.WaitTime),
			AdditionalStops: money(b.Charges.AdditionalStops),
			Attendant:       money(b.Charges.Attendant),
			Oxygen:          money(b.Charges.Oxygen),
			Stairs:          money(b.Charges.Stairs),
		},
		Multiplier:       b.Multiplier.InexactFloat64(),
		MultiplierReason: b.MultiplierReason,
		Subtotal:         money(b.Subtotal),
		Discounts: DiscountsInfo{
			RoundTrip:     money(b.Discounts.RoundTrip),
			StandingOrder: money(b.Discounts.StandingOrder),
		},
		MinimumChargeApplied: b.MinimumChargeApplied,
		Total:                money(b.Total),
		ConfigVersion:        result.ConfigVersion,
		Cached:               result.Cached,
	}
	if !b.PerLegTotal.IsZero() {
		perLeg := money(b.PerLegTotal)
		response.PerLegTotal = &perLeg
	}

	respondJSON(c, http.StatusOK, response)
}

// EstimateTrip handles GET /v1/trips/estimate
func (h *PricingHandler) EstimateTrip(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Query("distance_miles"), 64)
	if err != nil {
		respondError(c, service.ErrInvalidDistance)
		return
	}

	estimate, err := h.pricingService.EstimateCost(c.Request.Context(), distance, pricing.ServiceType(c.Query("service_type")))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, EstimateResponse{
		Min: money(estimate.Min),
		Max: money(estimate.Max),
	})
}

// CancellationFee handles POST /v1/trips/cancellation-fee
func (h *PricingHandler) CancellationFee(c *gin.Context) {
	var req CancellationFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	fee, err := h.pricingService.CancellationFee(c.Request.Context(), req.TripDateTime, req.CancellationTime)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, FeeResponse{Fee: money(fee)})
}

// NoShowFee handles GET /v1/trips/no-show-fee
func (h *PricingHandler) NoShowFee(c *gin.Context) {
	fee, err := h.pricingService.NoShowFee(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, FeeResponse{Fee: money(fee)})
}
