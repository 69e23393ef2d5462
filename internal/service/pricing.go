package service

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"nemt/internal/domain"
	"nemt/internal/logger"
	"nemt/internal/pricing"
	"nemt/internal/redis"
)

// RateConfigProvider supplies the active rate policy.
type RateConfigProvider interface {
	RateConfig(ctx context.Context) (pricing.RateConfig, error)
}

// StaticRateConfigProvider serves a policy loaded once at startup. Reload
// swaps it atomically for subsequent requests.
type StaticRateConfigProvider struct {
	mu     sync.RWMutex
	config pricing.RateConfig
}

// NewStaticRateConfigProvider creates a provider for a fixed policy.
func NewStaticRateConfigProvider(config pricing.RateConfig) *StaticRateConfigProvider {
	return &StaticRateConfigProvider{config: config}
}

// RateConfig returns the current policy.
func (p *StaticRateConfigProvider) RateConfig(ctx context.Context) (pricing.RateConfig, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.config, nil
}

// Reload replaces the current policy.
func (p *StaticRateConfigProvider) Reload(config pricing.RateConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.config = config
}

// PricingService prices trips against the active rate policy.
type PricingService struct {
	provider RateConfigProvider
	cache    redis.QuoteCacheInterface
	audit    AuditSink
	location *time.Location
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewPricingService creates a new PricingService. cache and audit may be nil.
func NewPricingService(
	provider RateConfigProvider,
	cache redis.QuoteCacheInterface,
	audit AuditSink,
	location *time.Location,
	cacheTTL time.Duration,
) *PricingService {
	if location == nil {
		location = time.UTC
	}
	return &PricingService{
		provider: provider,
		cache:    cache,
		audit:    audit,
		location: location,
		cacheTTL: cacheTTL,
		log:      logger.WithService("pricing"),
	}
}

// PriceTripResult contains the result of pricing a trip.
type PriceTripResult struct {
	Breakdown     pricing.RateBreakdown
	ConfigVersion string
	Cached        bool
}

// PriceTrip validates trip details and computes the fare breakdown.
func (s *PricingService) PriceTrip(ctx context.Context, details pricing.TripDetails) (*PriceTripResult, error) {
	logger.EnterMethod("PricingService.PriceTrip", "service_type", details.ServiceType, "trip_type", details.TripType)

	if details.TripType == "" {
		details.TripType = pricing.TripTypeOneWay
	}
	if err := validateTripDetails(details); err != nil {
		return nil, err
	}
	details.PickupDateTime = details.PickupDateTime.In(s.location)

	config, err := s.provider.RateConfig(ctx)
	if err != nil {
		return nil, err
	}

	var cacheKey string
	if s.cachingEnabled() {
		cacheKey, err = redis.QuoteKey(details, config.Version)
		if err != nil {
			s.log.WarnContext(ctx, "failed to build quote cache key", "error", err)
		} else if cached, err := s.cache.GetQuote(ctx, cacheKey); err != nil {
			s.log.WarnContext(ctx, "quote cache read failed", "error", err)
		} else if cached != nil {
			s.recordQuote(ctx, details, cached, config.Version, true)
			return &PriceTripResult{Breakdown: *cached, ConfigVersion: config.Version, Cached: true}, nil
		}
	}

	breakdown, err := pricing.CalculateTripRate(details, config)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if err := s.cache.SetQuote(ctx, cacheKey, &breakdown, s.cacheTTL); err != nil {
			s.log.WarnContext(ctx, "quote cache write failed", "error", err)
		}
	}

	s.recordQuote(ctx, details, &breakdown, config.Version, false)

	return &PriceTripResult{Breakdown: breakdown, ConfigVersion: config.Version}, nil
}

// EstimateCost returns a quick quote range for a distance and service type.
func (s *PricingService) EstimateCost(ctx context.Context, distanceMiles float64, serviceType pricing.ServiceType) (pricing.CostRange, error) {
	if !validDistance(distanceMiles) {
		return pricing.CostRange{}, ErrInvalidDistance
	}
	config, err := s.provider.RateConfig(ctx)
	if err != nil {
		return pricing.CostRange{}, err
	}
	return pricing.EstimateTripCost(distanceMiles, serviceType, config)
}

// CancellationFee returns the fee for cancelling a trip at cancelledAt.
func (s *PricingService) CancellationFee(ctx context.Context, tripDateTime, cancelledAt time.Time) (decimal.Decimal, error) {
	if tripDateTime.IsZero() || cancelledAt.IsZero() {
		return decimal.Zero, ErrInvalidCancellationTime
	}
	config, err := s.provider.RateConfig(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return pricing.CalculateCancellationFee(tripDateTime, cancelledAt, config), nil
}

// NoShowFee returns the flat no-show fee.
func (s *PricingService) NoShowFee(ctx context.Context) (decimal.Decimal, error) {
	config, err := s.provider.RateConfig(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return pricing.CalculateNoShowFee(config), nil
}

// recordQuote audits a fare a caller was shown, whether computed or cached.
func (s *PricingService) recordQuote(ctx context.Context, details pricing.TripDetails, breakdown *pricing.RateBreakdown, configVersion string, cached bool) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, domain.AuditEntry{
		Action:  domain.AuditActionTripPriced,
		Actor:   "api",
		Subject: string(details.ServiceType),
		Details: map[string]any{
			"trip_type":         details.TripType,
			"distance_miles":    details.DistanceMiles,
			"multiplier_reason": breakdown.MultiplierReason,
			"total":             breakdown.Total.StringFixed(2),
			"config_version":    configVersion,
			"cached":            cached,
		},
	})
}

func (s *PricingService) cachingEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

func validateTripDetails(details pricing.TripDetails) error {
	if !details.TripType.Valid() {
		return ErrInvalidTripType
	}
	if !validDistance(details.DistanceMiles) {
		return ErrInvalidDistance
	}
	if details.PickupDateTime.IsZero() {
		return ErrInvalidPickupTime
	}
	if details.EstimatedWaitMinutes < 0 || math.IsNaN(details.EstimatedWaitMinutes) ||
		details.AdditionalStops < 0 || details.StairFlights < 0 {
		return ErrInvalidTripDetails
	}
	return nil
}

func validDistance(miles float64) bool {
	return miles >= 0 && !math.IsInf(miles, 0) && !math.IsNaN(miles)
}
