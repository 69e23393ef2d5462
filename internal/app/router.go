package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"nemt/internal/handler"
	"nemt/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	ConflictHandler *handler.ConflictHandler
	PricingHandler  *handler.PricingHandler
	CalendarHandler *handler.CalendarHandler
	AuditHandler    *handler.AuditHandler
	HealthHandler   *handler.HealthHandler
	RedisClient     *redis.Client // Optional; enables Idempotency-Key replay
	NewRelicApp     *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
		router.Use(middleware.NewRelicAttributes())
	}

	router.GET("/health", deps.HealthHandler.Health)

	// Pricing POSTs replay on a repeated Idempotency-Key.
	idempotent := func(c *gin.Context) { c.Next() }
	if deps.RedisClient != nil {
		idempotent = middleware.IdempotencyMiddleware(deps.RedisClient)
	}

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Scheduling routes.
		scheduling := v1.Group("/scheduling")
		{
			scheduling.GET("/conflicts", deps.ConflictHandler.GetConflicts)
		}

		// Trip pricing routes.
		trips := v1.Group("/trips")
		{
			trips.POST("/price", idempotent, deps.PricingHandler.PriceTrip)
			trips.GET("/estimate", deps.PricingHandler.EstimateTrip)
			trips.POST("/cancellation-fee", idempotent, deps.PricingHandler.CancellationFee)
			trips.GET("/no-show-fee", deps.PricingHandler.NoShowFee)
		}

		// Calendar routes.
		cal := v1.Group("/calendar")
		{
			cal.GET("/holidays", deps.CalendarHandler.GetHolidays)
			cal.GET("/classify", deps.CalendarHandler.Classify)
		}

		v1.GET("/audit", deps.AuditHandler.GetRecent)
	}

	return router
}
