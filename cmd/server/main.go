package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"nemt/internal/app"
	"nemt/internal/config"
	"nemt/internal/handler"
	"nemt/internal/jobs"
	"nemt/internal/logger"
	"nemt/internal/pricing"
	internalRedis "nemt/internal/redis"
	"nemt/internal/repository/postgres"
	"nemt/internal/scheduler"
	"nemt/internal/service"
)

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		var err error
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logger.Error("failed to initialize New Relic", "error", err)
		} else {
			logger.Info("New Relic enabled", "app", cfg.NewRelic.AppName)
		}
	}

	rates, err := pricing.LoadRateConfig(cfg.Pricing.RateConfigPath)
	if err != nil {
		logger.Error("failed to load rate config", "path", cfg.Pricing.RateConfigPath, "error", err)
		os.Exit(1)
	}
	logger.Info("Rate config loaded", "version", rates.Version)

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL", "db", cfg.Database.DBName)

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis", "addr", cfg.Redis.Addr)

	server, cron := wireServer(db, redisClient, nrApp, cfg, rates)

	cron.Start()
	for _, next := range cron.NextRuns(time.Now()) {
		logger.Info("Scheduled job", "next_run", next.Format(time.RFC3339))
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	cron.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	logger.Info("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server and the job scheduler.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, rates pricing.RateConfig) (*http.Server, *scheduler.Scheduler) {
	location := cfg.Scheduling.Location()

	// Initialize Redis stores.
	cacheStore := internalRedis.NewCacheStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)

	// Initialize repositories.
	tripRepo := postgres.NewTripRepository(db)
	shiftRepo := postgres.NewShiftRepository(db)
	timeOffRepo := postgres.NewTimeOffRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	// Initialize services.
	auditLogger := service.NewAuditLogger(auditRepo)
	conflictService := service.NewConflictService(tripRepo, shiftRepo, timeOffRepo, cacheStore, auditLogger, service.ConflictConfig{
		Location: location,
		CacheTTL: cfg.Scheduling.ReportCacheTTL,
	})
	rateProvider := service.NewStaticRateConfigProvider(rates)
	pricingService := service.NewPricingService(rateProvider, cacheStore, auditLogger, location, cfg.Pricing.QuoteCacheTTL)
	calendarService := service.NewCalendarService(location)

	// Initialize handlers.
	healthHandler := handler.NewHealthHandler(cfg.NewRelic.AppName, map[string]handler.HealthCheck{
		"database": db.PingContext,
		"redis":    cacheStore.Ping,
	})

	router := app.NewRouter(app.RouterDeps{
		ConflictHandler: handler.NewConflictHandler(conflictService, location),
		PricingHandler:  handler.NewPricingHandler(pricingService),
		CalendarHandler: handler.NewCalendarHandler(calendarService, location),
		AuditHandler:    handler.NewAuditHandler(auditLogger),
		HealthHandler:   healthHandler,
		RedisClient:     redisClient,
		NewRelicApp:     nrApp,
	})

	// Background jobs.
	jobRunner := jobs.NewJobRunner(conflictService, rateProvider, nrApp, jobs.Config{
		SweepDays:      cfg.Scheduling.SweepDays,
		RateConfigPath: cfg.Pricing.RateConfigPath,
	}).WithLocker(lockStore)
	var schedules scheduler.Schedules
	if cfg.Scheduling.SweepEnabled {
		schedules.SweepConflicts = cfg.Scheduling.SweepSchedule
	}
	if cfg.Pricing.RateConfigPath != "" {
		schedules.ReloadRateConfig = cfg.Pricing.RateReloadSchedule
	}
	cron := scheduler.NewScheduler(jobRunner, schedules, location)

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, cron
}
