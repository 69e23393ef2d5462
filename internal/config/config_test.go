package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "SWEEP_DAYS", "RATE_CONFIG_PATH"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Scheduling.SweepDays != 7 {
		t.Errorf("expected 7 sweep days, got %d", cfg.Scheduling.SweepDays)
	}
	if cfg.Pricing.RateConfigPath != "" {
		t.Errorf("expected no rate config path, got %q", cfg.Pricing.RateConfigPath)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SWEEP_ENABLED", "false")
	t.Setenv("REPORT_CACHE_TTL", "2m")
	t.Setenv("LOG_FORMAT", "json")

	cfg := Load()

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("expected redis db 3, got %d", cfg.Redis.DB)
	}
	if cfg.Scheduling.SweepEnabled {
		t.Error("expected sweep to be disabled")
	}
	if cfg.Scheduling.ReportCacheTTL != 2*time.Minute {
		t.Errorf("expected 2m report ttl, got %v", cfg.Scheduling.ReportCacheTTL)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("expected json log format, got %s", cfg.Log.Format)
	}
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("SWEEP_DAYS", "a week")
	t.Setenv("QUOTE_CACHE_TTL", "forever")

	cfg := Load()

	if cfg.Scheduling.SweepDays != 7 {
		t.Errorf("expected fallback of 7, got %d", cfg.Scheduling.SweepDays)
	}
	if cfg.Pricing.QuoteCacheTTL != 10*time.Minute {
		t.Errorf("expected fallback of 10m, got %v", cfg.Pricing.QuoteCacheTTL)
	}
}

func TestSchedulingConfig_Location(t *testing.T) {
	if loc := (SchedulingConfig{OperatorTimezone: "Not/AZone"}).Location(); loc != time.UTC {
		t.Errorf("expected UTC fallback, got %v", loc)
	}
	if loc := (SchedulingConfig{OperatorTimezone: "UTC"}).Location(); loc.String() != "UTC" {
		t.Errorf("expected UTC, got %v", loc)
	}
}

func TestLoad_DatabasePool(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "40")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "90s")

	cfg := Load()

	if cfg.Database.MaxOpenConns != 40 {
		t.Errorf("expected 40 open conns, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns != 5 {
		t.Errorf("expected default of 5 idle conns, got %d", cfg.Database.MaxIdleConns)
	}
	if cfg.Database.ConnMaxIdleTime != 90*time.Second {
		t.Errorf("expected 90s idle time, got %v", cfg.Database.ConnMaxIdleTime)
	}
	if cfg.Pricing.RateReloadSchedule != "0 */15 * * * *" {
		t.Errorf("unexpected reload schedule %q", cfg.Pricing.RateReloadSchedule)
	}
}
