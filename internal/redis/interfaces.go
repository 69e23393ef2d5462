package redis

import (
	"context"
	"time"

	"nemt/internal/domain"
	"nemt/internal/pricing"
)

// ReportCacheInterface defines the interface for conflict report caching.
type ReportCacheInterface interface {
	GetConflictReport(ctx context.Context, key string) (*domain.ConflictReport, error)
	SetConflictReport(ctx context.Context, key string, report *domain.ConflictReport, ttl time.Duration) error
	InvalidateConflictReports(ctx context.Context) error
}

// QuoteCacheInterface defines the interface for fare quote caching.
type QuoteCacheInterface interface {
	GetQuote(ctx context.Context, key string) (*pricing.RateBreakdown, error)
	SetQuote(ctx context.Context, key string, breakdown *pricing.RateBreakdown, ttl time.Duration) error
}

// Ensure concrete types implement interfaces.
var (
	_ ReportCacheInterface = (*CacheStore)(nil)
	_ QuoteCacheInterface  = (*CacheStore)(nil)
)
