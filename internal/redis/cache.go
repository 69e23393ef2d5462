package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"nemt/internal/domain"
	"nemt/internal/pricing"
)

// CacheStore caches conflict reports and fare quotes in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Key prefixes
const (
	reportCachePrefix = "cache:conflicts:"
	quoteCachePrefix  = "cache:quote:"
)

// ReportKey identifies a conflict report by window and driver filter.
func ReportKey(dateRange domain.DateRange, driverID string) string {
	driver := driverID
	if driver == "" {
		driver = "all"
	}
	return strings.Join([]string{
		dateRange.Start.UTC().Format(time.RFC3339Nano),
		dateRange.End.UTC().Format(time.RFC3339Nano),
		driver,
	}, "|")
}

// QuoteKey hashes trip details together with the rate policy version, so a
// policy change never serves a stale fare.
func QuoteKey(details pricing.TripDetails, configVersion string) (string, error) {
	payload, err := json.Marshal(details)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(append([]byte(configVersion+":"), payload...))
	return hex.EncodeToString(sum[:]), nil
}

// GetConflictReport retrieves a cached report. Returns nil on a cache miss.
func (s *CacheStore) GetConflictReport(ctx context.Context, key string) (*domain.ConflictReport, error) {
	data, err := s.client.Get(ctx, reportCachePrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var report domain.ConflictReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// SetConflictReport stores a report.
func (s *CacheStore) SetConflictReport(ctx context.Context, key string, report *domain.ConflictReport, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, reportCachePrefix+key, data, ttl).Err()
}

// InvalidateConflictReports removes every cached report.
func (s *CacheStore) InvalidateConflictReports(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, reportCachePrefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// GetQuote retrieves a cached fare breakdown. Returns nil on a cache miss.
func (s *CacheStore) GetQuote(ctx context.Context, key string) (*pricing.RateBreakdown, error) {
	data, err := s.client.Get(ctx, quoteCachePrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var breakdown pricing.RateBreakdown
	if err := json.Unmarshal(data, &breakdown); err != nil {
		return nil, err
	}
	return &breakdown, nil
}

// SetQuote stores a fare breakdown.
func (s *CacheStore) SetQuote(ctx context.Context, key string, breakdown *pricing.RateBreakdown, ttl time.Duration) error {
	data, err := json.Marshal(breakdown)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, quoteCachePrefix+key, data, ttl).Err()
}

// Ping checks connectivity.
func (s *CacheStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
