package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"nemt/internal/domain"
	"nemt/internal/pricing"
)

// ──────────────────────────────────────────────
// MOCK SCHEDULE REPOSITORIES
// ──────────────────────────────────────────────

// listCall records the arguments of a window query.
type listCall struct {
	Start    time.Time
	End      time.Time
	DriverID string
}

// MockScheduleRepository implements the trip, shift and time-off repositories.
type MockScheduleRepository struct {
	mu      sync.RWMutex
	trips   []domain.Trip
	shifts  []domain.ScheduledShift
	timeOff []domain.DriverTimeOff

	TripCalls []listCall
	ListCount int32

	// Error injection
	TripError    error
	ShiftError   error
	TimeOffError error
}

// NewMockScheduleRepository creates a new mock schedule repository.
func NewMockScheduleRepository() *MockScheduleRepository {
	return &MockScheduleRepository{}
}

// AddTrip adds a trip to the mock repository.
func (m *MockScheduleRepository) AddTrip(trip domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips = append(m.trips, trip)
}

// AddShift adds a shift to the mock repository.
func (m *MockScheduleRepository) AddShift(shift domain.ScheduledShift) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts = append(m.shifts, shift)
}

// AddTimeOff adds a time-off entry to the mock repository.
func (m *MockScheduleRepository) AddTimeOff(entry domain.DriverTimeOff) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeOff = append(m.timeOff, entry)
}

func (m *MockScheduleRepository) ListScheduledBetween(ctx context.Context, start, end time.Time, driverID string) ([]domain.Trip, error) {
	atomic.AddInt32(&m.ListCount, 1)
	m.mu.Lock()
	m.TripCalls = append(m.TripCalls, listCall{Start: start, End: end, DriverID: driverID})
	m.mu.Unlock()
	if m.TripError != nil {
		return nil, m.TripError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.Trip, len(m.trips))
	copy(result, m.trips)
	return result, nil
}

func (m *MockScheduleRepository) ListBetween(ctx context.Context, start, end time.Time, driverID string) ([]domain.ScheduledShift, error) {
	if m.ShiftError != nil {
		return nil, m.ShiftError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.ScheduledShift, len(m.shifts))
	copy(result, m.shifts)
	return result, nil
}

func (m *MockScheduleRepository) ListApprovedOverlapping(ctx context.Context, start, end time.Time, driverID string) ([]domain.DriverTimeOff, error) {
	if m.TimeOffError != nil {
		return nil, m.TimeOffError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.DriverTimeOff, len(m.timeOff))
	copy(result, m.timeOff)
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK AUDIT
// ──────────────────────────────────────────────

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu      sync.RWMutex
	entries []domain.AuditEntry

	AppendError error
	ListError   error
}

func (m *MockAuditRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	if m.AppendError != nil {
		return m.AppendError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *MockAuditRepository) ListRecent(ctx context.Context, action domain.AuditAction, limit int) ([]domain.AuditEntry, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []domain.AuditEntry
	for i := len(m.entries) - 1; i >= 0 && len(result) < limit; i-- {
		if action == "" || m.entries[i].Action == action {
			result = append(result, m.entries[i])
		}
	}
	return result, nil
}

// Entries returns recorded entries for test assertions.
func (m *MockAuditRepository) Entries() []domain.AuditEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.AuditEntry, len(m.entries))
	copy(result, m.entries)
	return result
}

// MockAuditSink records entries in memory.
type MockAuditSink struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (m *MockAuditSink) Record(ctx context.Context, entry domain.AuditEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
}

// Entries returns recorded entries for test assertions.
func (m *MockAuditSink) Entries() []domain.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]domain.AuditEntry, len(m.entries))
	copy(result, m.entries)
	return result
}

// ──────────────────────────────────────────────
// MOCK CACHE
// ──────────────────────────────────────────────

// MockCacheStore implements the report and quote caches in memory.
type MockCacheStore struct {
	mu      sync.RWMutex
	reports map[string]domain.ConflictReport
	quotes  map[string]pricing.RateBreakdown

	SetReportCount  int32
	SetQuoteCount   int32
	InvalidateCount int32
	GetError        error
}

// NewMockCacheStore creates a new mock cache.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		reports: make(map[string]domain.ConflictReport),
		quotes:  make(map[string]pricing.RateBreakdown),
	}
}

func (m *MockCacheStore) GetConflictReport(ctx context.Context, key string) (*domain.ConflictReport, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	report, ok := m.reports[key]
	if !ok {
		return nil, nil
	}
	return &report, nil
}

func (m *MockCacheStore) SetConflictReport(ctx context.Context, key string, report *domain.ConflictReport, ttl time.Duration) error {
	atomic.AddInt32(&m.SetReportCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[key] = *report
	return nil
}

func (m *MockCacheStore) InvalidateConflictReports(ctx context.Context) error {
	atomic.AddInt32(&m.InvalidateCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = make(map[string]domain.ConflictReport)
	return nil
}

func (m *MockCacheStore) GetQuote(ctx context.Context, key string) (*pricing.RateBreakdown, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	breakdown, ok := m.quotes[key]
	if !ok {
		return nil, nil
	}
	return &breakdown, nil
}

func (m *MockCacheStore) SetQuote(ctx context.Context, key string, breakdown *pricing.RateBreakdown, ttl time.Duration) error {
	atomic.AddInt32(&m.SetQuoteCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes[key] = *breakdown
	return nil
}
