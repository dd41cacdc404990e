package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/spec-kit/parking-service/internal/domain"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu              sync.Mutex
	requestCount    map[string]int64
	errorCount      map[string]int64
	allocationCount map[string]int64
	releaseCount    int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:    make(map[string]int64),
		errorCount:      make(map[string]int64),
		allocationCount: make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordAllocation counts successful allocations by lot and tier.
func (m *Metrics) RecordAllocation(lot domain.Lot, tier domain.Tier) {
	if m == nil {
		return
	}
	key := string(lot) + "|" + string(tier)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allocationCount[key]++
}

// RecordRelease counts successful releases.
func (m *Metrics) RecordRelease() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseCount++
}

// AllocationCount reports the counter for a lot/tier pair.
func (m *Metrics) AllocationCount(lot domain.Lot, tier domain.Tier) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allocationCount[string(lot)+"|"+string(tier)]
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
