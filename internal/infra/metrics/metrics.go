package metrics

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"
)

// Aggregator keeps request, cache and database counters for the whole
// process. A single mutex guards every map, for writes and for the
// snapshot read, so GetMetrics always sees a consistent point in time.
type Aggregator struct {
	mu sync.Mutex

	requestCounts    map[string]int64
	requestDurations map[string]int64
	cacheHits        map[string]int64
	cacheMisses      map[string]int64
	databaseQueries  map[string]int64
}

// Default is the process-wide aggregator fed by the HTTP middleware.
var Default = New()

func New() *Aggregator {
	return &Aggregator{
		requestCounts:    make(map[string]int64),
		requestDurations: make(map[string]int64),
		cacheHits:        make(map[string]int64),
		cacheMisses:      make(map[string]int64),
		databaseQueries:  make(map[string]int64),
	}
}

func (a *Aggregator) RecordRequestCount(endpoint, method string, statusCode int) {
	key := fmt.Sprintf("%s_%s_%d", method, endpoint, statusCode)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.requestCounts[key]++
}

// RecordRequestDuration keeps a moving average per method+endpoint:
// newAvg = (oldAvg + sample) / 2. Not a true mean; recent samples weigh
// more than older ones.
func (a *Aggregator) RecordRequestDuration(endpoint, method string, durationMs int64) {
	key := method + "_" + endpoint

	a.mu.Lock()
	defer a.mu.Unlock()
	if old, ok := a.requestDurations[key]; ok {
		a.requestDurations[key] = (old + durationMs) / 2
	} else {
		a.requestDurations[key] = durationMs
	}
}

func (a *Aggregator) RecordCacheHit(cacheKey string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cacheHits[cacheKey]++
}

func (a *Aggregator) RecordCacheMiss(cacheKey string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cacheMisses[cacheKey]++
}

// RecordDatabaseQuery uses the same moving-average rule as request
// durations, keyed by query type.
func (a *Aggregator) RecordDatabaseQuery(queryType string, durationMs int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if old, ok := a.databaseQueries[queryType]; ok {
		a.databaseQueries[queryType] = (old + durationMs) / 2
	} else {
		a.databaseQueries[queryType] = durationMs
	}
}

// GetMetrics returns a point-in-time copy of every counter. The returned
// maps are fresh copies; callers can do what they want with them.
func (a *Aggregator) GetMetrics() map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()

	var totalRequests int64
	for _, v := range a.requestCounts {
		totalRequests += v
	}
	var totalHits, totalMisses int64
	for _, v := range a.cacheHits {
		totalHits += v
	}
	for _, v := range a.cacheMisses {
		totalMisses += v
	}

	hitRate := 0.0
	if totalHits+totalMisses > 0 {
		hitRate = float64(totalHits) / float64(totalHits+totalMisses) * 100
		hitRate = math.Round(hitRate*100) / 100
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return map[string]any{
		"timestamp":                 time.Now().UTC(),
		"total_requests":            totalRequests,
		"request_counts":            copyCounters(a.requestCounts),
		"average_request_durations": copyCounters(a.requestDurations),
		"cache_hits":                copyCounters(a.cacheHits),
		"cache_misses":              copyCounters(a.cacheMisses),
		"cache_hit_rate_percent":    hitRate,
		"database_query_durations":  copyCounters(a.databaseQueries),
		"memory_usage_mb":           mem.Alloc / 1024 / 1024,
	}
}

func copyCounters(src map[string]int64) map[string]int64 {
	dst := make(map[string]int64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
