package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	startedAt    time.Time
	requestCount map[string]int64
	errorCount   map[string]int64
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	UptimeSeconds int64            `json:"uptime_seconds"`
	Requests      map[string]int64 `json:"requests"`
	Errors        map[string]int64 `json:"errors"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		startedAt:    time.Now(),
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int) {
	if m == nil {
		return
	}
	key := route + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	key := route + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{Requests: map[string]int64{}, Errors: map[string]int64{}}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := MetricsSnapshot{
		UptimeSeconds: int64(time.Since(m.startedAt).Seconds()),
		Requests:      make(map[string]int64, len(m.requestCount)),
		Errors:        make(map[string]int64, len(m.errorCount)),
	}
	for k, v := range m.requestCount {
		snap.Requests[k] = v
	}
	for k, v := range m.errorCount {
		snap.Errors[k] = v
	}
	return snap
}
