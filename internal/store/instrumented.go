package store

import (
	"sync/atomic"
	"time"

	"github.com/heysubinoy/remotekv/pkg/kv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds timing statistics for store operations.
// Uses atomic operations for thread-safe updates without locks.
type Metrics struct {
	GetCount    atomic.Uint64
	PutCount    atomic.Uint64
	DeleteCount atomic.Uint64

	// Cumulative latencies in nanoseconds
	GetLatencyNs    atomic.Uint64
	PutLatencyNs    atomic.Uint64
	DeleteLatencyNs atomic.Uint64
}

// InstrumentedStore wraps any kv.Store implementation with timing metrics.
// Counters are kept twice: atomically for the JSON stats snapshot and as
// Prometheus collectors for scraping.
type InstrumentedStore struct {
	store   kv.Store
	metrics *Metrics

	ops      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// Compile-time check to ensure InstrumentedStore implements kv.Store.
var _ kv.Store = (*InstrumentedStore)(nil)

// NewInstrumentedStore wraps a store with instrumentation. Collectors are
// registered with reg; a nil reg leaves them unregistered.
func NewInstrumentedStore(store kv.Store, reg prometheus.Registerer) *InstrumentedStore {
	factory := promauto.With(reg)
	return &InstrumentedStore{
		store:   store,
		metrics: &Metrics{},
		ops: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kvstore",
			Name:      "operations_total",
			Help:      "Number of store operations by type.",
		}, []string{"op"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kvstore",
			Name:      "operation_duration_seconds",
			Help:      "Time spent inside the store per operation.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}, []string{"op"}),
	}
}

// Get delegates to the wrapped store and records timing.
func (s *InstrumentedStore) Get(key string) (string, bool) {
	start := time.Now()
	value, found := s.store.Get(key)
	s.observe("get", &s.metrics.GetCount, &s.metrics.GetLatencyNs, time.Since(start))

	return value, found
}

// Put delegates to the wrapped store and records timing.
func (s *InstrumentedStore) Put(key, value string) error {
	start := time.Now()
	err := s.store.Put(key, value)
	s.observe("put", &s.metrics.PutCount, &s.metrics.PutLatencyNs, time.Since(start))

	return err
}

// Delete delegates to the wrapped store and records timing.
func (s *InstrumentedStore) Delete(key string) (bool, error) {
	start := time.Now()
	removed, err := s.store.Delete(key)
	s.observe("delete", &s.metrics.DeleteCount, &s.metrics.DeleteLatencyNs, time.Since(start))

	return removed, err
}

func (s *InstrumentedStore) observe(op string, count, latencyNs *atomic.Uint64, elapsed time.Duration) {
	count.Add(1)
	latencyNs.Add(uint64(elapsed.Nanoseconds()))

	s.ops.WithLabelValues(op).Inc()
	s.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// GetMetrics returns a snapshot of current metrics.
func (s *InstrumentedStore) GetMetrics() MetricsSnapshot {
	getCount := s.metrics.GetCount.Load()
	putCount := s.metrics.PutCount.Load()
	deleteCount := s.metrics.DeleteCount.Load()

	return MetricsSnapshot{
		GetCount:         getCount,
		PutCount:         putCount,
		DeleteCount:      deleteCount,
		GetAvgLatency:    avgLatency(s.metrics.GetLatencyNs.Load(), getCount),
		PutAvgLatency:    avgLatency(s.metrics.PutLatencyNs.Load(), putCount),
		DeleteAvgLatency: avgLatency(s.metrics.DeleteLatencyNs.Load(), deleteCount),
	}
}

// ResetMetrics clears the snapshot counters. Prometheus collectors are
// monotonic and are left untouched.
func (s *InstrumentedStore) ResetMetrics() {
	s.metrics.GetCount.Store(0)
	s.metrics.PutCount.Store(0)
	s.metrics.DeleteCount.Store(0)
	s.metrics.GetLatencyNs.Store(0)
	s.metrics.PutLatencyNs.Store(0)
	s.metrics.DeleteLatencyNs.Store(0)
}

func avgLatency(totalNs, count uint64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(totalNs / count)
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	GetCount         uint64
	PutCount         uint64
	DeleteCount      uint64
	GetAvgLatency    time.Duration
	PutAvgLatency    time.Duration
	DeleteAvgLatency time.Duration
}
