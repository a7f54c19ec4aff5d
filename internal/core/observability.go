package core

import (
	"context"
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"trackstore/pkg/domain"
)

// MetricsRecorder receives store instrumentation: per-operation timing and
// outcome, entity population, and data-limiting prune volume. Implementations
// must be safe for concurrent use.
type MetricsRecorder interface {
	// Observe records one store operation's outcome and duration.
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
	// SetEntityCount reports the live entity population for one type.
	SetEntityCount(ot domain.ObjectType, count int)
	// AddPrunedPoints reports points dropped by data limiting or flushes.
	AddPrunedPoints(count int)
}

// NoopMetricsRecorder discards all measurements.
type NoopMetricsRecorder struct{}

func (NoopMetricsRecorder) Observe(context.Context, string, bool, time.Duration) {}
func (NoopMetricsRecorder) SetEntityCount(domain.ObjectType, int)                {}
func (NoopMetricsRecorder) AddPrunedPoints(int)                                  {}

var expvarSeq uint64

// ExpvarMetricsRecorder publishes aggregate counters via expvar for
// deployments that prefer process-local metrics without external scrape
// infrastructure. Durations accumulate in milliseconds per operation.
type ExpvarMetricsRecorder struct {
	name string

	mu        sync.Mutex
	durations map[string]float64
	results   map[string]map[string]int64
	entities  map[string]int
	pruned    int64
}

// ExpvarMetricsSnapshot is a read-only view of the recorded metrics.
type ExpvarMetricsSnapshot struct {
	DurationsMS map[string]float64          `json:"durations_ms_total"`
	Results     map[string]map[string]int64 `json:"results_total"`
	Entities    map[string]int              `json:"entities"`
	Pruned      int64                       `json:"pruned_points_total"`
	RecordedAt  time.Time                   `json:"recorded_at"`
}

// NewExpvarMetricsRecorder constructs an expvar-backed recorder and
// publishes it under the supplied name. When name is empty, a unique
// identifier is generated.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		id := atomic.AddUint64(&expvarSeq, 1)
		name = fmt.Sprintf("trackstore_metrics_%d", id)
	}
	rec := &ExpvarMetricsRecorder{
		name:      name,
		durations: make(map[string]float64),
		results:   make(map[string]map[string]int64),
		entities:  make(map[string]int),
	}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name associated with the recorder.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// Snapshot returns an immutable copy of the aggregated metrics.
func (r *ExpvarMetricsRecorder) Snapshot() ExpvarMetricsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	durations := make(map[string]float64, len(r.durations))
	for op, total := range r.durations {
		durations[op] = total
	}
	results := make(map[string]map[string]int64, len(r.results))
	for op, statusCounts := range r.results {
		cpy := make(map[string]int64, len(statusCounts))
		for status, count := range statusCounts {
			cpy[status] = count
		}
		results[op] = cpy
	}
	entities := make(map[string]int, len(r.entities))
	for ot, n := range r.entities {
		entities[ot] = n
	}
	return ExpvarMetricsSnapshot{
		DurationsMS: durations,
		Results:     results,
		Entities:    entities,
		Pruned:      r.pruned,
		RecordedAt:  time.Now().UTC(),
	}
}

func (r *ExpvarMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations[operation] += float64(duration.Microseconds()) / 1000.0
	byStatus, ok := r.results[operation]
	if !ok {
		byStatus = make(map[string]int64, 2)
		r.results[operation] = byStatus
	}
	byStatus[status]++
}

func (r *ExpvarMetricsRecorder) SetEntityCount(ot domain.ObjectType, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entities[ot.String()] = count
}

func (r *ExpvarMetricsRecorder) AddPrunedPoints(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruned += int64(count)
}

// PrometheusMetricsRecorder exports the same measurements as Prometheus
// collectors registered on the supplied registerer.
type PrometheusMetricsRecorder struct {
	durations *prometheus.HistogramVec
	results   *prometheus.CounterVec
	entities  *prometheus.GaugeVec
	pruned    prometheus.Counter
}

// NewPrometheusMetricsRecorder registers the store collectors on reg, or on
// the default registerer when reg is nil.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) *PrometheusMetricsRecorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &PrometheusMetricsRecorder{
		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trackstore_operation_duration_seconds",
			Help:    "Duration of data store operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		results: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trackstore_operation_results_total",
			Help: "Data store operation outcomes by status.",
		}, []string{"operation", "status"}),
		entities: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "trackstore_entities",
			Help: "Live entity population by type.",
		}, []string{"type"}),
		pruned: factory.NewCounter(prometheus.CounterOpts{
			Name: "trackstore_pruned_points_total",
			Help: "Points dropped by data limiting and flushes.",
		}),
	}
}

func (r *PrometheusMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
	r.results.WithLabelValues(operation, status).Inc()
}

func (r *PrometheusMetricsRecorder) SetEntityCount(ot domain.ObjectType, count int) {
	r.entities.WithLabelValues(ot.String()).Set(float64(count))
}

func (r *PrometheusMetricsRecorder) AddPrunedPoints(count int) {
	r.pruned.Add(float64(count))
}
