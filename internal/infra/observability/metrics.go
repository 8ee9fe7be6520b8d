package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
)

// Metrics holds all Prometheus metrics for the admin API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration   *prometheus.HistogramVec
	requestsTotal     *prometheus.CounterVec
	statusTransitions *prometheus.CounterVec
	webhookDeliveries *prometheus.CounterVec
	cacheHits         *prometheus.CounterVec
	cacheMisses       *prometheus.CounterVec
	entityCount       *prometheus.GaugeVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nudo_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nudo_requests_total",
				Help: "Total requests processed.",
			},
			[]string{"status"},
		),
		statusTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nudo_status_transitions_total",
				Help: "Total workflow status transitions applied.",
			},
			[]string{"entity", "from", "to"},
		),
		webhookDeliveries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nudo_webhook_deliveries_total",
				Help: "Total transition webhook delivery attempts.",
			},
			[]string{"result"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nudo_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nudo_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		entityCount: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nudo_entity_count",
				Help: "Current number of stored records per entity.",
			},
			[]string{"entity"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// RecordTransition counts one applied workflow transition.
func (m *Metrics) RecordTransition(entity, from, to string) {
	m.statusTransitions.WithLabelValues(entity, from, to).Inc()
}

// IncrWebhookDelivery counts one webhook attempt ("sent" or "failed").
func (m *Metrics) IncrWebhookDelivery(result string) {
	m.webhookDeliveries.WithLabelValues(result).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// SetEntityCount records the current size of a collection.
func (m *Metrics) SetEntityCount(entity string, n int) {
	m.entityCount.WithLabelValues(entity).Set(float64(n))
}

// WorkflowSnapshot returns a snapshot of workflow metrics suitable for
// the GET /v1/metrics/workflows endpoint.
func (m *Metrics) WorkflowSnapshot() *domain.WorkflowMetrics {
	totalRequests := getCounterValue(m.requestsTotal, "success") +
		getCounterValue(m.requestsTotal, "error")
	errorCount := getCounterValue(m.requestsTotal, "error")
	sent := getCounterValue(m.webhookDeliveries, "sent")
	failed := getCounterValue(m.webhookDeliveries, "failed")
	hits := getCounterValue(m.cacheHits, "public")
	misses := getCounterValue(m.cacheMisses, "public")

	errorRate := float64(0)
	if totalRequests > 0 {
		errorRate = errorCount / totalRequests
	}
	cacheHitRate := float64(0)
	if hits+misses > 0 {
		cacheHitRate = hits / (hits + misses)
	}

	var transitions float64
	ch := make(chan prometheus.Metric, 64)
	go func() {
		m.statusTransitions.Collect(ch)
		close(ch)
	}()
	for metric := range ch {
		pb := &dto.Metric{}
		if err := metric.Write(pb); err == nil && pb.Counter != nil && pb.Counter.Value != nil {
			transitions += *pb.Counter.Value
		}
	}

	return &domain.WorkflowMetrics{
		TotalRequests:   int64(totalRequests),
		ErrorRate:       errorRate,
		Transitions:     int64(transitions),
		WebhooksSent:    int64(sent),
		WebhookFailures: int64(failed),
		CacheHitRate:    cacheHitRate,
		Period:          "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
