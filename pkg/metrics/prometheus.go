// Package metrics provides Prometheus metrics for the frame ranking service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector for the service.
type Manager struct {
	registry *prometheus.Registry

	// Core pipeline metrics.
	framesScored        prometheus.Counter
	framesDuplicate     prometheus.Counter
	frameIngestFailures prometheus.Counter
	scoringLatency      prometheus.Histogram
	scoringErrors       prometheus.Counter

	// Queue metrics.
	queueCapacity       prometheus.Gauge
	queueSize           prometheus.Gauge
	queueEnqueues       prometheus.Counter
	queueDequeues       prometheus.Counter
	queueEnqueueErrors  *prometheus.CounterVec
	queueEnqueueLatency prometheus.Histogram

	// Worker metrics.
	workerActiveCount       prometheus.Gauge
	workerProcessingLatency prometheus.Histogram

	// Store metrics.
	storeRecordsTotal  prometheus.Gauge
	storeUpdateLatency prometheus.Histogram
	storeQueryLatency  prometheus.Histogram
	storeErrors        prometheus.Counter

	// Export metrics.
	rankingExports prometheus.Counter

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error breakdown.
	errorsByComponent *prometheus.CounterVec
}

var defaultManager *Manager

func init() { //nolint:gochecknoinits // global metrics registration mirrors the serving setup
	defaultManager = NewManager()
}

// NewManager builds a Manager with its own registry.
func NewManager() *Manager {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	latencyBuckets := []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}

	return &Manager{
		registry: reg,

		framesScored: factory.NewCounter(prometheus.CounterOpts{
			Name: "frames_scored_total",
			Help: "Frames scored and stored.",
		}),
		framesDuplicate: factory.NewCounter(prometheus.CounterOpts{
			Name: "frames_duplicate_total",
			Help: "Frame submissions rejected as duplicates.",
		}),
		frameIngestFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "frame_ingest_failures_total",
			Help: "Frames that failed ingest and were scored at the floor.",
		}),
		scoringLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "scoring_latency_ms",
			Help:    "Per-frame scoring pipeline latency in milliseconds.",
			Buckets: latencyBuckets,
		}),
		scoringErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "scoring_errors_total",
			Help: "Scoring pipeline failures.",
		}),

		queueCapacity: factory.NewGauge(prometheus.GaugeOpts{
			Name: "queue_capacity",
			Help: "Configured observation queue capacity.",
		}),
		queueSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "queue_size",
			Help: "Observations currently queued.",
		}),
		queueEnqueues: factory.NewCounter(prometheus.CounterOpts{
			Name: "queue_enqueues_total",
			Help: "Observations accepted by the queue.",
		}),
		queueDequeues: factory.NewCounter(prometheus.CounterOpts{
			Name: "queue_dequeues_total",
			Help: "Observations handed to workers.",
		}),
		queueEnqueueErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "queue_enqueue_errors_total",
			Help: "Enqueue rejections by reason.",
		}, []string{"reason"}),
		queueEnqueueLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "queue_enqueue_latency_ms",
			Help:    "Enqueue latency in milliseconds.",
			Buckets: latencyBuckets,
		}),

		workerActiveCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "worker_active_count",
			Help: "Workers currently running.",
		}),
		workerProcessingLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_processing_latency_ms",
			Help:    "End-to-end per-frame worker latency in milliseconds.",
			Buckets: latencyBuckets,
		}),

		storeRecordsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "store_records_total",
			Help: "Frame results currently stored.",
		}),
		storeUpdateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "store_update_latency_ms",
			Help:    "Result store write latency in milliseconds.",
			Buckets: latencyBuckets,
		}),
		storeQueryLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "store_query_latency_ms",
			Help:    "Ranking read latency in milliseconds.",
			Buckets: latencyBuckets,
		}),
		storeErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "store_errors_total",
			Help: "Result store failures.",
		}),

		rankingExports: factory.NewCounter(prometheus.CounterOpts{
			Name: "ranking_exports_total",
			Help: "CSV ranking exports served.",
		}),

		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by endpoint, method, and status.",
		}, []string{"endpoint", "method", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "HTTP request duration in milliseconds.",
			Buckets: latencyBuckets,
		}, []string{"endpoint", "method", "status"}),

		errorsByComponent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "errors_by_component_total",
			Help: "Errors by component and type.",
		}, []string{"component", "type"}),
	}
}

// Package-level helpers on the default manager.

func RecordFrameScored()        { defaultManager.framesScored.Inc() }
func RecordFrameDuplicate()     { defaultManager.framesDuplicate.Inc() }
func RecordFrameIngestFailure() { defaultManager.frameIngestFailures.Inc() }

func RecordScoringLatency(ms float64) { defaultManager.scoringLatency.Observe(ms) }
func RecordScoringError()             { defaultManager.scoringErrors.Inc() }

func UpdateQueueCapacity(capacity int) { defaultManager.queueCapacity.Set(float64(capacity)) }
func UpdateQueueSize(size int)         { defaultManager.queueSize.Set(float64(size)) }
func RecordQueueEnqueue()              { defaultManager.queueEnqueues.Inc() }
func RecordQueueDequeue()              { defaultManager.queueDequeues.Inc() }

func RecordQueueEnqueueError(reason string) {
	defaultManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

func RecordQueueEnqueueLatency(ms float64) { defaultManager.queueEnqueueLatency.Observe(ms) }

func UpdateWorkerActiveCount(count int) { defaultManager.workerActiveCount.Set(float64(count)) }

func RecordWorkerProcessingLatency(ms float64) {
	defaultManager.workerProcessingLatency.Observe(ms)
}

func UpdateStoreRecordsTotal(count int) { defaultManager.storeRecordsTotal.Set(float64(count)) }

func RecordStoreUpdateLatency(ms float64) { defaultManager.storeUpdateLatency.Observe(ms) }
func RecordStoreQueryLatency(ms float64)  { defaultManager.storeQueryLatency.Observe(ms) }
func RecordStoreError()                   { defaultManager.storeErrors.Inc() }

func RecordRankingExport() { defaultManager.rankingExports.Inc() }

func RecordHTTPRequest(endpoint, method, status string) {
	defaultManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	defaultManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

func RecordErrorByComponent(component, errorType string) {
	defaultManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry exposes the default registry for the metrics HTTP handler.
func GetRegistry() *prometheus.Registry {
	return defaultManager.registry
}
