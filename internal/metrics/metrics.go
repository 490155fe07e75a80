// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nodevision_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nodevision_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nodevision_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nodevision_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Preview Pipeline Metrics
	PreviewRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nodevision_preview_render_duration_seconds",
			Help:    "Time to resolve, scale, stamp and encode one preview",
			Buckets: []float64{0.025, 0.05, 0.1, 0.15, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	PreviewProxyDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nodevision_preview_proxy_decisions_total",
			Help: "Proxy decisions by reason",
		},
		[]string{"reason"},
	)

	GraphNodesEvaluated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nodevision_graph_nodes_evaluated_total",
			Help: "Node evaluations by node kind (cache hits excluded)",
		},
		[]string{"kind"},
	)

	GraphCyclesDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nodevision_graph_cycles_detected_total",
			Help: "Cyclic node references cut during resolution",
		},
	)

	MediaPlaceholders = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nodevision_media_placeholders_total",
			Help: "Media sources that fell back to a generated placeholder",
		},
	)

	// Latency Log Metrics
	LatencySamplesRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nodevision_latency_samples_recorded_total",
			Help: "Preview delay samples appended to the latency log",
		},
	)

	LatencyLogRowsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nodevision_latency_log_rows_skipped_total",
			Help: "Malformed latency log rows ignored while averaging",
		},
	)

	// Project Storage Metrics
	ProjectOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nodevision_project_operations_total",
			Help: "Project save and load operations by result",
		},
		[]string{"operation", "result"}, // operation: save|load, result: ok|not_found|invalid|error
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordPreviewRender observes one completed render.
func RecordPreviewRender(duration time.Duration) {
	PreviewRenderDuration.Observe(duration.Seconds())
}

// RecordProxyDecision counts a proxy decision.
func RecordProxyDecision(reason string) {
	PreviewProxyDecisions.WithLabelValues(reason).Inc()
}

// RecordNodeEvaluation counts a node evaluated by the resolver.
func RecordNodeEvaluation(kind string) {
	GraphNodesEvaluated.WithLabelValues(kind).Inc()
}

// RecordCycle counts a cyclic reference.
func RecordCycle() {
	GraphCyclesDetected.Inc()
}

// RecordPlaceholder counts a media placeholder.
func RecordPlaceholder() {
	MediaPlaceholders.Inc()
}

// RecordLatencySample counts an appended PREVIEW_DELAY row.
func RecordLatencySample() {
	LatencySamplesRecorded.Inc()
}

// RecordSkippedLatencyRows counts malformed log rows.
func RecordSkippedLatencyRows(n int) {
	if n > 0 {
		LatencyLogRowsSkipped.Add(float64(n))
	}
}

// RecordProjectOperation counts a project save or load.
func RecordProjectOperation(operation, result string) {
	ProjectOperations.WithLabelValues(operation, result).Inc()
}
