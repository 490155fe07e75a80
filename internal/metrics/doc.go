// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

/*
Package metrics provides Prometheus metrics for the preview backend.

Metrics are registered on the default registry through promauto and exposed
at /metrics:

	curl http://127.0.0.1:8000/metrics

# Available Metrics

HTTP:
  - nodevision_api_requests_total{method,endpoint,status_code}
  - nodevision_api_request_duration_seconds{method,endpoint}
  - nodevision_api_active_requests
  - nodevision_api_rate_limit_hits_total{endpoint}

Preview pipeline:
  - nodevision_preview_render_duration_seconds
  - nodevision_preview_proxy_decisions_total{reason}
  - nodevision_graph_nodes_evaluated_total{kind}
  - nodevision_graph_cycles_detected_total
  - nodevision_media_placeholders_total

Latency log and storage:
  - nodevision_latency_samples_recorded_total
  - nodevision_latency_log_rows_skipped_total
  - nodevision_project_operations_total{operation,result}

Endpoint labels use chi route patterns, not raw paths, to keep cardinality
bounded.
*/
package metrics
