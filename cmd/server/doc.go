// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

/*
Package main is the entry point for the NodeVision preview backend.

The backend serves the node-graph editor: it stores projects in named slots,
renders low-latency previews of the selected graph output, and records the
latency measurements that drive the adaptive proxy decision.

# Application Architecture

Process supervision uses Suture v4:

	RootSupervisor ("nodevision")
	├── StorageSupervisor ("storage-layer")
	│   └── Storage sweep (stale temp files left by interrupted saves)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router, /api/v1)

Startup order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog with JSON or console output
 3. Preview renderer, project store and latency recorder
 4. Chi router with CORS, rate limiting and Prometheus middleware
 5. Supervisor tree

# Configuration

	HTTP_PORT=8000                # HTTP port
	HTTP_HOST=127.0.0.1           # bind address
	STORAGE_DIR=storage           # project slot directory
	BENCH_LOG=tmp/preview_bench.log
	MAX_FRAME_SIZE=16384          # per-side cap on rendered frames
	CORS_ORIGINS=*                # comma separated
	DISABLE_RATE_LIMIT=false
	LOG_LEVEL=info
	LOG_FORMAT=json

A config.yaml in the working directory, or the file named by CONFIG_PATH,
supplies the same keys.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests for up to the configured shutdown timeout, after which any
service that failed to stop is reported.
*/
package main
