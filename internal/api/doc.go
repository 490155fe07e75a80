// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

/*
Package api exposes the preview backend over HTTP using the chi router.

# Endpoints

All routes live under /api/v1 and reply with the APIResponse envelope:

	GET  /health             service liveness and version
	GET  /info               service description and endpoint list
	GET  /nodes/catalog      node types offered to the editor
	POST /projects/save      {project, slot?} -> {slot, path, summary}
	POST /projects/load      {slot?} -> {slot, path, project, summary}
	POST /preview/generate   {project, forceProxy?} -> base64 PNG and proxy info
	POST /metrics/preview    append one latency measurement to the bench log

GET /metrics serves the Prometheus registry outside the envelope.

# Errors

	400 BAD_REQUEST        malformed JSON body
	400 VALIDATION_FAILED  struct tag failures or duplicate node ids, with details.issues
	404 NOT_FOUND          unknown slot or route
	422 INVALID_PROJECT    stored slot is not valid JSON or fails validation
	429 TOO_MANY_REQUESTS  httprate limit reached
	500 INTERNAL_ERROR     storage or encoding failure

# Usage

	handler := api.NewHandler(renderSvc, store, recorder)
	router := api.NewRouter(handler, api.NewChiMiddlewareConfig(cfg.Security))
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api
