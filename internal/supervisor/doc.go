// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

/*
Package supervisor runs the backend's long-lived services under suture v4.

	RootSupervisor ("nodevision")
	├── StorageSupervisor ("storage-layer")
	│   └── StorageSweepService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer restarts its own services with exponential backoff; a storage
failure does not restart the HTTP server. Supervisor events are logged through
sutureslog, fed by the zerolog slog adapter in the logging package.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddStorageService(services.NewStorageSweepService(store, time.Hour, 10*time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	if err := <-tree.ServeBackground(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    ...
	}

Wrappers for individual components live in the services subpackage.
*/
package supervisor
