// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

/*
Package services provides suture.Service wrappers for backend components.

Each wrapper implements

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer so supervisor events name the service.

  - HTTPServerService: runs an *http.Server, shutting it down with a bounded
    timeout when the context is canceled.
  - StorageSweepService: removes temporary files left by interrupted project
    saves on a fixed interval.
*/
package services
