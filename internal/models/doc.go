// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

/*
Package models defines the project document exchanged with the editor.

A project is a node graph plus the media assets it references:

  - ProjectGraph: schema version, color space, frame rate, optional
    resolution, ordered nodes and edges, assets and free-form metadata
  - Node: one processing step with a type tag, parameters and named inputs
    of the form "<nodeId>:<outputSlot>"
  - Edge: advisory connection list kept for the editor; resolution follows
    node inputs, not edges
  - Asset: a media file with an optional lower resolution proxy
  - ProjectSummary: counts reported after save and load

JSON field names follow the editor's camelCase wire format so documents
round-trip unchanged through storage. Struct tags carry validator rules that
the HTTP layer enforces before a graph reaches the render pipeline.
*/
package models
