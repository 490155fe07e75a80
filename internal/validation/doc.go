// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

// Package validation validates request payloads and stored projects with
// go-playground/validator v10.
//
// A single validator instance is shared by the process. It reports fields by
// their JSON names, so a failure on the id of the second node reads
// "nodes[1].id" rather than "Nodes[1].ID".
//
//	if verr := validation.ValidateProject(project); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusUnprocessableEntity, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// Besides struct tags, ValidateProject enforces unique node ids.
//
// Issues carry a type: IssueValidation for rule failures and IssueJSONDecode
// for payloads that could not be parsed at all (produced by callers).
package validation
