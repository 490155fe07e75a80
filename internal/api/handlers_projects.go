// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/nodevision/internal/logging"
	"github.com/tomtom215/nodevision/internal/models"
	"github.com/tomtom215/nodevision/internal/storage"
	"github.com/tomtom215/nodevision/internal/validation"
)

// SaveProject handles POST /projects/save.
func (h *Handler) SaveProject(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ProjectSaveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateProjectRequest(rw, &req, req.Project) {
		return
	}

	rec, err := h.store.Save(req.Project, req.Slot)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("slot", req.Slot).Msg("Failed to save project")
		rw.InternalError("Failed to save project")
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("slot", rec.Slot).
		Int("nodes", len(rec.Project.Nodes)).
		Msg("Project saved")
	rw.Success(ProjectSaveResponse{
		Slot:    rec.Slot,
		Path:    rec.Path,
		Summary: storage.Summarize(rec.Project),
	})
}

// LoadProject handles POST /projects/load. A missing slot is a 404; a stored
// file that is not valid JSON or fails validation is a 422 with issues.
func (h *Handler) LoadProject(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ProjectLoadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr.Error(), verr.Issues())
		return
	}

	rec, err := h.store.Load(req.Slot)
	if err != nil {
		var invalid *storage.InvalidProjectError
		switch {
		case errors.Is(err, storage.ErrSlotNotFound):
			slot, _ := h.store.Path(req.Slot)
			rw.NotFound(fmt.Sprintf("Project slot %q not found", slot))
		case errors.As(err, &invalid):
			logging.Ctx(r.Context()).Warn().Err(err).Str("slot", invalid.Slot).Msg("Stored project rejected")
			rw.UnprocessableProject(invalidProjectMessage(invalid), invalid.Issues)
		default:
			logging.Ctx(r.Context()).Error().Err(err).Str("slot", req.Slot).Msg("Failed to load project")
			rw.InternalError("Failed to load project")
		}
		return
	}

	rw.Success(ProjectLoadResponse{
		Slot:    rec.Slot,
		Path:    rec.Path,
		Project: rec.Project,
		Summary: storage.Summarize(rec.Project),
	})
}

func invalidProjectMessage(e *storage.InvalidProjectError) string {
	for _, issue := range e.Issues {
		if issue.Type == validation.IssueJSONDecode {
			return "Project file is not valid JSON"
		}
	}
	return "Project file failed validation"
}

// validateProjectRequest checks the request envelope and then the project it
// carries, writing a 400 on failure.
func validateProjectRequest(rw *ResponseWriter, req any, project *models.ProjectGraph) bool {
	if verr := validation.ValidateStruct(req); verr != nil {
		rw.ValidationError(verr.Error(), verr.Issues())
		return false
	}
	if verr := validation.ValidateProject(project); verr != nil {
		rw.ValidationError(verr.Error(), verr.Issues())
		return false
	}
	return true
}
