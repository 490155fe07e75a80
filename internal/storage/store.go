// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

// Package storage persists projects as indented JSON files, one per slot.
//
// A slot name is reduced to a safe file stem by SanitizeSlot and stored as
// <dir>/<slot>.nveproj. Writes go to a temporary file in the same directory
// followed by a rename, so readers never observe a partial project.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nodevision/internal/metrics"
	"github.com/tomtom215/nodevision/internal/models"
	"github.com/tomtom215/nodevision/internal/validation"
)

// FileExtension is appended to every slot file.
const FileExtension = ".nveproj"

// tempPattern names in-flight writes. SweepTemp removes leftovers.
const tempPattern = ".slot-*.tmp"

var (
	// ErrSlotNotFound is returned when no project is stored under a slot.
	ErrSlotNotFound = errors.New("project slot not found")

	// ErrInvalidProject wraps decode and validation failures of stored files.
	ErrInvalidProject = errors.New("stored project is invalid")
)

// InvalidProjectError describes why a stored project was rejected.
// It matches ErrInvalidProject with errors.Is.
type InvalidProjectError struct {
	Slot   string
	Issues []validation.Issue
	Err    error
}

func (e *InvalidProjectError) Error() string {
	return fmt.Sprintf("slot %q: %v", e.Slot, e.Err)
}

func (e *InvalidProjectError) Unwrap() []error {
	return []error{ErrInvalidProject, e.Err}
}

// SanitizeSlot turns a client supplied slot name into a safe file stem.
// Separators become "_", every ".." run is collapsed to "_", and anything but
// letters, digits, "_", "-" and "." is dropped. An empty result yields
// def.
func SanitizeSlot(raw, def string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def
	}
	s = strings.NewReplacer(`\`, "_", "/", "_").Replace(s)
	for strings.Contains(s, "..") {
		s = strings.ReplaceAll(s, "..", "_")
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '-', r == '.':
			return r
		default:
			return -1
		}
	}, s)
	if s == "" {
		return def
	}
	return s
}

// Record is a project stored under a slot.
type Record struct {
	Slot    string
	Path    string
	Project *models.ProjectGraph
}

// Store reads and writes project slots under one directory.
type Store struct {
	dir         string
	defaultSlot string
}

// NewStore creates a store rooted at dir. The directory is created on the
// first save.
func NewStore(dir, defaultSlot string) *Store {
	if defaultSlot == "" {
		defaultSlot = "latest"
	}
	return &Store{dir: dir, defaultSlot: defaultSlot}
}

// Dir returns the storage directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the sanitized slot name and its file path.
func (s *Store) Path(slot string) (string, string) {
	slot = SanitizeSlot(slot, s.defaultSlot)
	return slot, filepath.Join(s.dir, slot+FileExtension)
}

// Save writes graph under slot. The stored copy, returned in the record,
// carries metadata.savedBy = "backend"; graph itself is not modified.
func (s *Store) Save(graph *models.ProjectGraph, slot string) (*Record, error) {
	slot, path := s.Path(slot)

	stored := *graph
	stored.Metadata = make(map[string]any, len(graph.Metadata)+1)
	for k, v := range graph.Metadata {
		stored.Metadata[k] = v
	}
	stored.Metadata["savedBy"] = "backend"

	data, err := json.MarshalIndent(&stored, "", "  ")
	if err != nil {
		metrics.RecordProjectOperation("save", "error")
		return nil, fmt.Errorf("encode project: %w", err)
	}
	data = append(data, '\n')
	if err := writeFileAtomic(path, data); err != nil {
		metrics.RecordProjectOperation("save", "error")
		return nil, fmt.Errorf("save slot %q: %w", slot, err)
	}
	metrics.RecordProjectOperation("save", "ok")
	return &Record{Slot: slot, Path: path, Project: &stored}, nil
}

// Load reads and validates the project stored under slot.
func (s *Store) Load(slot string) (*Record, error) {
	slot, path := s.Path(slot)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			metrics.RecordProjectOperation("load", "not_found")
			return nil, fmt.Errorf("slot %q: %w", slot, ErrSlotNotFound)
		}
		metrics.RecordProjectOperation("load", "error")
		return nil, fmt.Errorf("read slot %q: %w", slot, err)
	}

	var graph models.ProjectGraph
	if err := json.Unmarshal(data, &graph); err != nil {
		metrics.RecordProjectOperation("load", "invalid")
		return nil, &InvalidProjectError{
			Slot:   slot,
			Issues: []validation.Issue{{Path: "(root)", Message: err.Error(), Type: validation.IssueJSONDecode}},
			Err:    err,
		}
	}
	if verr := validation.ValidateProject(&graph); verr != nil {
		metrics.RecordProjectOperation("load", "invalid")
		return nil, &InvalidProjectError{Slot: slot, Issues: verr.Issues(), Err: verr}
	}

	metrics.RecordProjectOperation("load", "ok")
	return &Record{Slot: slot, Path: path, Project: &graph}, nil
}

// Summarize returns the counts reported alongside save and load results.
func Summarize(graph *models.ProjectGraph) models.ProjectSummary {
	return graph.Summary()
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	//nolint:gosec // project files are meant to be readable by the editor
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// SweepTemp removes temporary files left behind by interrupted saves that are
// older than maxAge. It returns how many files were removed. A missing
// directory is not an error.
func (s *Store) SweepTemp(maxAge time.Duration) (int, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, tempPattern))
	if err != nil {
		return 0, fmt.Errorf("sweep temp files: %w", err)
	}
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, path := range matches {
		info, err := os.Lstat(path)
		if err != nil || !info.Mode().IsRegular() || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("remove %s: %w", filepath.Base(path), err)
		}
		removed++
	}
	return removed, nil
}
