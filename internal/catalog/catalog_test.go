// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package catalog

import (
	"slices"
	"testing"

	"github.com/tomtom215/nodevision/internal/graph"
)

func TestEntries_EveryKindKnown(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, e := range Entries() {
		if seen[e.NodeID] {
			t.Errorf("duplicate catalog entry %s", e.NodeID)
		}
		seen[e.NodeID] = true
		if graph.ParseKind(e.NodeID) == graph.KindUnknown {
			t.Errorf("catalog entry %s is not a resolvable kind", e.NodeID)
		}
		if e.DisplayName == "" || e.Category == "" || e.Description == "" {
			t.Errorf("incomplete entry %+v", e)
		}
		if e.Inputs == nil || e.Outputs == nil || e.DefaultParams == nil {
			t.Errorf("entry %s has nil lists, they must encode as []/{}", e.NodeID)
		}
	}
	if len(seen) != 8 {
		t.Errorf("catalog has %d entries, want 8", len(seen))
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       string
		category string
		inputs   []string
		outputs  []string
	}{
		{"MediaInput", CategoryIO, []string{}, []string{"video", "audio"}},
		{"ExposureAdjust", CategoryColor, []string{"video"}, []string{"video"}},
		{"PreviewDisplay", CategoryMonitoring, []string{"primary", "secondary"}, []string{}},
		{"Blend", CategoryComposite, []string{"primary", "secondary"}, []string{"image"}},
	}
	for _, tt := range tests {
		e, ok := Lookup(tt.id)
		if !ok {
			t.Fatalf("Lookup(%s) not found", tt.id)
		}
		if e.Category != tt.category || !slices.Equal(e.Inputs, tt.inputs) || !slices.Equal(e.Outputs, tt.outputs) {
			t.Errorf("Lookup(%s) = %+v", tt.id, e)
		}
	}

	if _, ok := Lookup("Vignette"); ok {
		t.Error("unexpected entry for Vignette")
	}
}

func TestEntries_Defaults(t *testing.T) {
	t.Parallel()

	media, _ := Lookup("MediaInput")
	if media.DefaultParams["path"] != "Assets/clip01.mp4" ||
		media.DefaultParams["placeholderWidth"] != 1920 ||
		media.DefaultParams["placeholderHeight"] != 1080 {
		t.Errorf("MediaInput defaults = %v", media.DefaultParams)
	}
	for id, key := range map[string]string{"ExposureAdjust": "exposure", "ContrastAdjust": "contrast", "SaturationAdjust": "saturation"} {
		e, _ := Lookup(id)
		if _, ok := e.DefaultParams[key]; !ok {
			t.Errorf("%s missing default %s", id, key)
		}
	}

	// Entries hands out copies.
	Entries()[0].DefaultParams["path"] = "changed"
	if e, _ := Lookup("MediaInput"); e.DefaultParams["path"] != "Assets/clip01.mp4" {
		t.Error("catalog defaults were mutated through Entries()")
	}
}
