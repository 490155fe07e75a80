// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package api

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nodevision/internal/config"
	"github.com/tomtom215/nodevision/internal/latency"
	"github.com/tomtom215/nodevision/internal/render"
	"github.com/tomtom215/nodevision/internal/storage"
)

// envelope decodes an APIResponse with a typed payload.
type envelope[T any] struct {
	Success bool      `json:"success"`
	Data    T         `json:"data"`
	Error   *APIError `json:"error"`
	Meta    *APIMeta  `json:"meta"`
}

type testServer struct {
	handler  http.Handler
	dir      string
	benchLog string
	store    *storage.Store
}

func newTestServer(t *testing.T, mw *ChiMiddlewareConfig) *testServer {
	t.Helper()

	dir := t.TempDir()
	benchLog := filepath.Join(dir, "tmp", "preview_bench.log")
	preview := config.PreviewConfig{
		ProjectRoot:       dir,
		BenchLogPath:      benchLog,
		PlaceholderWidth:  320,
		PlaceholderHeight: 180,
		DefaultProxyScale: 0.5,
	}
	store := storage.NewStore(filepath.Join(dir, "storage"), "latest")
	h := NewHandler(render.NewServiceFromConfig(preview), store, latency.NewRecorder(benchLog))

	if mw == nil {
		mw = DefaultChiMiddlewareConfig()
		mw.RateLimitDisabled = true
	}
	return &testServer{
		handler:  NewRouter(h, mw).SetupChi(),
		dir:      dir,
		benchLog: benchLog,
		store:    store,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
	}
	return env
}

const testProject = `{
  "schemaVersion": "1.0.7",
  "mediaColorSpace": "Rec.709",
  "projectFps": 24,
  "nodes": [
    {"id": "n1", "type": "MediaInput", "params": {"path": "missing.png", "placeholderWidth": 160, "placeholderHeight": 90}, "inputs": {}, "outputs": ["video"]},
    {"id": "n2", "type": "ExposureAdjust", "params": {"exposure": 0.5}, "inputs": {"video": "n1:video"}, "outputs": ["video"]},
    {"id": "n3", "type": "PreviewDisplay", "inputs": {"primary": "n2:video"}, "outputs": []}
  ],
  "edges": [{"from": "n1:video", "to": "n2:video"}, {"from": "n2:video", "to": "n3:primary"}],
  "assets": [],
  "metadata": {"note": "test"}
}`

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	env := decode[HealthResponse](t, rec)
	want := HealthResponse{Status: "ok", Service: ServiceName, Version: BackendVersion}
	if !env.Success || env.Data != want {
		t.Errorf("health = %+v, want %+v", env.Data, want)
	}
	if env.Meta == nil || env.Meta.RequestID == "" {
		t.Error("expected meta.request_id to be set")
	}
	if rec.Header().Get("X-Request-ID") != env.Meta.RequestID {
		t.Errorf("X-Request-ID %q != meta.request_id %q", rec.Header().Get("X-Request-ID"), env.Meta.RequestID)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers on API routes")
	}
}

func TestInfo(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	env := decode[InfoResponse](t, s.do(t, http.MethodGet, "/api/v1/info", ""))
	if env.Data.BackendVersion != BackendVersion {
		t.Errorf("backendVersion = %q", env.Data.BackendVersion)
	}
	if len(env.Data.Endpoints) != len(Endpoints) {
		t.Errorf("endpoints = %v, want %v", env.Data.Endpoints, Endpoints)
	}
}

func TestNodeCatalog(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	env := decode[[]map[string]any](t, s.do(t, http.MethodGet, "/api/v1/nodes/catalog", ""))
	if len(env.Data) != 8 {
		t.Fatalf("catalog has %d entries, want 8", len(env.Data))
	}
	if env.Data[0]["nodeId"] != "MediaInput" {
		t.Errorf("first entry = %v, want MediaInput", env.Data[0]["nodeId"])
	}
}

func TestProjects_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/v1/projects/save", `{"slot": "demo", "project": `+testProject+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("save status = %d: %s", rec.Code, rec.Body.String())
	}
	saved := decode[ProjectSaveResponse](t, rec)
	if saved.Data.Slot != "demo" || saved.Data.Summary.Nodes != 3 || saved.Data.Summary.Edges != 2 {
		t.Errorf("save response = %+v", saved.Data)
	}
	if _, err := os.Stat(saved.Data.Path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}

	rec = s.do(t, http.MethodPost, "/api/v1/projects/load", `{"slot": "demo"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("load status = %d: %s", rec.Code, rec.Body.String())
	}
	loaded := decode[ProjectLoadResponse](t, rec)
	if loaded.Data.Project == nil || loaded.Data.Project.Metadata["savedBy"] != "backend" {
		t.Errorf("loaded project metadata = %v", loaded.Data.Project)
	}
	if loaded.Data.Project.Metadata["note"] != "test" {
		t.Error("expected original metadata to survive the round trip")
	}
	if loaded.Data.Summary != saved.Data.Summary {
		t.Errorf("summary changed: %+v vs %+v", loaded.Data.Summary, saved.Data.Summary)
	}
}

func TestProjects_DefaultSlot(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodPost, "/api/v1/projects/save", `{"project": `+testProject+`}`)
	if got := decode[ProjectSaveResponse](t, rec).Data.Slot; got != "latest" {
		t.Errorf("slot = %q, want latest", got)
	}

	// Load with no body at all uses the default slot.
	rec = s.do(t, http.MethodPost, "/api/v1/projects/load", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("load status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestProjects_LoadErrors(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	if err := os.MkdirAll(s.store.Dir(), 0o750); err != nil {
		t.Fatal(err)
	}
	_, brokenPath := s.store.Path("broken")
	if err := os.WriteFile(brokenPath, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, invalidPath := s.store.Path("invalid")
	if err := os.WriteFile(invalidPath, []byte(`{"schemaVersion": "", "mediaColorSpace": "Rec.709", "nodes": []}`), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		slot      string
		wantCode  int
		wantError string
		wantType  string
	}{
		{"missing", "nope", http.StatusNotFound, ErrCodeNotFound, ""},
		{"not json", "broken", http.StatusUnprocessableEntity, ErrCodeInvalidProject, "json_decode"},
		{"fails validation", "invalid", http.StatusUnprocessableEntity, ErrCodeInvalidProject, "validation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := s.do(t, http.MethodPost, "/api/v1/projects/load", `{"slot": "`+tt.slot+`"}`)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			env := decode[any](t, rec)
			if env.Success || env.Error == nil || env.Error.Code != tt.wantError {
				t.Fatalf("error = %+v, want code %s", env.Error, tt.wantError)
			}
			if tt.wantType == "" {
				return
			}
			details, _ := env.Error.Details.(map[string]any)
			issues, _ := details["issues"].([]any)
			if len(issues) == 0 {
				t.Fatalf("expected issues in details, got %v", env.Error.Details)
			}
			first, _ := issues[0].(map[string]any)
			if first["type"] != tt.wantType {
				t.Errorf("issue type = %v, want %s", first["type"], tt.wantType)
			}
		})
	}
}

func TestProjects_SaveRejectsInvalid(t *testing.T) {
	t.Parallel()

	dup := strings.Replace(testProject, `"id": "n2"`, `"id": "n1"`, 1)
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"malformed json", `{"project": `, ErrCodeBadRequest},
		{"missing project", `{"slot": "x"}`, ErrCodeValidationFailed},
		{"missing schema version", `{"project": {"mediaColorSpace": "Rec.709"}}`, ErrCodeValidationFailed},
		{"duplicate node ids", `{"project": ` + dup + `}`, ErrCodeValidationFailed},
	}

	s := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := s.do(t, http.MethodPost, "/api/v1/projects/save", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
			if env := decode[any](t, rec); env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestGeneratePreview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		forceProxy string
		wantWidth  int
		wantHeight int
		wantReason string
	}{
		{"auto", "", 160, 90, "auto"},
		{"force on", `, "forceProxy": true`, 80, 45, "client_force_on"},
		{"force off", `, "forceProxy": false`, 160, 90, "client_force_off"},
	}

	s := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := s.do(t, http.MethodPost, "/api/v1/preview/generate", `{"project": `+testProject+tt.forceProxy+`}`)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			env := decode[PreviewResponse](t, rec)
			p := env.Data

			if p.Width != tt.wantWidth || p.Height != tt.wantHeight {
				t.Errorf("size = %dx%d, want %dx%d", p.Width, p.Height, tt.wantWidth, tt.wantHeight)
			}
			if p.Source.Width != 160 || p.Source.Height != 90 {
				t.Errorf("source = %+v, want 160x90", p.Source)
			}
			if p.Proxy.Reason != tt.wantReason || p.Proxy.Width != p.Width {
				t.Errorf("proxy = %+v", p.Proxy)
			}
			if p.Proxy.TargetDelayMs == nil || *p.Proxy.TargetDelayMs != 150 {
				t.Errorf("targetDelayMs = %v, want 150", p.Proxy.TargetDelayMs)
			}
			if !strings.HasSuffix(p.GeneratedAt, "Z") {
				t.Errorf("generatedAt = %q, want Z suffix", p.GeneratedAt)
			}

			raw, err := base64.StdEncoding.DecodeString(p.ImageBase64)
			if err != nil {
				t.Fatalf("imageBase64: %v", err)
			}
			img, err := png.Decode(bytes.NewReader(raw))
			if err != nil {
				t.Fatalf("decode png: %v", err)
			}
			if b := img.Bounds(); b.Dx() != p.Width || b.Dy() != p.Height {
				t.Errorf("png is %dx%d, response says %dx%d", b.Dx(), b.Dy(), p.Width, p.Height)
			}
		})
	}
}

func TestGeneratePreview_UsesRecordedLatency(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	for _, delay := range []string{"200", "220"} {
		rec := s.do(t, http.MethodPost, "/api/v1/metrics/preview", `{"profile": "160x90", "delayMs": `+delay+`}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("record status = %d: %s", rec.Code, rec.Body.String())
		}
	}

	env := decode[PreviewResponse](t, s.do(t, http.MethodPost, "/api/v1/preview/generate", `{"project": `+testProject+`}`))
	if env.Data.Proxy.Reason != "historical_delay" || !env.Data.Proxy.Enabled {
		t.Fatalf("proxy = %+v, want historical_delay", env.Data.Proxy)
	}
	if env.Data.Proxy.AverageDelayMs == nil || *env.Data.Proxy.AverageDelayMs != 210 {
		t.Errorf("averageDelayMs = %v, want 210", env.Data.Proxy.AverageDelayMs)
	}
}

func TestRecordPreviewMetric(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	body := `{"profile": " 1920x1080_gpu ", "delayMs": 180.5, "proxy": true, "scale": 0.5, "reason": "auto", "targetDelayMs": 150}`
	rec := s.do(t, http.MethodPost, "/api/v1/metrics/preview", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if env := decode[MetricRecordedResponse](t, rec); !env.Data.Recorded || env.Data.Profile != "1920x1080_gpu" {
		t.Errorf("response = %+v", env.Data)
	}

	data, err := os.ReadFile(s.benchLog)
	if err != nil {
		t.Fatalf("read bench log: %v", err)
	}
	for _, want := range []string{
		"PREVIEW_DELAY,1920x1080_gpu,180.50\n",
		"PROXY_SCALE,1920x1080_gpu,0.50\n",
		"PROXY_ENABLED,1920x1080_gpu,1\n",
		"PROXY_REASON,1920x1080_gpu,auto\n",
		"DELAY_TARGET,1920x1080_gpu,150.00\n",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("bench log missing %q:\n%s", want, data)
		}
	}
}

func TestRecordPreviewMetric_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"missing delay", `{"profile": "1920x1080"}`, ErrCodeValidationFailed},
		{"missing profile", `{"delayMs": 10}`, ErrCodeValidationFailed},
		{"negative delay", `{"profile": "1920x1080", "delayMs": -1}`, ErrCodeValidationFailed},
		{"scale out of range", `{"profile": "1920x1080", "delayMs": 10, "scale": 2}`, ErrCodeValidationFailed},
		{"blank profile", `{"profile": "   ", "delayMs": 10}`, ErrCodeBadRequest},
		{"not json", `delay=10`, ErrCodeBadRequest},
	}

	s := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/v1/metrics/preview", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
			if env := decode[any](t, rec); env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want %s", env.Error, tt.wantCode)
			}
		})
	}

	if _, err := os.Stat(s.benchLog); !os.IsNotExist(err) {
		t.Errorf("rejected metrics must not create the bench log, stat err = %v", err)
	}
}
