package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/anchorsmith/anchorsmith/pkg/flow"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Cache = CacheConfig{Backend: "none"}
	s, err := New(context.Background(), cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func testGraphJSON() map[string]any {
	return map[string]any{
		"nodes": []map[string]any{
			{
				"id": "n1", "kind": "account", "name": "Vault",
				"outputs": []map[string]any{{"id": "p1", "name": "state", "type": "account"}},
			},
			{
				"id": "n2", "kind": "transfer", "name": "Deposit",
				"inputs": []map[string]any{{"id": "p2", "name": "vault", "type": "account"}},
			},
		},
		"connections": []map[string]any{
			{"id": "c1", "source_node_id": "n1", "source_port_id": "p1", "target_node_id": "n2", "target_port_id": "p2"},
		},
	}
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	h := testServer(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestValidateEndpoint(t *testing.T) {
	h := testServer(t).Handler()

	w := post(t, h, "/api/v1/validate", map[string]any{"graph": testGraphJSON()})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}

	var resp struct {
		GraphHash string `json:"graph_hash"`
		IsValid   bool   `json:"is_valid"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.IsValid {
		t.Error("graph should be valid")
	}
	if resp.GraphHash == "" {
		t.Error("missing graph hash")
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := testServer(t).Handler()

	w := post(t, h, "/api/v1/analyze", map[string]any{"graph": testGraphJSON()})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}

	var resp struct {
		Analysis flow.Analysis `json:"analysis"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Analysis.ExecutionOrder) != 2 {
		t.Errorf("ExecutionOrder = %v", resp.Analysis.ExecutionOrder)
	}
}

func TestGenerateEndpoint(t *testing.T) {
	h := testServer(t).Handler()

	w := post(t, h, "/api/v1/generate", map[string]any{
		"graph":   testGraphJSON(),
		"options": map[string]any{"program_name": "vault_program"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}

	var resp struct {
		Artifact struct {
			ProgramName string `json:"program_name"`
			Files       []struct {
				Name string `json:"name"`
			} `json:"files"`
		} `json:"artifact"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Artifact.ProgramName != "vault_program" {
		t.Errorf("ProgramName = %q", resp.Artifact.ProgramName)
	}
	if len(resp.Artifact.Files) == 0 {
		t.Error("artifact has no files")
	}
}

func TestGenerateEndpoint_SingleFile(t *testing.T) {
	h := testServer(t).Handler()

	w := post(t, h, "/api/v1/generate?file=src/lib.rs", map[string]any{"graph": testGraphJSON()})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	if !strings.Contains(w.Body.String(), "declare_id!") {
		t.Errorf("unexpected file body:\n%s", w.Body)
	}
}

func TestGenerateEndpoint_FileTraversal(t *testing.T) {
	h := testServer(t).Handler()

	w := post(t, h, "/api/v1/generate?file=../../etc/passwd", map[string]any{"graph": testGraphJSON()})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGenerateEndpoint_MissingFile(t *testing.T) {
	h := testServer(t).Handler()

	w := post(t, h, "/api/v1/generate?file=src/nope.rs", map[string]any{"graph": testGraphJSON()})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGenerateEndpoint_InvalidProgramName(t *testing.T) {
	h := testServer(t).Handler()

	w := post(t, h, "/api/v1/generate", map[string]any{
		"graph":   testGraphJSON(),
		"options": map[string]any{"program_name": "Not Valid"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", w.Code, w.Body)
	}

	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != "INVALID_PROGRAM_NAME" {
		t.Errorf("code = %q", resp.Code)
	}
}

func TestGraphSizeGuard(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache = CacheConfig{Backend: "none"}
	cfg.MaxNodes = 1
	s, err := New(context.Background(), cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	w := post(t, s.Handler(), "/api/v1/validate", map[string]any{"graph": testGraphJSON()})
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413: %s", w.Code, w.Body)
	}
}

func TestPreviewEndpoint_DOT(t *testing.T) {
	h := testServer(t).Handler()

	w := post(t, h, "/api/v1/preview", map[string]any{
		"graph":   testGraphJSON(),
		"options": map[string]any{"formats": []string{"dot"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "digraph G") {
		t.Errorf("unexpected preview body:\n%s", w.Body)
	}
}

func TestDecodeError(t *testing.T) {
	h := testServer(t).Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
addr = ":9090"
max_nodes = 100

[cache]
backend = "none"
scope = "tenant:1:"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.MaxNodes != 100 {
		t.Errorf("MaxNodes = %d", cfg.MaxNodes)
	}
	// Unset fields fall back to defaults.
	if cfg.MaxEdges != DefaultMaxEdges {
		t.Errorf("MaxEdges = %d", cfg.MaxEdges)
	}
	if cfg.Cache.Backend != "none" || cfg.Cache.Scope != "tenant:1:" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadConfig() should fail for a missing file")
	}
}
