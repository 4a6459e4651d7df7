package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sergeyitaly/tfdiagram/pkg/pipeline"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	return New(Config{Addr: ":0"}, runner, log.New(io.Discard))
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

const requestBody = `{
	"resources": [
		{"type": "azurerm_public_ip", "name": "pip"},
		{"type": "azurerm_app_service", "name": "web",
		 "references": ["azurerm_public_ip.pip"]}
	]
}`

func TestHandleDiagram(t *testing.T) {
	s := testServer(t)
	rec := post(t, s, "/api/v1/diagram", requestBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp diagramResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Diagram.Nodes) == 0 {
		t.Errorf("response diagram has no nodes")
	}
	if resp.ResourcesHash == "" {
		t.Errorf("response should carry the resources hash")
	}
	if resp.Stats.ResourceCount != 2 {
		t.Errorf("ResourceCount = %d, want 2", resp.Stats.ResourceCount)
	}
	if _, ok := resp.Deps["azurerm_app_service_web"]; !ok {
		t.Errorf("response should carry the extracted graph")
	}
}

func TestHandleDiagramVerbatimDependencies(t *testing.T) {
	s := testServer(t)
	body := `{
		"resources": [
			{"type": "azurerm_public_ip", "name": "pip"},
			{"type": "azurerm_app_service", "name": "web"}
		],
		"dependencies": {"azurerm_app_service_web": ["azurerm_public_ip_pip"]}
	}`
	rec := post(t, s, "/api/v1/diagram", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp diagramResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := []string{"azurerm_public_ip_pip"}
	got := resp.Deps["azurerm_app_service_web"]
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("supplied graph should be used verbatim, got %v", got)
	}
}

func TestHandleDiagramErrors(t *testing.T) {
	s := testServer(t)
	tests := []struct {
		name string
		body string
		code int
		want string
	}{
		{"malformed json", `{"resources": [`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"no resources", `{"resources": []}`, http.StatusBadRequest, "INVALID_RESOURCE"},
		{
			"invalid layout",
			`{"resources": [{"type": "azurerm_subnet", "name": "s"}],
			  "options": {"layout": "spiral"}}`,
			http.StatusBadRequest, "INVALID_OPTION",
		},
	}
	for _, tt := range tests {
		rec := post(t, s, "/api/v1/diagram", tt.body)
		if rec.Code != tt.code {
			t.Errorf("%s: status = %d, want %d", tt.name, rec.Code, tt.code)
			continue
		}
		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Errorf("%s: decode error body: %v", tt.name, err)
			continue
		}
		if resp.Code != tt.want {
			t.Errorf("%s: code = %q, want %q", tt.name, resp.Code, tt.want)
		}
	}
}

func TestHandleGraph(t *testing.T) {
	s := testServer(t)
	rec := post(t, s, "/api/v1/graph", requestBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp graphResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(resp.DOT, "digraph dependencies {") {
		t.Errorf("graph response should carry DOT output")
	}
	if len(resp.Deps["azurerm_app_service_web"]) != 1 {
		t.Errorf("deps = %v", resp.Deps)
	}
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("health body = %s", rec.Body)
	}
}

func TestHandleVersion(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode version body: %v", err)
	}
	if _, ok := body["version"]; !ok {
		t.Errorf("version body = %v", body)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Errorf("responses should carry an assigned request id")
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "client-id-7")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "client-id-7" {
		t.Errorf("X-Request-ID = %q, want the client-supplied id echoed", got)
	}
}
