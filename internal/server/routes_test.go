package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kartikm76/middleoffice-ibor/internal/app"
	"github.com/kartikm76/middleoffice-ibor/internal/common"
	"github.com/kartikm76/middleoffice-ibor/internal/config"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()

	backend := newFakeIbor(t)

	cfg := config.NewDefaultConfig()
	cfg.API.URL = backend.URL
	cfg.Storage.Badger.Path = t.TempDir()
	cfg.Panels.Debounce = "10ms"

	application, err := app.New(cfg, common.NewSilentLogger())
	if err != nil {
		t.Fatalf("failed to create test app: %v", err)
	}

	t.Cleanup(func() {
		application.Close()
	})

	return application
}

func serve(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestRoutes_HealthEndpoint(t *testing.T) {
	srv := New(newTestApp(t))

	w := serve(srv, "GET", "/api/health", "")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %s", body["status"])
	}
}

func TestRoutes_VersionEndpoint(t *testing.T) {
	srv := New(newTestApp(t))

	w := serve(srv, "GET", "/api/version", "")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if _, ok := body["version"]; !ok {
		t.Error("expected version field in response")
	}
}

func TestRoutes_ServerHealthEndpoint(t *testing.T) {
	srv := New(newTestApp(t))

	w := serve(srv, "GET", "/api/server-health", "")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRoutes_APINotFound(t *testing.T) {
	srv := New(newTestApp(t))

	w := serve(srv, "GET", "/api/nonexistent", "")

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestRoutes_DeskPage(t *testing.T) {
	srv := New(newTestApp(t))

	w := serve(srv, "GET", "/", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	for _, want := range []string{"IBOR Desk", "desk.css", "desk.js", `data-code="ALPHA"`, `data-theme="dark"`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected desk page to contain %q", want)
		}
	}
}

func TestRoutes_UnknownPageIs404(t *testing.T) {
	srv := New(newTestApp(t))

	if w := serve(srv, "GET", "/reports", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestRoutes_SelectionDrivesPanels(t *testing.T) {
	application := newTestApp(t)
	srv := New(application)

	w := serve(srv, "PUT", "/api/desk/selection", `{"portfolio":"BETA"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		var vm struct {
			Loading bool    `json:"loading"`
			Error   *string `json:"error"`
			Data    *struct {
				PortfolioCode string `json:"portfolioCode"`
			} `json:"data"`
		}
		w := serve(srv, "GET", "/api/desk/panels/securities", "")
		if err := json.Unmarshal(w.Body.Bytes(), &vm); err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}
		if vm.Error != nil {
			t.Fatalf("unexpected panel error: %s", *vm.Error)
		}
		if !vm.Loading && vm.Data != nil && vm.Data.PortfolioCode == "BETA" {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("securities panel never showed BETA: %s", w.Body.String())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRoutes_SelectionMethodNotAllowed(t *testing.T) {
	srv := New(newTestApp(t))

	w := serve(srv, "DELETE", "/api/desk/selection", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestRoutes_ThemeTogglePersists(t *testing.T) {
	application := newTestApp(t)
	srv := New(application)

	w := serve(srv, "POST", "/api/desk/theme", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	v, err := application.Storage.KeyValueStorage().Get(t.Context(), "ibor:theme")
	if err != nil {
		t.Fatalf("expected theme stored: %v", err)
	}
	if v != "light" {
		t.Errorf("expected light, got %s", v)
	}
}

func TestRoutes_ExplainEndToEnd(t *testing.T) {
	srv := New(newTestApp(t))

	w := serve(srv, "POST", "/api/desk/explain", `{"question":"What changed in IBM?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "IBM was trimmed by 20bps.") {
		t.Errorf("expected answer in response, got %s", w.Body.String())
	}
}

func TestRoutes_MiddlewareApplied(t *testing.T) {
	srv := New(newTestApp(t))

	w := serve(srv, "GET", "/api/health", "")

	// Verify correlation ID middleware is applied
	if w.Header().Get("X-Correlation-ID") == "" {
		t.Error("expected X-Correlation-ID header from middleware")
	}

	// Verify CORS middleware is applied
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS header from middleware")
	}
}

func TestRoutes_SecurityHeadersApplied(t *testing.T) {
	srv := New(newTestApp(t))

	w := serve(srv, "GET", "/api/health", "")

	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected X-Content-Type-Options header from security middleware")
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("expected X-Frame-Options header from security middleware")
	}
	if w.Header().Get("Referrer-Policy") == "" {
		t.Error("expected Referrer-Policy header from security middleware")
	}
	if w.Header().Get("Content-Security-Policy") == "" {
		t.Error("expected Content-Security-Policy header from security middleware")
	}
}

func TestRoutes_CSRFCookieOnDeskPage(t *testing.T) {
	srv := New(newTestApp(t))

	w := serve(srv, "GET", "/", "")

	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "_csrf" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected _csrf cookie to be set on desk page response")
	}
}

func TestRoutes_MCPSkipsCSRF(t *testing.T) {
	srv := New(newTestApp(t))

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`
	req := httptest.NewRequest("POST", "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code == http.StatusForbidden {
		t.Fatal("expected MCP POST to bypass CSRF")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}
