package api_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/verdict/internal/api"
	"github.com/JaimeStill/verdict/internal/config"
	"github.com/JaimeStill/verdict/internal/infrastructure"
	"github.com/JaimeStill/verdict/internal/model"
	"github.com/JaimeStill/verdict/pkg/middleware"
)

func validConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("TENANT_NAME", "acme")
	t.Setenv("VERDICT_MODEL_DIR", t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	return cfg
}

func setup(t *testing.T) (*api.API, *infrastructure.Infrastructure) {
	t.Helper()
	cfg := validConfig(t)
	infra, err := infrastructure.NewWithWriter(cfg, io.Discard)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	a, err := api.New(cfg, infra)
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}
	return a, infra
}

func start(t *testing.T, a *api.API, infra *infrastructure.Infrastructure) {
	t.Helper()
	a.Start()
	if err := infra.Lifecycle.WaitForStartup(); err != nil {
		t.Fatalf("WaitForStartup() error = %v", err)
	}
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, r))
	return rec
}

func TestNew(t *testing.T) {
	a, _ := setup(t)

	if a.Router == nil {
		t.Error("Router is nil")
	}
	if a.Domain == nil || a.Domain.Model == nil {
		t.Error("Domain model system is nil")
	}
	if a.Spec == nil {
		t.Error("Spec is nil")
	}
}

func TestNotReadyUntilStarted(t *testing.T) {
	a, _ := setup(t)

	for _, path := range []string{"/health", "/ready"} {
		if rec := do(a.Router, "GET", path, ""); rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s before start: got %d, want %d", path, rec.Code, http.StatusServiceUnavailable)
		}
	}
	if rec := do(a.Router, "GET", "/", ""); rec.Code != http.StatusOK {
		t.Errorf("root before start: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestEndToEnd(t *testing.T) {
	a, infra := setup(t)
	start(t, a, infra)

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{"GET", "/", "", http.StatusOK},
		{"GET", "/health", "", http.StatusOK},
		{"GET", "/ready", "", http.StatusOK},
		{"GET", "/ready/", "", http.StatusOK},
		{"POST", "/predict", `{"text":"I love this product"}`, http.StatusOK},
		{"POST", "/predict", `{"text":"` + strings.Repeat("great product ", 5200) + `"}`, http.StatusOK},
		{"GET", "/metrics", "", http.StatusOK},
		{"GET", "/metrics/prometheus", "", http.StatusOK},
		{"GET", "/docs", "", http.StatusOK},
		{"GET", "/docs/openapi.json", "", http.StatusOK},
		{"GET", "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s %dB", tt.method, tt.path, len(tt.body)), func(t *testing.T) {
			rec := do(a.Router, tt.method, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestTenantInBodies(t *testing.T) {
	a, infra := setup(t)
	start(t, a, infra)

	paths := []struct {
		method string
		path   string
		body   string
	}{
		{"GET", "/", ""},
		{"GET", "/health", ""},
		{"GET", "/ready", ""},
		{"GET", "/metrics", ""},
		{"POST", "/predict", `{"text":"Terrible product"}`},
	}

	for _, p := range paths {
		rec := do(a.Router, p.method, p.path, p.body)
		var body map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("%s: decode: %v", p.path, err)
		}
		if body["tenant"] != "acme" {
			t.Errorf("%s tenant: got %v, want acme", p.path, body["tenant"])
		}
	}
}

func TestRequestIDHeader(t *testing.T) {
	a, _ := setup(t)

	rec := do(a.Router, "GET", "/", "")
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("response should carry a generated request id")
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	if got := rec.Header().Get(middleware.RequestIDHeader); got != "abc-123" {
		t.Errorf("request id: got %s, want abc-123", got)
	}
}

func TestPrometheusExposition(t *testing.T) {
	a, infra := setup(t)
	start(t, a, infra)

	do(a.Router, "POST", "/predict", `{"text":"I love this product"}`)
	do(a.Router, "GET", "/health", "")

	body := do(a.Router, "GET", "/metrics/prometheus", "").Body.String()

	for _, want := range []string{
		`verdict_model_loaded{tenant="acme"} 1`,
		`verdict_vectorizer_loaded{tenant="acme"} 1`,
		`verdict_predictions_total{label="positive",tenant="acme"} 1`,
		`verdict_http_requests_total{method="GET",route="GET /health",status="200"} 1`,
		`verdict_http_requests_total{method="POST",route="POST /predict",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestSpecDocumentsRoutes(t *testing.T) {
	a, _ := setup(t)

	for _, path := range []string{"/", "/health", "/ready", "/predict", "/metrics", "/metrics/prometheus"} {
		if _, ok := a.Spec.Paths[path]; !ok {
			t.Errorf("spec missing path %s", path)
		}
	}

	if a.Spec.Paths["/predict"].Post == nil {
		t.Error("spec should document POST /predict")
	}
	if _, ok := a.Spec.Components.Schemas["Prediction"]; !ok {
		t.Error("spec should include the Prediction schema")
	}
	if len(a.Spec.Servers) != 1 || a.Spec.Servers[0].URL != "http://localhost:8000" {
		t.Errorf("servers: got %+v", a.Spec.Servers)
	}
}

func TestServedSpecMatches(t *testing.T) {
	a, _ := setup(t)

	rec := do(a.Router, "GET", "/docs/openapi.json", "")
	var served map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&served); err != nil {
		t.Fatalf("decode served spec: %v", err)
	}
	info := served["info"].(map[string]any)
	if info["version"] != "1.0.0" {
		t.Errorf("spec version: got %v, want 1.0.0", info["version"])
	}
	if _, ok := served["paths"].(map[string]any)["/predict"]; !ok {
		t.Error("served spec should include /predict")
	}
}

func TestRootServiceFields(t *testing.T) {
	a, _ := setup(t)

	var body model.RootStatus
	json.NewDecoder(do(a.Router, "GET", "/", "").Body).Decode(&body)
	if body.Service != api.ServiceName || body.Version != "1.0.0" {
		t.Errorf("root body: got %+v", body)
	}
}
