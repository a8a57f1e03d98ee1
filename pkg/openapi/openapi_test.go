package openapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/verdict/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Test API", "1.0.0")

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("openapi version: got %s, want 3.1.0", spec.OpenAPI)
	}
	if spec.Info.Title != "Test API" {
		t.Errorf("title: got %s, want Test API", spec.Info.Title)
	}
	if spec.Info.Version != "1.0.0" {
		t.Errorf("version: got %s, want 1.0.0", spec.Info.Version)
	}
	if spec.Components == nil {
		t.Fatal("components should not be nil")
	}
	if spec.Paths == nil {
		t.Fatal("paths should not be nil")
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := &openapi.Config{Title: "Verdict", Description: "sentiment"}
	spec := openapi.New(cfg, "2.0.0")

	if spec.Info.Title != "Verdict" {
		t.Errorf("title: got %s, want Verdict", spec.Info.Title)
	}
	if spec.Info.Description != "sentiment" {
		t.Errorf("description: got %s, want sentiment", spec.Info.Description)
	}
	if spec.Info.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", spec.Info.Version)
	}
}

func TestAddServer(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	spec.AddServer("http://localhost:8000")

	if len(spec.Servers) != 1 {
		t.Fatalf("servers: got %d, want 1", len(spec.Servers))
	}
	if spec.Servers[0].URL != "http://localhost:8000" {
		t.Errorf("server url: got %s", spec.Servers[0].URL)
	}
}

func TestSchemaRef(t *testing.T) {
	ref := openapi.SchemaRef("Prediction")
	expected := "#/components/schemas/Prediction"

	if ref.Ref != expected {
		t.Errorf("ref: got %s, want %s", ref.Ref, expected)
	}
}

func TestResponseRef(t *testing.T) {
	ref := openapi.ResponseRef("ServiceUnavailable")
	expected := "#/components/responses/ServiceUnavailable"

	if ref.Ref != expected {
		t.Errorf("ref: got %s, want %s", ref.Ref, expected)
	}
}

func TestRequestBodyJSON(t *testing.T) {
	rb := openapi.RequestBodyJSON("PredictRequest", true)

	if !rb.Required {
		t.Error("required should be true")
	}
	ct, ok := rb.Content["application/json"]
	if !ok {
		t.Fatal("missing application/json content type")
	}
	if ct.Schema.Ref != "#/components/schemas/PredictRequest" {
		t.Errorf("schema ref: got %s", ct.Schema.Ref)
	}
}

func TestResponseJSON(t *testing.T) {
	resp := openapi.ResponseJSON("Success", "Prediction")

	if resp.Description != "Success" {
		t.Errorf("description: got %s", resp.Description)
	}
	ct, ok := resp.Content["application/json"]
	if !ok {
		t.Fatal("missing application/json content type")
	}
	if ct.Schema.Ref != "#/components/schemas/Prediction" {
		t.Errorf("schema ref: got %s", ct.Schema.Ref)
	}
}

func TestPathItemSet(t *testing.T) {
	tests := []struct {
		method string
		get    func(*openapi.PathItem) *openapi.Operation
	}{
		{http.MethodGet, func(p *openapi.PathItem) *openapi.Operation { return p.Get }},
		{http.MethodPost, func(p *openapi.PathItem) *openapi.Operation { return p.Post }},
		{http.MethodPut, func(p *openapi.PathItem) *openapi.Operation { return p.Put }},
		{http.MethodDelete, func(p *openapi.PathItem) *openapi.Operation { return p.Delete }},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			item := &openapi.PathItem{}
			op := &openapi.Operation{Summary: tt.method}
			item.Set(tt.method, op)

			if tt.get(item) != op {
				t.Errorf("%s operation not assigned", tt.method)
			}
		})
	}
}

func TestNewComponentsDefaults(t *testing.T) {
	c := openapi.NewComponents()

	if _, ok := c.Schemas["Error"]; !ok {
		t.Error("missing default schema: Error")
	}

	responses := []string{"ValidationError", "ServiceUnavailable", "InternalError"}
	for _, name := range responses {
		if _, ok := c.Responses[name]; !ok {
			t.Errorf("missing default response: %s", name)
		}
	}
}

func TestAddSchemas(t *testing.T) {
	c := openapi.NewComponents()
	c.AddSchemas(map[string]*openapi.Schema{
		"Prediction": {Type: "object"},
	})

	if _, ok := c.Schemas["Prediction"]; !ok {
		t.Error("Prediction schema not added")
	}
	if _, ok := c.Schemas["Error"]; !ok {
		t.Error("default Error schema should still exist")
	}
}

func TestAddResponses(t *testing.T) {
	c := openapi.NewComponents()
	c.AddResponses(map[string]*openapi.Response{
		"Teapot": {Description: "I'm a teapot"},
	})

	if _, ok := c.Responses["Teapot"]; !ok {
		t.Error("Teapot response not added")
	}
	if _, ok := c.Responses["ServiceUnavailable"]; !ok {
		t.Error("default ServiceUnavailable response should still exist")
	}
}

func TestWriteJSON(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	path := filepath.Join(t.TempDir(), "docs", "spec.json")

	if err := openapi.WriteJSON(spec, path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if parsed["openapi"] != "3.1.0" {
		t.Errorf("openapi: got %v", parsed["openapi"])
	}
	if !bytes.HasSuffix(data, []byte("}\n")) {
		t.Error("written spec should end with a newline")
	}
}

func TestEncode(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")

	var buf bytes.Buffer
	if err := openapi.Encode(&buf, spec); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if got, want := buf.String(), string(data)+"\n"; got != want {
		t.Errorf("encoded: got %q, want %q", got, want)
	}
}

func TestServeSpec(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	handler := openapi.ServeSpec(data)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/openapi.json", nil)

	handler(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content-type: got %s", ct)
	}

	body, _ := io.ReadAll(res.Body)
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("body unmarshal failed: %v", err)
	}
}

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := openapi.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Title != "Verdict API" {
		t.Errorf("title: got %s, want Verdict API", cfg.Title)
	}
	if cfg.Description != "Tenant-scoped sentiment inference service." {
		t.Errorf("description: got %s", cfg.Description)
	}
}

func TestConfigFinalizeEnv(t *testing.T) {
	t.Setenv("TEST_TITLE", "Custom API")
	t.Setenv("TEST_DESC", "Custom desc")

	env := &openapi.ConfigEnv{
		Title:       "TEST_TITLE",
		Description: "TEST_DESC",
	}

	cfg := openapi.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Title != "Custom API" {
		t.Errorf("title: got %s, want Custom API", cfg.Title)
	}
	if cfg.Description != "Custom desc" {
		t.Errorf("description: got %s, want Custom desc", cfg.Description)
	}
}

func TestConfigMerge(t *testing.T) {
	base := openapi.Config{Title: "Base"}
	overlay := openapi.Config{Title: "Overlay"}
	base.Merge(&overlay)

	if base.Title != "Overlay" {
		t.Errorf("title: got %s, want Overlay", base.Title)
	}
}
