package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/verdict/pkg/openapi"
	"github.com/JaimeStill/verdict/pkg/routes"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRegisterHandlers(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{$}", Handler: ok},
			{Method: "GET", Pattern: "/health", Handler: ok},
			{Method: "POST", Pattern: "/predict", Handler: ok},
		},
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"root", "GET", "/", http.StatusOK},
		{"health", "GET", "/health", http.StatusOK},
		{"predict", "POST", "/predict", http.StatusOK},
		{"predict wrong method", "GET", "/predict", http.StatusMethodNotAllowed},
		{"unknown", "GET", "/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestNestedGroups(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/api",
		Children: []routes.Group{
			{
				Prefix: "/v1",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/items", Handler: ok},
				},
			},
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/items", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("nested route: got %d, want 200", rec.Code)
	}
}

func TestDocument(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")

	group := routes.Group{
		Prefix: "",
		Tags:   []string{"Model"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{$}", Handler: ok, OpenAPI: &openapi.Operation{Summary: "root"}},
			{Method: "POST", Pattern: "/predict", Handler: ok, OpenAPI: &openapi.Operation{Summary: "predict", Tags: []string{"Inference"}}},
			{Method: "GET", Pattern: "/hidden", Handler: ok},
		},
		Children: []routes.Group{
			{
				Prefix: "/metrics",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/{$}", Handler: ok, OpenAPI: &openapi.Operation{Summary: "metrics"}},
				},
			},
		},
	}

	routes.Document(spec, "", group)

	root, exists := spec.Paths["/"]
	if !exists || root.Get == nil {
		t.Fatal("root GET should be documented")
	}
	if len(root.Get.Tags) != 1 || root.Get.Tags[0] != "Model" {
		t.Errorf("root tags: got %v, want [Model]", root.Get.Tags)
	}

	predict, exists := spec.Paths["/predict"]
	if !exists || predict.Post == nil {
		t.Fatal("predict POST should be documented")
	}
	if predict.Post.Tags[0] != "Inference" {
		t.Errorf("predict tags: got %v, want [Inference]", predict.Post.Tags)
	}

	if _, exists := spec.Paths["/hidden"]; exists {
		t.Error("routes without OpenAPI should not be documented")
	}

	if m, exists := spec.Paths["/metrics"]; !exists || m.Get == nil {
		t.Error("child group route should be documented at /metrics")
	}
}

func TestDocumentBasePath(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")

	routes.Document(spec, "/docs", routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/openapi.json", Handler: ok, OpenAPI: &openapi.Operation{Summary: "spec"}},
		},
	})

	if _, exists := spec.Paths["/docs/openapi.json"]; !exists {
		t.Errorf("paths: got %v, want /docs/openapi.json", spec.Paths)
	}
}
