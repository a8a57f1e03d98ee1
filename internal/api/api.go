// Package api assembles the HTTP surface: the model routes at the root, the
// metrics module, and the OpenAPI reference module.
package api

import (
	"fmt"

	"github.com/JaimeStill/verdict/internal/config"
	"github.com/JaimeStill/verdict/internal/infrastructure"
	"github.com/JaimeStill/verdict/internal/model"
	"github.com/JaimeStill/verdict/pkg/middleware"
	"github.com/JaimeStill/verdict/pkg/module"
	"github.com/JaimeStill/verdict/pkg/openapi"
	"github.com/JaimeStill/verdict/pkg/routes"
	"github.com/JaimeStill/verdict/web/scalar"
)

// Module prefixes mounted on the router.
const (
	MetricsPrefix = "/metrics"
	DocsPrefix    = "/docs"
)

// API is the assembled HTTP surface.
type API struct {
	Router  *module.Router
	Domain  *Domain
	Spec    *openapi.Spec
	runtime *Runtime
}

// New builds the router and domain systems. Nothing is started until Start.
func New(cfg *config.Config, infra *infrastructure.Infrastructure) (*API, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, err
	}

	handler := domain.Model.Handler(runtime.MaxBodySize)
	rootGroups := handler.Routes()
	metricsGroup := routes.Group{
		Tags: []string{"Metrics"},
		Routes: []routes.Route{
			handler.MetricsRoute(),
			{
				Method:  "GET",
				Pattern: "/prometheus",
				Handler: runtime.Metrics.Handler().ServeHTTP,
				OpenAPI: prometheusOp,
			},
		},
	}

	spec := BuildSpec(cfg, rootGroups, metricsGroup)
	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}

	router := module.NewRouter()
	router.Use(middleware.RequestID())
	router.Use(runtime.Metrics.Middleware())
	router.Use(middleware.Logger(runtime.Logger))
	router.Use(middleware.CORS(&cfg.API.CORS))

	router.Register(rootGroups...)
	router.Mount(module.FromGroups(MetricsPrefix, metricsGroup))
	router.Mount(scalar.NewModule(DocsPrefix, cfg.API.OpenAPI.Title, specBytes))

	return &API{
		Router:  router,
		Domain:  domain,
		Spec:    spec,
		runtime: runtime,
	}, nil
}

// Start registers the model bootstrap with the lifecycle coordinator.
func (a *API) Start() {
	a.Domain.Model.Start(a.runtime.Lifecycle)
}

// BuildSpec documents the root and metrics route groups.
func BuildSpec(cfg *config.Config, rootGroups []routes.Group, metricsGroup routes.Group) *openapi.Spec {
	spec := openapi.New(&cfg.API.OpenAPI, cfg.Version)
	spec.AddServer(cfg.Server.BaseURL())
	spec.Components.AddSchemas(model.Schemas())

	routes.Document(spec, "", rootGroups...)
	routes.Document(spec, MetricsPrefix, metricsGroup)
	return spec
}

var prometheusOp = &openapi.Operation{
	Summary:     "Prometheus metrics",
	Description: "Request, prediction, and model-state metrics in the Prometheus text exposition format.",
	Responses: map[int]*openapi.Response{
		200: {
			Description: "Prometheus exposition",
			Content: map[string]*openapi.MediaType{
				"text/plain": {Schema: &openapi.Schema{Type: "string"}},
			},
		},
	},
}
