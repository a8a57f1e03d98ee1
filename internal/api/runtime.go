package api

import (
	"github.com/JaimeStill/verdict/internal/config"
	"github.com/JaimeStill/verdict/internal/infrastructure"
	"github.com/JaimeStill/verdict/internal/model"
)

// ServiceName identifies the service in the root status response.
const ServiceName = "verdict"

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Service     model.Service
	MaxBodySize int64
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Storage:   infra.Storage,
			Metrics:   infra.Metrics,
			Tenant:    infra.Tenant,
		},
		Service: model.Service{
			Name:    ServiceName,
			Tenant:  cfg.Tenant,
			Version: cfg.Version,
		},
		MaxBodySize: cfg.API.MaxBodySizeBytes(),
	}
}
