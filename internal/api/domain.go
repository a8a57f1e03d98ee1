package api

import (
	"fmt"

	"github.com/JaimeStill/verdict/internal/model"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Model model.System
}

// NewDomain creates all domain systems from the API runtime and exposes
// the model state through the metrics registry.
func NewDomain(runtime *Runtime) (*Domain, error) {
	modelSystem := model.New(
		runtime.Storage,
		runtime.Service,
		runtime.Metrics,
		runtime.Lifecycle,
		runtime.Logger,
	)

	state := modelSystem.State()
	if err := runtime.Metrics.RegisterModelState(state.Tenant(), state.Loaded, state.Loaded); err != nil {
		return nil, fmt.Errorf("register model metrics: %w", err)
	}

	return &Domain{
		Model: modelSystem,
	}, nil
}
