// Package infrastructure assembles the shared systems every domain package
// depends on: lifecycle coordination, logging, artifact storage, and metrics.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/verdict/internal/config"
	"github.com/JaimeStill/verdict/pkg/lifecycle"
	"github.com/JaimeStill/verdict/pkg/logging"
	"github.com/JaimeStill/verdict/pkg/metrics"
	"github.com/JaimeStill/verdict/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Storage   storage.System
	Metrics   metrics.System
	Tenant    string
}

// New creates an Infrastructure logging to stderr.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates an Infrastructure whose logger writes to w.
// Systems are constructed but not started; domain systems register their
// startup hooks with Lifecycle.
func NewWithWriter(cfg *config.Config, w io.Writer) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging, w)

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Storage:   store,
		Metrics:   metrics.New(),
		Tenant:    cfg.Tenant,
	}, nil
}
