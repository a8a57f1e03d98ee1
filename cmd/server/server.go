package main

import (
	"log/slog"
	"time"

	"github.com/JaimeStill/verdict/internal/api"
	"github.com/JaimeStill/verdict/internal/config"
	"github.com/JaimeStill/verdict/internal/infrastructure"
)

type Server struct {
	infra *infrastructure.Infrastructure
	api   *api.API
	http  *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	a, err := api.New(cfg, infra)
	if err != nil {
		return nil, err
	}

	infra.Logger.Info(
		"server initialized",
		"tenant", cfg.Tenant,
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
		"storage", infra.Storage.Location(),
	)

	return &Server{
		infra: infra,
		api:   a,
		http:  newHTTPServer(&cfg.Server, a.Router, infra.Logger),
	}, nil
}

func (s *Server) Logger() *slog.Logger {
	return s.infra.Logger
}

// Start begins serving, then blocks until the model bootstrap completes.
// Probes answer 503 while the bootstrap runs.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	s.api.Start()

	if err := s.infra.Lifecycle.WaitForStartup(); err != nil {
		return err
	}

	s.infra.Logger.Info("all subsystems ready")
	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
