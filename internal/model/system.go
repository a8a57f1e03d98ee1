package model

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/verdict/pkg/lifecycle"
	"github.com/JaimeStill/verdict/pkg/storage"
)

// Recorder receives a count of each successful prediction.
type Recorder interface {
	ObservePrediction(tenant, label string)
}

// System defines the public contract for model domain operations.
type System interface {
	Handler(maxBodySize int64) *Handler

	// Start registers the bootstrap as a lifecycle startup hook.
	Start(lc *lifecycle.Coordinator)
	Bootstrap(ctx context.Context) error
	Predict(ctx context.Context, text string) (*Prediction, error)

	State() *State
	Service() Service
	Ready() bool
}

type system struct {
	store    storage.System
	state    *State
	service  Service
	recorder Recorder
	ready    lifecycle.ReadinessChecker
	logger   *slog.Logger
}

// New creates the model system. The state is empty until Bootstrap succeeds.
// ready gates the readiness probe in addition to the loaded state; recorder
// may be nil.
func New(
	store storage.System,
	service Service,
	recorder Recorder,
	ready lifecycle.ReadinessChecker,
	logger *slog.Logger,
) System {
	return &system{
		store:    store,
		state:    NewState(service.Tenant),
		service:  service,
		recorder: recorder,
		ready:    ready,
		logger:   logger.With("system", "model", "tenant", service.Tenant),
	}
}

func (s *system) Handler(maxBodySize int64) *Handler {
	return NewHandler(s, s.logger, maxBodySize)
}

func (s *system) Start(lc *lifecycle.Coordinator) {
	lc.OnStartup(func() error {
		return s.Bootstrap(lc.Context())
	})
}

func (s *system) Bootstrap(ctx context.Context) error {
	s.logger.Info("starting model bootstrap")

	pair, err := Bootstrap(ctx, s.store, s.logger)
	if err != nil {
		s.logger.Error("model bootstrap failed", "error", err)
		return err
	}

	if err := s.state.set(pair); err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	s.logger.Info(
		"model loaded",
		"pair_id", pair.ID,
		"source", pair.Source,
		"vocabulary", pair.Vectorizer.Features(),
	)
	return nil
}

func (s *system) Predict(ctx context.Context, text string) (result *Prediction, err error) {
	pair := s.state.Pair()
	if pair == nil {
		return nil, ErrNotReady
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrInference, r)
		}
	}()

	label, confidence, err := pair.Predict(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInference, err)
	}

	if s.recorder != nil {
		s.recorder.ObservePrediction(s.service.Tenant, label)
	}
	s.logger.Info("prediction", "label", label, "confidence", confidence)

	return &Prediction{
		Text:       text,
		Prediction: label,
		Confidence: confidence,
		Tenant:     s.service.Tenant,
	}, nil
}

func (s *system) State() *State {
	return s.state
}

func (s *system) Service() Service {
	return s.service
}

// Ready requires both a loaded pair and a completed lifecycle startup.
func (s *system) Ready() bool {
	if !s.state.Loaded() {
		return false
	}
	return s.ready == nil || s.ready.Ready()
}
