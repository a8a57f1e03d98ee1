package model

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/verdict/pkg/handlers"
	"github.com/JaimeStill/verdict/pkg/routes"
)

// Handler provides HTTP endpoints for the status probes and inference.
type Handler struct {
	sys         System
	logger      *slog.Logger
	maxBodySize int64
}

// NewHandler creates a Handler with the given system, logger, and request body
// limit. A zero limit accepts bodies of any size.
func NewHandler(sys System, logger *slog.Logger, maxBodySize int64) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "model"),
		maxBodySize: maxBodySize,
	}
}

// Routes returns the status and inference route groups served at the root.
func (h *Handler) Routes() []routes.Group {
	return []routes.Group{
		{
			Tags: []string{"Status"},
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/{$}", Handler: h.Root, OpenAPI: rootOp},
				{Method: "GET", Pattern: "/health", Handler: h.Health, OpenAPI: healthOp},
				{Method: "GET", Pattern: "/ready", Handler: h.Ready, OpenAPI: readyOp},
			},
		},
		{
			Tags: []string{"Inference"},
			Routes: []routes.Route{
				{Method: "POST", Pattern: "/predict", Handler: h.Predict, OpenAPI: predictOp},
			},
		},
	}
}

// MetricsRoute returns the JSON artifact-state route, mounted by the metrics module.
func (h *Handler) MetricsRoute() routes.Route {
	return routes.Route{Method: "GET", Pattern: "/{$}", Handler: h.Metrics, OpenAPI: metricsOp}
}

// Root always reports healthy while the process is serving.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	svc := h.sys.Service()
	handlers.RespondJSON(w, http.StatusOK, RootStatus{
		Status:  "healthy",
		Service: svc.Name,
		Tenant:  svc.Tenant,
		Version: svc.Version,
	})
}

// Health reports healthy once the artifact pair is loaded.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	state := h.sys.State()
	if !state.Loaded() {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrNotLoaded), ErrNotLoaded)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, ProbeStatus{Status: "healthy", Tenant: state.Tenant()})
}

// Ready reports ready once the pair is loaded and startup has completed.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.sys.Ready() {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrNotReady), ErrNotReady)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, ProbeStatus{Status: "ready", Tenant: h.sys.State().Tenant()})
}

// Predict classifies the text in the request body. The body is only capped
// when a positive max body size is configured.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, MapHTTPStatus(ErrBodyTooLarge), ErrBodyTooLarge)
			return
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrInvalidRequest), ErrInvalidRequest)
		return
	}
	if req.Text == nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrInvalidRequest), ErrInvalidRequest)
		return
	}

	result, err := h.sys.Predict(r.Context(), *req.Text)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Metrics reports whether each artifact is loaded.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	state := h.sys.State()
	pair := state.Pair()
	handlers.RespondJSON(w, http.StatusOK, Metrics{
		Tenant:           state.Tenant(),
		ModelLoaded:      pair != nil && pair.Classifier != nil,
		VectorizerLoaded: pair != nil && pair.Vectorizer != nil,
	})
}
