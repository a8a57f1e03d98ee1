// Package model implements the sentiment model domain: the load-or-train
// bootstrap of the vectorizer/classifier pair, the shared model state, and
// the inference, health, and readiness endpoints that read it.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Class indices produced by the classifier.
const (
	ClassNegative = 0
	ClassPositive = 1
)

// Prediction labels returned to clients.
const (
	LabelNegative = "negative"
	LabelPositive = "positive"
)

// Pair sources reported in logs and inspection output.
const (
	SourceTrained = "trained"
	SourceLoaded  = "loaded"
)

// Service identifies this deployment in status responses.
type Service struct {
	Name    string
	Tenant  string
	Version string
}

// PredictRequest is the body accepted by POST /predict. Text is a pointer so a
// missing field can be told apart from an empty string.
type PredictRequest struct {
	Text *string `json:"text"`
}

// Prediction is the result of classifying a single text.
type Prediction struct {
	Text       string  `json:"text"`
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
	Tenant     string  `json:"tenant"`
}

// RootStatus is the liveness body served at GET /.
type RootStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Tenant  string `json:"tenant"`
	Version string `json:"version"`
}

// ProbeStatus is the body served by the health and readiness probes.
type ProbeStatus struct {
	Status string `json:"status"`
	Tenant string `json:"tenant"`
}

// Metrics reports whether each artifact is loaded.
type Metrics struct {
	Tenant           string `json:"tenant"`
	ModelLoaded      bool   `json:"model_loaded"`
	VectorizerLoaded bool   `json:"vectorizer_loaded"`
}

// Info summarizes a loaded artifact pair.
type Info struct {
	PairID      uuid.UUID          `json:"pair_id"`
	CreatedAt   time.Time          `json:"created_at"`
	Source      string             `json:"source"`
	Vocabulary  int                `json:"vocabulary_size"`
	ClassPriors map[string]float64 `json:"class_priors"`
}

func labelFor(class int) string {
	if class == ClassPositive {
		return LabelPositive
	}
	return LabelNegative
}
