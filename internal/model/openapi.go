package model

import "github.com/JaimeStill/verdict/pkg/openapi"

// Schemas returns the component schemas referenced by the model operations.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"PredictRequest": {
			Type:     "object",
			Required: []string{"text"},
			Properties: map[string]*openapi.Schema{
				"text": {Type: "string", Description: "Text to classify; may be empty", Example: "I love this product"},
			},
		},
		"Prediction": {
			Type:     "object",
			Required: []string{"text", "prediction", "confidence", "tenant"},
			Properties: map[string]*openapi.Schema{
				"text":       {Type: "string"},
				"prediction": {Type: "string", Enum: []any{LabelPositive, LabelNegative}},
				"confidence": {Type: "number", Format: "double", Minimum: ptr(0.5), Maximum: ptr(1.0)},
				"tenant":     {Type: "string"},
			},
		},
		"RootStatus": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"status":  {Type: "string", Example: "healthy"},
				"service": {Type: "string"},
				"tenant":  {Type: "string"},
				"version": {Type: "string"},
			},
		},
		"ProbeStatus": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"status": {Type: "string", Enum: []any{"healthy", "ready"}},
				"tenant": {Type: "string"},
			},
		},
		"Metrics": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"tenant":            {Type: "string"},
				"model_loaded":      {Type: "boolean"},
				"vectorizer_loaded": {Type: "boolean"},
			},
		},
	}
}

func ptr(v float64) *float64 { return &v }

var rootOp = &openapi.Operation{
	Summary: "Service liveness",
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Service is running", "RootStatus"),
	},
}

var healthOp = &openapi.Operation{
	Summary:     "Health probe",
	Description: "Succeeds once the model artifacts are loaded.",
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Model loaded", "ProbeStatus"),
		503: openapi.ResponseRef("ServiceUnavailable"),
	},
}

var readyOp = &openapi.Operation{
	Summary:     "Readiness probe",
	Description: "Succeeds once the model artifacts are loaded and startup has completed.",
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Ready for traffic", "ProbeStatus"),
		503: openapi.ResponseRef("ServiceUnavailable"),
	},
}

var predictOp = &openapi.Operation{
	Summary:     "Classify text sentiment",
	RequestBody: openapi.RequestBodyJSON("PredictRequest", true),
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Sentiment prediction", "Prediction"),
		413: openapi.ResponseRef("ValidationError"),
		422: openapi.ResponseRef("ValidationError"),
		500: openapi.ResponseRef("InternalError"),
		503: openapi.ResponseRef("ServiceUnavailable"),
	},
}

var metricsOp = &openapi.Operation{
	Summary: "Artifact load state",
	Tags:    []string{"Metrics"},
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Artifact load flags", "Metrics"),
	},
}
