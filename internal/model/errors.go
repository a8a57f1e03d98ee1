package model

import (
	"errors"
	"net/http"
)

// Domain errors for model operations.
var (
	ErrLoad           = errors.New("failed to load model artifacts")
	ErrPersist        = errors.New("failed to persist model artifacts")
	ErrNotLoaded      = errors.New("model not loaded")
	ErrNotReady       = errors.New("model not ready")
	ErrInference      = errors.New("prediction failed")
	ErrInvalidRequest = errors.New("request body must be a JSON object with a string \"text\" field")
	ErrBodyTooLarge   = errors.New("request body too large")
)

// MapHTTPStatus maps model domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotLoaded) || errors.Is(err, ErrNotReady) {
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
