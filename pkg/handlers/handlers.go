// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body written for every error response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// RespondJSON writes data as a JSON body with the given status code. data is
// encoded before the status is written, so a value that cannot be encoded
// yields a 500 with a detail body instead of a truncated success.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		json.NewEncoder(&buf).Encode(ErrorResponse{Detail: "encode response: " + err.Error()})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// RespondError logs err and writes it as {"detail": message}. Server errors are
// logged at error level, client errors at warn.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request rejected", "status", status, "error", err)
	}
	RespondJSON(w, status, ErrorResponse{Detail: err.Error()})
}
