package routes

import (
	"net/http"

	"github.com/JaimeStill/verdict/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler.
// OpenAPI is optional; routes without it are omitted from generated documents.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}
