package openapi

import "maps"

func errorContent() map[string]*MediaType {
	return map[string]*MediaType{
		"application/json": {Schema: SchemaRef("Error")},
	}
}

// NewComponents creates Components with the shared error schema and error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:     "object",
				Required: []string{"detail"},
				Properties: map[string]*Schema{
					"detail": {Type: "string", Description: "Human-readable error message"},
				},
			},
		},
		Responses: map[string]*Response{
			"ValidationError": {
				Description: "Request body failed validation",
				Content:     errorContent(),
			},
			"ServiceUnavailable": {
				Description: "Model artifacts are not loaded",
				Content:     errorContent(),
			},
			"InternalError": {
				Description: "Unexpected failure while serving the request",
				Content:     errorContent(),
			},
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
