// Package openapi adapts dereferenced Swagger 2.0 / OpenAPI 3.x documents
// into the flat spec the analysis pipeline consumes.
package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/apilens/apilens/semantic"
)

// Normalized security scheme kinds.
const (
	AuthAPIKey     = "apiKey"
	AuthQueryParam = "queryParam"
	AuthBearer     = "bearer"
	AuthBasic      = "basic"
)

// ParsedSpec is the adapter output: plain data, no behavior.
type ParsedSpec struct {
	Title           string           `json:"title"`
	Version         string           `json:"version"`
	SpecVersion     string           `json:"specVersion"`
	BaseURL         string           `json:"baseUrl"`
	Operations      []Operation      `json:"operations"`
	SecuritySchemes []SecurityScheme `json:"securitySchemes"`
}

// Operation is one callable endpoint. DELETE operations are never adapted;
// the explorer renders data, it does not destroy it.
type Operation struct {
	Method      string      `json:"method"`
	Path        string      `json:"path"`
	OperationID string      `json:"operationId,omitempty"`
	Summary     string      `json:"summary,omitempty"`
	Parameters  []Parameter `json:"parameters,omitempty"`

	RequestBody *openapi3.Schema `json:"requestBody,omitempty"`
	// Response is the schema of the first 2xx response, when declared.
	Response *openapi3.Schema `json:"response,omitempty"`

	// ResponseHints maps field paths of the response schema to their
	// declared formats, ready to feed the semantic detector.
	ResponseHints map[string]*semantic.Hints `json:"responseHints,omitempty"`
}

// Parameter is a merged path-level + operation-level parameter.
type Parameter struct {
	Name     string `json:"name"`
	In       string `json:"in"`
	Required bool   `json:"required"`
}

// SecurityScheme normalizes an OpenAPI scheme. Unsupported schemes keep
// AuthType "" and carry a human-readable Reason instead of being dropped.
type SecurityScheme struct {
	Name     string `json:"name"`
	AuthType string `json:"authType,omitempty"`
	Reason   string `json:"reason,omitempty"`
}
