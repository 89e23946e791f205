package openapi

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/apilens/apilens/semantic"
)

// Operations the explorer exposes, in emission order.
var supportedMethods = []string{"GET", "POST", "PUT", "PATCH"}

const hintDepthLimit = 10

// ParseBytes sniffs the document version, converts Swagger 2.0 through the
// v3 model, and adapts it. An unparseable spec has no safe partial result,
// so the underlying cause is wrapped and returned as one error.
func ParseBytes(b []byte) (*ParsedSpec, error) {
	if isSwagger2(b) {
		var v2 openapi2.T
		if err := json.Unmarshal(b, &v2); err != nil {
			return nil, fmt.Errorf("openapi: decode swagger 2.0 document: %w", err)
		}
		doc, err := openapi2conv.ToV3(&v2)
		if err != nil {
			return nil, fmt.Errorf("openapi: convert swagger 2.0 document: %w", err)
		}
		return Parse(doc)
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(b)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return Parse(doc)
}

func isSwagger2(b []byte) bool {
	var probe struct {
		Swagger string `json:"swagger"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return false
	}
	return strings.HasPrefix(probe.Swagger, "2")
}

// Parse adapts an already-loaded (and dereferenced) v3 document.
func Parse(doc *openapi3.T) (*ParsedSpec, error) {
	if doc == nil {
		return nil, fmt.Errorf("openapi: nil document")
	}

	spec := &ParsedSpec{SpecVersion: doc.OpenAPI}
	if doc.Info != nil {
		spec.Title = doc.Info.Title
		spec.Version = doc.Info.Version
	}
	if len(doc.Servers) > 0 && doc.Servers[0] != nil {
		spec.BaseURL = doc.Servers[0].URL
	}

	paths := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		item := doc.Paths[p]
		if item == nil {
			continue
		}
		for _, method := range supportedMethods {
			op := operationFor(item, method)
			if op == nil {
				continue
			}
			spec.Operations = append(spec.Operations, adaptOperation(method, p, item, op))
		}
	}

	if doc.Components != nil {
		spec.SecuritySchemes = adaptSecuritySchemes(doc.Components.SecuritySchemes)
	}
	return spec, nil
}

func operationFor(item *openapi3.PathItem, method string) *openapi3.Operation {
	switch method {
	case "GET":
		return item.Get
	case "POST":
		return item.Post
	case "PUT":
		return item.Put
	case "PATCH":
		return item.Patch
	default:
		return nil
	}
}

func adaptOperation(method, path string, item *openapi3.PathItem, op *openapi3.Operation) Operation {
	out := Operation{
		Method:      method,
		Path:        path,
		OperationID: op.OperationID,
		Summary:     op.Summary,
		Parameters:  mergeParameters(item.Parameters, op.Parameters),
	}

	if op.RequestBody != nil && op.RequestBody.Value != nil {
		out.RequestBody = jsonSchemaOf(op.RequestBody.Value.Content)
	}

	if resp := firstSuccessResponse(op.Responses); resp != nil {
		out.Response = jsonSchemaOf(resp.Content)
		if out.Response != nil {
			out.ResponseHints = ExtractHints(out.Response)
		}
	}
	return out
}

// mergeParameters overlays operation-level parameters on path-level ones;
// the operation wins on a (name, in) collision.
func mergeParameters(pathLevel, opLevel openapi3.Parameters) []Parameter {
	type key struct{ name, in string }
	seen := make(map[key]int)
	var out []Parameter

	add := func(refs openapi3.Parameters) {
		for _, ref := range refs {
			if ref == nil || ref.Value == nil {
				continue
			}
			p := Parameter{Name: ref.Value.Name, In: ref.Value.In, Required: ref.Value.Required}
			k := key{p.Name, p.In}
			if i, ok := seen[k]; ok {
				out[i] = p
				continue
			}
			seen[k] = len(out)
			out = append(out, p)
		}
	}
	add(pathLevel)
	add(opLevel)
	return out
}

func firstSuccessResponse(responses openapi3.Responses) *openapi3.Response {
	codes := make([]string, 0, len(responses))
	for code := range responses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if !strings.HasPrefix(code, "2") {
			continue
		}
		if ref := responses[code]; ref != nil && ref.Value != nil {
			return ref.Value
		}
	}
	return nil
}

func jsonSchemaOf(content openapi3.Content) *openapi3.Schema {
	mt := content.Get("application/json")
	if mt == nil || mt.Schema == nil {
		return nil
	}
	return mt.Schema.Value
}

// ExtractHints walks a response schema and collects declared formats per
// field path. Arrays are transparent: items of "$.users" contribute paths
// like "$.users.email".
func ExtractHints(s *openapi3.Schema) map[string]*semantic.Hints {
	hints := make(map[string]*semantic.Hints)
	collectHints(s, "$", 0, hints)
	if len(hints) == 0 {
		return nil
	}
	return hints
}

func collectHints(s *openapi3.Schema, path string, depth int, hints map[string]*semantic.Hints) {
	if s == nil || depth >= hintDepthLimit {
		return
	}
	if s.Format != "" {
		hints[path] = &semantic.Hints{Format: s.Format}
	}
	if s.Items != nil {
		collectHints(s.Items.Value, path, depth+1, hints)
	}
	for name, ref := range s.Properties {
		if ref == nil {
			continue
		}
		collectHints(ref.Value, path+"."+name, depth+1, hints)
	}
}

func adaptSecuritySchemes(schemes openapi3.SecuritySchemes) []SecurityScheme {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]SecurityScheme, 0, len(names))
	for _, name := range names {
		ref := schemes[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		out = append(out, adaptSecurityScheme(name, ref.Value))
	}
	return out
}

func adaptSecurityScheme(name string, s *openapi3.SecurityScheme) SecurityScheme {
	out := SecurityScheme{Name: name}
	switch s.Type {
	case "apiKey":
		switch s.In {
		case "header":
			out.AuthType = AuthAPIKey
		case "query":
			out.AuthType = AuthQueryParam
		default:
			out.Reason = fmt.Sprintf("apiKey in %q is not supported; only header and query placement work here", s.In)
		}
	case "http":
		switch strings.ToLower(s.Scheme) {
		case "bearer":
			out.AuthType = AuthBearer
		case "basic":
			out.AuthType = AuthBasic
		default:
			out.Reason = fmt.Sprintf("http auth scheme %q is not supported", s.Scheme)
		}
	case "oauth2":
		out.Reason = "oauth2 flows require an interactive grant and are not supported"
	case "openIdConnect":
		out.Reason = "openIdConnect discovery is not supported"
	default:
		out.Reason = fmt.Sprintf("unrecognized security scheme type %q", s.Type)
	}
	return out
}
