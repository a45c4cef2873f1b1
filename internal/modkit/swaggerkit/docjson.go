package swaggerkit

import (
	"encoding/json"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"workshopdex/internal/platform/config"
	perr "workshopdex/internal/platform/errors"

	docs "workshopdex/internal/services/api/docs"
)

const (
	envelopeRef = "#/components/schemas/Envelope"
	errorRef    = "#/components/schemas/ErrorResponse"
	jsonType    = "application/json"
)

// Mutator adjusts the decoded OpenAPI document before it is served
type Mutator func(doc map[string]any)

var mutators []Mutator

// docReader is a seam so tests can inject invalid JSON without patching swag
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// titleSuffix reads GATEWAY_DOCS_TITLE_SUFFIX, a seam for tests
var titleSuffix = func() string {
	return config.New().Prefix("GATEWAY_").MayString("DOCS_TITLE_SUFFIX", "")
}

// Register adds a document mutator. Modules call it from init
func Register(m Mutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// serveDocJSON serves the registered document with the runtime envelope applied
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]any
		if err := json.Unmarshal([]byte(docReader()), &doc); err != nil {
			http.Error(w, "openapi document parse error", http.StatusInternalServerError)
			return
		}

		normalizeVersion(doc, "/api/v1")
		retitle(doc, titleSuffix())
		ensureEnvelopeSchemas(doc)

		EachOperation(doc, func(_, _ string, op map[string]any) {
			resps := responses(op)
			for status, resp := range resps {
				if strings.HasPrefix(status, "2") {
					wrapData(resp)
				}
			}
			setDefault(resps, http.StatusBadRequest, perr.ErrorCodeValidation,
				"order_by must be one of [Alphabetical LastUpdated Score Dependents]", "order_by")
			setDefault(resps, http.StatusInternalServerError, perr.ErrorCodePanic, "internal error", "")
		})

		for _, m := range mutators {
			m(doc)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

// EachOperation calls fn for every operation in doc, paths and methods in sorted order
func EachOperation(doc map[string]any, fn func(path, method string, op map[string]any)) {
	paths, _ := doc["paths"].(map[string]any)
	for _, p := range slices.Sorted(maps.Keys(paths)) {
		node, _ := paths[p].(map[string]any)
		for _, method := range slices.Sorted(maps.Keys(node)) {
			if op, ok := node[method].(map[string]any); ok {
				fn(p, method, op)
			}
		}
	}
}

// Operation returns the operation for path and lower case method
func Operation(doc map[string]any, path, method string) (map[string]any, bool) {
	paths, _ := doc["paths"].(map[string]any)
	node, _ := paths[path].(map[string]any)
	op, ok := node[method].(map[string]any)
	return op, ok
}

// AddExample attaches a named JSON example to op's response for status
func AddExample(op map[string]any, status, name, summary string, value any) {
	resp, ok := responses(op)[status].(map[string]any)
	if !ok {
		return
	}
	media := child(child(resp, "content"), jsonType)
	child(media, "examples")[name] = map[string]any{"summary": summary, "value": value}
}

// normalizeVersion pins the document to OAS 3.0.3, which the swagger ui renders, and makes
// sure there is a server entry for the API base
func normalizeVersion(doc map[string]any, base string) {
	delete(doc, "swagger")
	doc["openapi"] = "3.0.3"
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{map[string]any{"url": base}}
	}
}

func retitle(doc map[string]any, suffix string) {
	if suffix == "" {
		return
	}
	info := child(doc, "info")
	if title, ok := info["title"].(string); ok {
		info["title"] = title + " " + suffix
	}
}

// ensureEnvelopeSchemas describes the envelope every gateway response is wrapped in
func ensureEnvelopeSchemas(doc map[string]any) {
	schemas := child(child(doc, "components"), "schemas")
	props := map[string]any{
		"status_code": map[string]any{"type": "integer", "example": 200},
		"status":      map[string]any{"type": "string", "example": "OK"},
		"request_id":  map[string]any{"type": "string"},
	}
	if _, ok := schemas["Envelope"]; !ok {
		env := maps.Clone(props)
		env["data"] = map[string]any{}
		schemas["Envelope"] = map[string]any{
			"type":       "object",
			"properties": env,
			"required":   []any{"status_code", "status"},
		}
	}
	if _, ok := schemas["ErrorResponse"]; !ok {
		e := maps.Clone(props)
		e["code"] = map[string]any{"type": "integer", "description": "gateway error code"}
		e["error"] = map[string]any{"type": "string"}
		e["field"] = map[string]any{"type": "string", "description": "offending input, when there is one"}
		schemas["ErrorResponse"] = map[string]any{
			"type":       "object",
			"properties": e,
			"required":   []any{"status_code", "status", "code", "error"},
		}
	}
}

// wrapData turns a success schema into the envelope with the schema as its data
func wrapData(resp any) {
	r, ok := resp.(map[string]any)
	if !ok {
		return
	}
	content, _ := r["content"].(map[string]any)
	media, _ := content[jsonType].(map[string]any)
	schema, ok := media["schema"]
	if !ok {
		return
	}
	media["schema"] = map[string]any{
		"allOf": []any{
			map[string]any{"$ref": envelopeRef},
			map[string]any{"type": "object", "properties": map[string]any{"data": schema}},
		},
	}
}

// setDefault adds an error response for status unless the operation documents its own
func setDefault(resps map[string]any, status int, code perr.ErrorCode, msg, field string) {
	key := strconv.Itoa(status)
	if _, exists := resps[key]; exists {
		return
	}
	example := map[string]any{
		"status_code": status,
		"status":      http.StatusText(status),
		"code":        int(code),
		"error":       msg,
		"request_id":  "gw-7c1e/abc-000001",
	}
	if field != "" {
		example["field"] = field
	}
	resps[key] = map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			jsonType: map[string]any{
				"schema":  map[string]any{"$ref": errorRef},
				"example": example,
			},
		},
	}
}

func responses(op map[string]any) map[string]any { return child(op, "responses") }

// child returns m[key] as an object, creating it when missing
func child(m map[string]any, key string) map[string]any {
	if c, ok := m[key].(map[string]any); ok {
		return c
	}
	c := map[string]any{}
	m[key] = c
	return c
}
