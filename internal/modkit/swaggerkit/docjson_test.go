package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	kit "workshopdex/internal/platform/testkit"
)

func serve(t *testing.T) (int, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	serveDocJSON()(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	var doc map[string]any
	if rr.Code == http.StatusOK {
		if err := json.Unmarshal(rr.Body.Bytes(), &doc); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return rr.Code, doc
}

func obj(t *testing.T, v any, keys ...string) map[string]any {
	t.Helper()
	for _, k := range keys {
		m, ok := v.(map[string]any)
		if !ok {
			t.Fatalf("no object at %q", k)
		}
		v = m[k]
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("not an object: %v", v)
	}
	return m
}

const tinyDoc = `{"swagger":"2.0","info":{"title":"gw"},"paths":{
	"/x":{"get":{"responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"type":"string"}}}}}}},
	"/y":{"get":{"responses":{"200":{"description":"OK"},"400":{"description":"mine"}}}}}}`

func TestServeDocJSON_Decorates(t *testing.T) {
	kit.Swap(t, &docReader, func() string { return tinyDoc })
	kit.Swap(t, &titleSuffix, func() string { return "(staging)" })
	kit.Swap(t, &mutators, nil)

	code, doc := serve(t)
	if code != http.StatusOK {
		t.Fatalf("code = %d", code)
	}
	if doc["openapi"] != "3.0.3" || doc["swagger"] != nil {
		t.Fatalf("version not pinned: %v", doc)
	}
	if title := obj(t, doc, "info")["title"]; title != "gw (staging)" {
		t.Fatalf("title = %v", title)
	}

	x := obj(t, doc, "paths", "/x", "get", "responses")
	for _, k := range []string{"200", "400", "500"} {
		if _, ok := x[k]; !ok {
			t.Fatalf("missing %s response: %v", k, x)
		}
	}
	schema := obj(t, x, "200", "content", "application/json", "schema")
	all, _ := schema["allOf"].([]any)
	if len(all) != 2 || obj(t, all[0])["$ref"] != envelopeRef {
		t.Fatalf("success schema not wrapped in the envelope: %v", schema)
	}
	if obj(t, all[1], "properties", "data")["type"] != "string" {
		t.Fatalf("data schema lost: %v", all[1])
	}

	bad := obj(t, x, "400", "content", "application/json", "example")
	if bad["code"] != float64(7) || bad["field"] != "order_by" {
		t.Fatalf("400 example = %v", bad)
	}

	if d := obj(t, doc, "paths", "/y", "get", "responses", "400")["description"]; d != "mine" {
		t.Fatalf("documented 400 overwritten: %v", d)
	}

	schemas := obj(t, doc, "components", "schemas")
	for _, k := range []string{"Envelope", "ErrorResponse"} {
		if _, ok := schemas[k]; !ok {
			t.Fatalf("%s schema not injected", k)
		}
	}
}

func TestServeDocJSON_Mutators(t *testing.T) {
	kit.Swap(t, &docReader, func() string { return tinyDoc })
	kit.Swap(t, &titleSuffix, func() string { return "" })
	kit.Swap(t, &mutators, nil)

	Register(nil)
	Register(func(doc map[string]any) {
		if op, ok := Operation(doc, "/x", "get"); ok {
			AddExample(op, "200", "hello", "greeting", "hi")
			AddExample(op, "201", "skipped", "no such response", "x")
		}
	})

	_, doc := serve(t)
	if len(mutators) != 1 {
		t.Fatalf("nil mutator must be ignored, have %d", len(mutators))
	}
	resps := obj(t, doc, "paths", "/x", "get", "responses")
	ex := obj(t, resps, "200", "content", "application/json", "examples", "hello")
	if ex["value"] != "hi" || ex["summary"] != "greeting" {
		t.Fatalf("example = %v", ex)
	}
	if _, ok := resps["201"]; ok {
		t.Fatal("AddExample must not invent responses")
	}
}

func TestEachOperation_SortedOrder(t *testing.T) {
	var doc map[string]any
	_ = json.Unmarshal([]byte(`{"paths":{"/b":{"get":{}},"/a":{"post":{},"get":{}},"/c":"junk"}}`), &doc)
	var got []string
	EachOperation(doc, func(path, method string, _ map[string]any) { got = append(got, method+" "+path) })
	want := []string{"get /a", "post /a", "get /b"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if _, ok := Operation(doc, "/missing", "get"); ok {
		t.Fatal("unexpected operation")
	}
}

func TestServeDocJSON_BadDoc(t *testing.T) {
	kit.Swap(t, &docReader, func() string { return "{" })
	if code, _ := serve(t); code != http.StatusInternalServerError {
		t.Fatalf("code = %d", code)
	}
}

func TestServeDocJSON_RegisteredDocParses(t *testing.T) {
	code, doc := serve(t)
	if code != http.StatusOK {
		t.Fatalf("code = %d", code)
	}
	servers, _ := doc["servers"].([]any)
	if len(servers) != 1 {
		t.Fatalf("servers = %v", doc["servers"])
	}
}
