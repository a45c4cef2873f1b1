package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "workshopdex/internal/platform/errors"
	pnet "workshopdex/internal/platform/net"
	phttp "workshopdex/internal/platform/net/http"
)

// helper to build a request with a request id in context
func reqWithReqID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(pnet.WithRequest(req.Context(), rid))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestJSON_SetsStatusAndContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.JSON(rec, http.StatusTeapot, map[string]any{"k": "v"})
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content-type = %q", ct)
	}
}

func TestRespondOK(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.RespondOK(rec, reqWithReqID("GET", "/x", "rid-1"), map[string]string{"a": "b"})
	env := decodeEnvelope(t, rec)
	if rec.Code != 200 || env.StatusCode != 200 || env.Status != "OK" || env.RequestID != "rid-1" {
		t.Fatalf("bad envelope: %d %+v", rec.Code, env)
	}
	if m, ok := env.Data.(map[string]any); !ok || m["a"] != "b" {
		t.Fatalf("data = %#v", env.Data)
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := perr.WithField(perr.Newf(perr.ErrorCodeValidation, "limit must be at most 100"), "limit")
	phttp.RespondError(rec, reqWithReqID("GET", "/x", "rid-2"), err)

	env := decodeEnvelope(t, rec)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if env.StatusCode != rec.Code || env.Code != perr.ErrorCodeValidation || env.Field != "limit" {
		t.Fatalf("bad envelope: %+v", env)
	}
	if env.Error != "limit must be at most 100" || env.RequestID != "rid-2" || env.Data != nil {
		t.Fatalf("bad envelope: %+v", env)
	}
}

func TestRespondError_PlainErrorIsUnknown(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.RespondError(rec, reqWithReqID("GET", "/x", ""), errors.New("boom"))
	env := decodeEnvelope(t, rec)
	if rec.Code != http.StatusInternalServerError || env.Code != perr.ErrorCodeUnknown || env.Error != "boom" {
		t.Fatalf("bad envelope: %d %+v", rec.Code, env)
	}
}

func TestReturnStyle_Handle(t *testing.T) {
	h := phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.OK([]int{1, 2}).WithHeader("Cache-Control", "no-store")
	})
	rec := httptest.NewRecorder()
	h(rec, reqWithReqID("GET", "/x", "rid-3"))

	env := decodeEnvelope(t, rec)
	if rec.Code != 200 || env.RequestID != "rid-3" {
		t.Fatalf("bad envelope: %d %+v", rec.Code, env)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("header = %q", got)
	}
	if d, ok := env.Data.([]any); !ok || len(d) != 2 {
		t.Fatalf("data = %#v", env.Data)
	}
}

func TestReturnStyle_ZeroStatusDefaultsToOK(t *testing.T) {
	h := phttp.Handle(func(*http.Request) phttp.Response { return phttp.Response{Body: "x"} })
	rec := httptest.NewRecorder()
	h(rec, reqWithReqID("GET", "/x", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestReturnStyle_ErrorDecidesStatus(t *testing.T) {
	h := phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Error(perr.NotFoundf("app %s not found", "440"))
	})
	rec := httptest.NewRecorder()
	h(rec, reqWithReqID("GET", "/x", "rid-4"))

	env := decodeEnvelope(t, rec)
	if rec.Code != http.StatusNotFound || env.Code != perr.ErrorCodeNotFound || env.Error != "app 440 not found" {
		t.Fatalf("bad envelope: %d %+v", rec.Code, env)
	}
}

func TestWithHeader_DoesNotAliasOriginal(t *testing.T) {
	base := phttp.OK(nil).WithHeader("X-A", "1")
	_ = base.WithHeader("X-B", "2")
	if base.Header.Get("X-B") != "" {
		t.Fatalf("WithHeader mutated the receiver's header map")
	}
}
