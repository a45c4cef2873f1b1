package testkit

import (
	"io"
	"net/http"
	"testing"
)

func TestMustPanic(t *testing.T) {
	t.Parallel()
	MustPanic(t, func() { panic("boom") })
}

func TestMustNotPanic(t *testing.T) {
	t.Parallel()
	MustNotPanic(t, func() {})
}

func TestMustContain(t *testing.T) {
	t.Parallel()
	MustContain(t, "alpha beta gamma", "beta")
}

func TestBackend_RoutesAndHits(t *testing.T) {
	b := NewBackend(t, map[string]http.HandlerFunc{
		"/api/list": JSON(http.StatusOK, `{"items":[]}`),
	})

	resp, err := http.Get(b.URL + "/api/list?title=foo")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != `{"items":[]}` {
		t.Fatalf("unexpected response %d %q", resp.StatusCode, body)
	}

	resp, err = http.Get(b.URL + "/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown route status = %d", resp.StatusCode)
	}

	if n := len(b.Hits()); n != 2 {
		t.Fatalf("hits = %d, want 2", n)
	}
	if q := b.RawQuery("/api/list"); q != "title=foo" {
		t.Fatalf("RawQuery = %q", q)
	}
	if q := b.RawQuery("/api/item/1"); q != "" {
		t.Fatalf("RawQuery for unseen path = %q", q)
	}
}

func TestBackend_Hijack(t *testing.T) {
	b := NewBackend(t, map[string]http.HandlerFunc{"/drop": Hijack()})
	resp, err := http.Get(b.URL + "/drop")
	if err == nil {
		_ = resp.Body.Close()
		t.Fatalf("expected transport error from hijacked connection")
	}
}

var clock = func() string { return "real" }

func TestSwap_Restores(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Serial(t)
		Swap(t, &clock, func() string { return "fake" })
		if got := clock(); got != "fake" {
			t.Fatalf("swap did not take effect, got %q", got)
		}
	})
	if got := clock(); got != "real" {
		t.Fatalf("swap did not restore, got %q", got)
	}
}
