package testkit

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Backend is a scripted stand-in for the workshop API. Routes match on the exact URL path;
// anything else answers 404 with a plain text body
type Backend struct {
	*httptest.Server

	mu   sync.Mutex
	hits []*http.Request
}

// NewBackend starts a Backend that is closed when the test ends
func NewBackend(t *testing.T, routes map[string]http.HandlerFunc) *Backend {
	t.Helper()
	b := &Backend{}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits = append(b.hits, r.Clone(r.Context()))
		b.mu.Unlock()

		if h, ok := routes[r.URL.Path]; ok {
			h(w, r)
			return
		}
		Text(http.StatusNotFound, "no route for "+r.URL.Path)(w, r)
	}))
	t.Cleanup(b.Close)
	return b
}

// Hits returns the requests seen so far in arrival order
func (b *Backend) Hits() []*http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*http.Request(nil), b.hits...)
}

// RawQuery returns the raw query of the last request to path, or "" when there was none
func (b *Backend) RawQuery(path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.hits) - 1; i >= 0; i-- {
		if b.hits[i].URL.Path == path {
			return b.hits[i].URL.RawQuery
		}
	}
	return ""
}

// JSON answers with status and a JSON body
func JSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// Text answers with status and a plain text body
func Text(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// Gate holds a handler until release is closed or the client goes away, then runs next
func Gate(release <-chan struct{}, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
			next(w, r)
		case <-r.Context().Done():
		}
	}
}

// Hijack drops the connection without writing a response, which the client sees as a
// transport failure
func Hijack() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		conn, _, err := hj.Hijack()
		if err == nil {
			_ = conn.Close()
		}
	}
}
