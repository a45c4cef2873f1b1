package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "workshopdex/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func serve(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestAdaptChi_RootGroupRouteAndMux(t *testing.T) {
	m := chi.NewRouter()
	r := phttp.AdaptChi(m)

	var order []string
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			order = append(order, "root-mw")
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })
	r.Head("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	r.Group(func(g phttp.Router) {
		g.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, "group-mw")
				next.ServeHTTP(w, req)
			})
		})
		g.Get("/grouped", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "g") })
	})

	r.Route("/apps", func(sub phttp.Router) {
		sub.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			_, _ = io.WriteString(w, phttp.URLParam(req, "id"))
		})
		sub.Route("/{id}/nested", func(n phttp.Router) {
			n.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, "nested")
			}))
		})
	})

	if rec := serve(t, r.Mux(), "GET", "/ping"); rec.Body.String() != "pong" {
		t.Fatalf("GET /ping = %d %q", rec.Code, rec.Body.String())
	}
	if rec := serve(t, r.Mux(), "HEAD", "/ping"); rec.Code != http.StatusNoContent {
		t.Fatalf("HEAD /ping = %d", rec.Code)
	}
	if rec := serve(t, r.Mux(), "POST", "/ping"); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /ping = %d, want 405", rec.Code)
	}

	order = nil
	if rec := serve(t, r.Mux(), "GET", "/grouped"); rec.Body.String() != "g" {
		t.Fatalf("GET /grouped = %q", rec.Body.String())
	}
	if len(order) != 2 || order[0] != "root-mw" || order[1] != "group-mw" {
		t.Fatalf("middleware order = %v", order)
	}

	if rec := serve(t, r.Mux(), "GET", "/apps/440"); rec.Body.String() != "440" {
		t.Fatalf("GET /apps/440 = %q", rec.Body.String())
	}
	if rec := serve(t, r.Mux(), "GET", "/apps/440/nested/"); rec.Body.String() != "nested" {
		t.Fatalf("nested = %d %q", rec.Code, rec.Body.String())
	}
}

func TestAdaptChi_SubRouterMuxServes(t *testing.T) {
	m := chi.NewRouter()
	var sub phttp.Router
	phttp.AdaptChi(m).Route("/v1", func(r phttp.Router) {
		sub = r
		r.Get("/x", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "x") })
	})
	if sub.Mux() == nil {
		t.Fatalf("sub router mux is nil")
	}
	if rec := serve(t, m, "GET", "/v1/x"); rec.Body.String() != "x" {
		t.Fatalf("GET /v1/x = %q", rec.Body.String())
	}
}
