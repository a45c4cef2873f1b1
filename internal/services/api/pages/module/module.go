// Package module wires page loads into the API using modkit
package module

import (
	"net/http"

	modkit "workshopdex/internal/modkit"
	"workshopdex/internal/modkit/httpkit"
	str "workshopdex/internal/platform/strings"

	"workshopdex/internal/services/api/pages/domain"
	pageshttp "workshopdex/internal/services/api/pages/http"
	pagessvc "workshopdex/internal/services/api/pages/service"
)

// Module implements the pages module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)

	svc pagessvc.Service
}

// New constructs the pages module over deps.Workshop
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	if deps.Workshop == nil {
		panic("pages module requires a workshop client")
	}
	return NewWithBackend(deps, deps.Workshop, opts...)
}

// NewWithBackend constructs the pages module over any backend, mostly for tests
func NewWithBackend(deps modkit.Deps, backend domain.Backend, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("pages"),
		modkit.WithPrefix("/pages"),
	}, opts...)...)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    pagessvc.New(backend),
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		pageshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the page routes under the module prefix and the query preview beside them
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(str.MustPrefix(m.prefix), func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
	r.Group(func(gr httpkit.Router) {
		for _, mw := range m.mws {
			gr.Use(mw)
		}
		pageshttp.RegisterQuery(gr, m.svc)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "pages") }

// Service exposes the page loaders for in-process callers
func (m *Module) Service() pagessvc.Service { return m.svc }
