// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	modkit "workshopdex/internal/modkit"
	"workshopdex/internal/modkit/httpkit"
	str "workshopdex/internal/platform/strings"

	metahttp "workshopdex/internal/services/api/meta/http"
)

// ServiceName is reported by /meta endpoints
const ServiceName = "workshopdex-api"

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	register func(httpkit.Router)

	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	started := deps.StartedAt
	if started.IsZero() {
		started = time.Now()
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		startedAt: started,
	}

	var backend metahttp.Pinger
	if deps.Workshop != nil {
		backend = deps.Workshop
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   m.startedAt,
			Backend:     backend,
		})
		if external != nil {
			external(r)
		}
	}

	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(str.MustPrefix(m.prefix), func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }
