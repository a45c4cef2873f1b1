package modkit

import (
	phttp "workshopdex/internal/platform/net/http"
)

// Module is the common surface for API modules that mount routes
// keep this tiny so modules stay decoupled
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r phttp.Router)
	// Name returns the module name
	Name() string
}

// Builder constructs a Module from shared deps and options
// modules typically expose New(deps Deps, opts ...Option) Module
type Builder func(Deps, ...Option) Module
