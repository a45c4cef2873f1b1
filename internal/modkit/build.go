package modkit

import (
	"net/http"

	phttp "workshopdex/internal/platform/net/http"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Register func(phttp.Router)
}

// Build applies Option funcs in order and returns a plain struct
// later options win for scalar fields, middlewares accumulate
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Register: c.register,
	}
}
