// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "workshopdex/internal/platform/net/http"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// URLParam returns a path parameter captured by the router
func URLParam(r *http.Request, key string) string { return phttp.URLParam(r, key) }

// Call adapts a handler that binds nothing
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.NoInputHandler(fn)
}

// Query adapts a handler whose query string binds into T
func Query[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.QueryHandler(fn)
}

// Handle lets you directly adapt a Response-returning function if you prefer
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}
