package httpkit

import (
	"net/http"

	phttp "workshopdex/internal/platform/net/http"
)

// Get registers a no-input handler under GET and uses the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

// GetQuery registers a handler under GET whose query string binds into T
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.GetQuery(r, path, h)
}
