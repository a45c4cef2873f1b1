package http

import "net/http"

// GetJSON mounts a pure JSON handler for GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, NoInputHandler(h))
}

// GetQuery mounts a pure JSON handler for GET whose query string binds into T
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Get(path, QueryHandler(h))
}
