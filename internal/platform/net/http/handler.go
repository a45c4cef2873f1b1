package http

import (
	"net/http"

	"workshopdex/internal/platform/net/http/bind"
)

// QueryHandler binds and validates the URL query into T before calling fn
func QueryHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseQuery[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return asResponse(out)
	})
}

// NoInputHandler calls fn without binding anything and wraps the result
func NoInputHandler(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		return asResponse(out)
	})
}

// asResponse passes a handler-built Response through untouched and wraps anything else as 200
func asResponse(out any) Response {
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
