// Package net provides utilities for working with request contexts
package net

import (
	"context"

	"workshopdex/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// HeaderRequestID is propagated to the workshop backend so gateway and backend logs line up
const HeaderRequestID = "X-Request-ID"

// WithRequest stores reqID where both chi (chimw.GetReqID) and the logger can find it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	return logger.WithRequest(ctx, reqID, "")
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return logger.RequestID(ctx)
}

// EnsureRequestID returns ctx carrying a request id, minting a uuid when there is none
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id := RequestID(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return WithRequest(ctx, id), id
}
