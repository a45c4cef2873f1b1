package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"workshopdex/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// CORSOrigins lists allowed browser origins, empty allows none
	CORSOrigins []string
	// CORSMaxAge is how long browsers may cache a preflight, in seconds
	CORSMaxAge int
	// Timeout bounds each request, 0 means 30s
	Timeout time.Duration
	// Slow marks access log lines at warn when a request takes at least this long
	Slow time.Duration
}

// CommonStack returns the baseline middleware slice for the gateway
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RealIP(),
		middleware.RequestID(),
		middleware.RequestContext(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins, MaxAge: o.CORSMaxAge}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(timeout),
	}
}
