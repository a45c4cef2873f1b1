package middleware

import (
	"net/http"
	"strconv"
	"time"

	"workshopdex/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow marks requests taking >= Slow as warn level, 0 disables slow marking
	Slow time.Duration
}

var (
	gatewayRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workshopdex",
		Subsystem: "gateway",
		Name:      "requests_total",
		Help:      "Gateway requests by route pattern and response status.",
	}, []string{"route", "status"})

	gatewayDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "workshopdex",
		Subsystem: "gateway",
		Name:      "request_duration_seconds",
		Help:      "Gateway request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

func init() {
	prometheus.MustRegister(gatewayRequests, gatewayDuration)
}

// captureWriter wraps the original ResponseWriter and records status & bytes
type captureWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	if n > 0 {
		cw.bytes += n
	}
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer
func (cw *captureWriter) Unwrap() http.ResponseWriter { return cw.ResponseWriter }

// routePattern returns the matched chi pattern so metric labels stay bounded
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// AccessLogZerolog logs method, path, route, status, elapsed and bytes written using the
// request scoped logger, and records the gateway request metrics
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(cw, r)

			elapsed := time.Since(start)
			route := routePattern(r)
			gatewayRequests.WithLabelValues(route, strconv.Itoa(cw.status)).Inc()
			gatewayDuration.WithLabelValues(route).Observe(elapsed.Seconds())

			log := logger.C(r.Context())
			evt := log.Info()
			if opt.Slow > 0 && elapsed >= opt.Slow {
				evt = log.Warn()
			}
			evt.Int("status", cw.status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", route).
				Int("bytes", cw.bytes).
				Msg("request done")
		})
	}
}
