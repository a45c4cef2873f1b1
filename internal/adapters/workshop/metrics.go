package workshop

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// request outcomes
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure" // the backend answered with a non-2xx status
	outcomeError   = "error"   // transport or decode problem
)

var (
	metricRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workshopdex",
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Workshop backend requests by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	metricDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "workshopdex",
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Workshop backend round trip time until response headers.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
)

func init() {
	prometheus.MustRegister(metricRequests, metricDuration)
}

func countRequest(endpoint, outcome string) {
	metricRequests.WithLabelValues(endpoint, outcome).Inc()
}

func observeLatency(endpoint string, d time.Duration) {
	metricDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}
