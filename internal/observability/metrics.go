package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	workerInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "layoutctl",
			Subsystem: "worker",
			Name:      "invocations_total",
			Help:      "Total worker invocations by task and outcome.",
		},
		[]string{"task", "outcome"},
	)
	workerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "layoutctl",
			Subsystem: "worker",
			Name:      "invocation_duration_seconds",
			Help:      "Worker invocation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"task"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "layoutctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "layoutctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(workerInvocations, workerDuration, httpRequests, httpDuration)
	})
}

func RecordWorkerInvocation(task, outcome string, duration time.Duration) {
	workerInvocations.WithLabelValues(task, outcome).Inc()
	workerDuration.WithLabelValues(task).Observe(duration.Seconds())
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, code).Inc()
	httpDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}
