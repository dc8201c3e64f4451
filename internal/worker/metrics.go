package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusRendered = "rendered"
	statusFailed   = "failed"
	statusInvalid  = "invalid"
)

var (
	rendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "render_worker_requests_total",
		Help: "Render requests handled, by outcome",
	}, []string{"status"})

	renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "render_worker_render_duration_seconds",
		Help:    "Time spent rendering a template",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})

	publishRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "render_worker_publish_retries_total",
		Help: "Stream publish attempts retried after a failure",
	})
)
