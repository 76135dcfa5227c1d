package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	renders  *prometheus.CounterVec
	errors   prometheus.Counter
	duration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		renders: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "weave_renders_total",
			Help: "Completed render requests, by encoder.",
		}, []string{"encoder"}),
		errors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "weave_render_errors_total",
			Help: "Render requests rejected due to invalid documents or parameters.",
		}),
		duration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "weave_render_duration_seconds",
			Help:    "Wall-clock time spent parsing, building, and rendering a document.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
