package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	started       *prometheus.CounterVec
	submitted     prometheus.Counter
	autoSubmitted prometheus.Counter
	saved         prometheus.Counter
	resumed       prometheus.Counter
	active        prometheus.Gauge
	requests      *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		started: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "certprep",
			Name:      "sessions_started_total",
			Help:      "Exam sessions started, by mode.",
		}, []string{"mode"}),
		submitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "certprep",
			Name:      "sessions_submitted_total",
			Help:      "Exam sessions submitted by the candidate.",
		}),
		autoSubmitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "certprep",
			Name:      "sessions_auto_submitted_total",
			Help:      "Timed exam sessions submitted when the countdown ran out.",
		}),
		saved: f.NewCounter(prometheus.CounterOpts{
			Namespace: "certprep",
			Name:      "sessions_saved_total",
			Help:      "Exam sessions saved for later.",
		}),
		resumed: f.NewCounter(prometheus.CounterOpts{
			Namespace: "certprep",
			Name:      "sessions_resumed_total",
			Help:      "Saved exam sessions resumed.",
		}),
		active: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "certprep",
			Name:      "sessions_active",
			Help:      "Exam sessions currently open in memory.",
		}),
		requests: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "certprep",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}
