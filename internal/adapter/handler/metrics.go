package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "goshop",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"pattern", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "goshop",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"pattern"})

	prometheus.MustRegister(requests, latency)
	return &Metrics{Requests: requests, Latency: latency}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
