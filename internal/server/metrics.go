package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry *prometheus.Registry
	renders  *prometheus.CounterVec
	size     *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: `stencil_renders_total`,
			Help: `Number of documents rendered, by kind.`,
		}, []string{`kind`}),
		size: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    `stencil_render_bytes`,
			Help:    `Size of rendered documents in bytes, by kind.`,
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		}, []string{`kind`}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: `stencil_render_failures_total`,
			Help: `Number of documents that could not be loaded, by kind.`,
		}, []string{`kind`}),
	}
	m.registry.MustRegister(m.renders, m.size, m.failures)
	return m
}

func (m *metrics) rendered(kind string, size int) {
	m.renders.WithLabelValues(kind).Inc()
	m.size.WithLabelValues(kind).Observe(float64(size))
}

func (m *metrics) failed(kind string) {
	m.failures.WithLabelValues(kind).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
