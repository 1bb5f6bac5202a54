package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/strictenc/strictenc/opcode"
)

// Metrics holds encoder service metrics for direct instrumentation in the
// API layer. Cache counters are read from the classification cache itself.
type Metrics struct {
	EncodeRequests *prometheus.CounterVec
	EncodeFailures *prometheus.CounterVec
	EncodeDuration prometheus.Histogram

	registry *prometheus.Registry
}

// New creates and registers encoder metrics with the given registry. The
// cache's hit/miss/size counters are exported as collector functions so the
// cache needs no prometheus dependency of its own.
func New(reg *prometheus.Registry, namespace string, cache *opcode.Cache) *Metrics {
	m := &Metrics{
		EncodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "encoder",
			Name:      "requests_total",
			Help:      "Total encode requests by operation.",
		}, []string{"op"}),
		EncodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "encoder",
			Name:      "failures_total",
			Help:      "Failed encode requests by error code.",
		}, []string{"code"}),
		EncodeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "encoder",
			Name:      "duration_seconds",
			Help:      "Duration of encode requests.",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
		registry: reg,
	}

	cacheHits := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Classification cache hits.",
	}, func() float64 { return float64(cache.Stats().Hits) })
	cacheMisses := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Classification cache misses.",
	}, func() float64 { return float64(cache.Stats().Misses) })
	cacheEntries := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "entries",
		Help:      "Cached instruction classifications.",
	}, func() float64 { return float64(cache.Len()) })

	reg.MustRegister(
		m.EncodeRequests,
		m.EncodeFailures,
		m.EncodeDuration,
		cacheHits,
		cacheMisses,
		cacheEntries,
	)

	return m
}

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
