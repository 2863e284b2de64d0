package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the web server metrics and the prometheus registry they live in.
type Registry struct {
	reg *prometheus.Registry

	Requests        *prometheus.CounterVec
	HandlerFailures *prometheus.CounterVec
	SpaFallbacks    prometheus.Counter
	Extractions     *prometheus.CounterVec
	Running         prometheus.Gauge
}

// New creates a Registry backed by a fresh prometheus registry, so several
// servers in one process (tests) never collide on metric names.
func New() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	r := &Registry{reg: reg}

	r.Requests = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "webserver_requests_total",
		Help: "Requests handled, by mount and status class",
	}, []string{"mount", "class"})

	r.HandlerFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "webserver_handler_failures_total",
		Help: "Failures raised by API namespace handlers, by error kind",
	}, []string{"kind"})

	r.SpaFallbacks = factory.NewCounter(prometheus.CounterOpts{
		Name: "webserver_spa_fallbacks_total",
		Help: "Requests answered with the cached index document",
	})

	r.Extractions = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "webserver_bundle_materializations_total",
		Help: "Bundle materializations, by result (hit, miss)",
	}, []string{"result"})

	r.Running = factory.NewGauge(prometheus.GaugeOpts{
		Name: "webserver_running",
		Help: "1 while the listener is accepting connections",
	})

	return r
}

// Gatherer exposes the underlying registry for the /metrics handler.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
