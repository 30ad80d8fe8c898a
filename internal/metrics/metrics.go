package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eduflow"

// Metrics holds the dashboard's collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	remoteCalls   *prometheus.CounterVec
	authExchanges *prometheus.CounterVec
	renders       *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		remoteCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_calls_total",
			Help:      "Calls to the remote classroom API by operation and outcome.",
		}, []string{"op", "outcome"}),
		authExchanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_exchanges_total",
			Help:      "Authorization code exchanges by outcome.",
		}, []string{"outcome"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_renders_total",
			Help:      "Rendered pages by name.",
		}, []string{"page"}),
	}
	reg.MustRegister(
		m.remoteCalls,
		m.authExchanges,
		m.renders,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) RemoteCall(op, outcome string) {
	if m == nil {
		return
	}
	m.remoteCalls.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) AuthExchange(outcome string) {
	if m == nil {
		return
	}
	m.authExchanges.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Render(page string) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(page).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
