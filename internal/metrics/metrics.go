// Package metrics holds the Prometheus collectors of the service. A Collector
// owns its registry, so tests can create as many as they need.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/u44592/hni/internal/core/domain/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "hni"

// Collector owns the service's Prometheus registry and counters. It records
// conversation turns, finalized orders, expired drafts and webhook responses.
type Collector struct {
	registry *prometheus.Registry

	turns           *prometheus.CounterVec
	ordersFinalized prometheus.Counter
	draftsExpired   prometheus.Counter
	inbound         *prometheus.CounterVec
}

// NewCollector registers every counter on a fresh registry. An empty namespace
// means "hni".
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = defaultNamespace
	}

	c := &Collector{registry: prometheus.NewRegistry()}

	c.turns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "conversation",
			Name:      "turns_total",
			Help:      "Conversation turns by the phase they started in and their outcome",
		},
		[]string{"phase", "outcome"},
	)
	c.ordersFinalized = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "conversation",
		Name:      "orders_finalized_total",
		Help:      "Orders committed after a CONFIRM",
	})
	c.draftsExpired = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "drafts",
		Name:      "expired_total",
		Help:      "Idle drafts removed by the expiry job",
	})
	c.inbound = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sms",
			Name:      "inbound_messages_total",
			Help:      "Inbound SMS webhook calls by HTTP status code",
		},
		[]string{"code"},
	)

	c.registry.MustRegister(
		c.turns,
		c.ordersFinalized,
		c.draftsExpired,
		c.inbound,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// RecordTurn implements commands.TurnRecorder.
func (c *Collector) RecordTurn(phase string, outcome services.Outcome) {
	c.turns.WithLabelValues(phase, string(outcome)).Inc()
}

// RecordOrderFinalized implements commands.TurnRecorder.
func (c *Collector) RecordOrderFinalized() {
	c.ordersFinalized.Inc()
}

// RecordDraftsExpired implements jobs.ExpiryRecorder.
func (c *Collector) RecordDraftsExpired(n int64) {
	if n > 0 {
		c.draftsExpired.Add(float64(n))
	}
}

// RecordInbound implements http.InboundRecorder.
func (c *Collector) RecordInbound(code int) {
	c.inbound.WithLabelValues(strconv.Itoa(code)).Inc()
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
