package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cfrtree"

// promCollector exports counters to Prometheus and keeps the in-process
// totals for Complete.
type promCollector struct {
	Collector
	hands    prometheus.Counter
	events   prometheus.Counter
	nodes    *prometheus.CounterVec
	faults   *prometheus.CounterVec
	duration prometheus.Gauge
}

// NewPrometheusCollector registers its metrics with reg.
func NewPrometheusCollector(reg prometheus.Registerer) Collector {
	factory := promauto.With(reg)
	return &promCollector{
		Collector: NewCollector(),
		hands: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hands_recorded_total",
			Help:      "Hands fed through a recorder, faulted or not",
		}),
		events: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Game events delivered to recorders",
		}),
		nodes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_created_total",
			Help:      "Tree nodes created by kind",
		}, []string{"kind"}),
		faults: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "faults_total",
			Help:      "Abandoned hand recordings by fault kind",
		}, []string{"kind"}),
		duration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall time of the last completed run",
		}),
	}
}

func (m *promCollector) AddHand() {
	m.Collector.AddHand()
	m.hands.Inc()
}

func (m *promCollector) AddEvent() {
	m.Collector.AddEvent()
	m.events.Inc()
}

func (m *promCollector) AddNode(kind string) {
	m.Collector.AddNode(kind)
	m.nodes.WithLabelValues(kind).Inc()
}

func (m *promCollector) AddFault(kind string) {
	m.Collector.AddFault(kind)
	m.faults.WithLabelValues(kind).Inc()
}

func (m *promCollector) Complete() RunMetric {
	metric := m.Collector.Complete()
	m.duration.Set(metric.Duration.Seconds())
	return metric
}
