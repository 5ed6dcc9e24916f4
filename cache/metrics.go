package cache

import "github.com/prometheus/client_golang/prometheus"

// Metrics instruments cache behavior. A nil *Metrics is a no-op.
type Metrics struct {
	hits          prometheus.Counter
	misses        prometheus.Counter
	invalidations prometheus.Counter
	discards      prometheus.Counter
	inFlight      prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eleve", Subsystem: "cache", Name: "hits_total",
			Help: "Queries served from cache.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eleve", Subsystem: "cache", Name: "misses_total",
			Help: "Queries that needed a fetch.",
		}),
		invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eleve", Subsystem: "cache", Name: "invalidations_total",
			Help: "Entries marked stale by mutations.",
		}),
		discards: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eleve", Subsystem: "cache", Name: "discarded_responses_total",
			Help: "Responses dropped because every consumer abandoned the flight.",
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eleve", Subsystem: "cache", Name: "inflight_fetches",
			Help: "Fetches currently in flight.",
		}),
	}
	reg.MustRegister(m.hits, m.misses, m.invalidations, m.discards, m.inFlight)
	return m
}

func (m *Metrics) hit() {
	if m != nil {
		m.hits.Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.misses.Inc()
	}
}

func (m *Metrics) invalidation() {
	if m != nil {
		m.invalidations.Inc()
	}
}

func (m *Metrics) discard() {
	if m != nil {
		m.discards.Inc()
	}
}

func (m *Metrics) inflight(delta float64) {
	if m != nil {
		m.inFlight.Add(delta)
	}
}
