package restclient

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments outgoing requests. A nil *Metrics is a no-op so the
// client works without a registry (e.g. in most tests).
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eleve",
			Subsystem: "restclient",
			Name:      "requests_total",
			Help:      "Outgoing HTTP requests by method, path template and status.",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "eleve",
			Subsystem: "restclient",
			Name:      "request_duration_seconds",
			Help:      "Outgoing HTTP request durations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) observe(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	tmpl := pathTemplate(path)
	m.requests.WithLabelValues(method, tmpl, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, tmpl).Observe(elapsed.Seconds())
}

// pathTemplate collapses numeric path segments to keep label cardinality low:
// "/leads/5/mudar_status/" -> "/leads/:id/mudar_status/".
func pathTemplate(path string) string {
	segs := strings.Split(path, "/")
	for i, seg := range segs {
		if seg == "" {
			continue
		}
		if _, err := strconv.Atoi(seg); err == nil {
			segs[i] = ":id"
		}
	}
	return strings.Join(segs, "/")
}
