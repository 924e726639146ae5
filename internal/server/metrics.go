package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/klabast/wb-services/afval-ical/internal/app"
)

// Metrics holds the Prometheus collectors of the subscription server
type Metrics struct {
	Registry    *prometheus.Registry
	Fragments   *prometheus.CounterVec
	FetchErrors prometheus.Counter
}

// NewMetrics creates the collectors on a dedicated registry
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Fragments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "afval_ical_fragments_total",
			Help: "Schedule fragments processed, by outcome",
		}, []string{"result"}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "afval_ical_fetch_errors_total",
			Help: "Schedule pages that could not be fetched",
		}),
	}
	m.Registry.MustRegister(m.Fragments, m.FetchErrors)
	return m
}

// Record adds the outcome of one pipeline run
func (m *Metrics) Record(stats app.Stats) {
	m.Fragments.WithLabelValues("admitted").Add(float64(stats.Admitted))
	m.Fragments.WithLabelValues("duplicate").Add(float64(stats.Duplicates))
	m.Fragments.WithLabelValues("skipped").Add(float64(stats.Skipped))
	m.Fragments.WithLabelValues("filtered").Add(float64(stats.Filtered))
}
