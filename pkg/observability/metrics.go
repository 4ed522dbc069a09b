package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters exposed by the service. Degenerate gestures are
// counted rather than logged as errors: they are artifacts of interrupted
// gestures, not failures.
type Metrics struct {
	MutationsSaved      prometheus.Counter
	MutationsRolledBack prometheus.Counter
	GesturesDropped     prometheus.Counter
	DocumentsFetched    prometheus.Counter
}

// NewMetrics creates and registers the metric set
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MutationsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hypey",
			Name:      "mutations_saved_total",
			Help:      "Document saves that landed.",
		}),
		MutationsRolledBack: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hypey",
			Name:      "mutations_rolled_back_total",
			Help:      "Failed saves resolved by revalidation.",
		}),
		GesturesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hypey",
			Name:      "gestures_dropped_total",
			Help:      "Gestures dropped for degenerate geometry.",
		}),
		DocumentsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hypey",
			Name:      "documents_fetched_total",
			Help:      "Whole-document fetches from the store.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.MutationsSaved, m.MutationsRolledBack, m.GesturesDropped, m.DocumentsFetched)
	}
	return m
}

// NewNopMetrics creates an unregistered metric set for tests
func NewNopMetrics() *Metrics {
	return NewMetrics(nil)
}
