package metrics

import "github.com/prometheus/client_golang/prometheus"

// ShippingMetrics counts quote outcomes.
type ShippingMetrics struct {
	quotes     *prometheus.CounterVec
	unresolved prometheus.Counter
}

// NewShippingMetrics registers quote counters on the provided registerer.
func NewShippingMetrics(reg prometheus.Registerer) *ShippingMetrics {
	if reg == nil {
		return &ShippingMetrics{}
	}
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shipping_quotes_total",
		Help: "Shipping quotes served, labeled by destination commune.",
	}, []string{"commune"})
	unresolved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shipping_quotes_unresolved_total",
		Help: "Quote requests rejected because the commune could not be resolved.",
	})
	reg.MustRegister(quotes, unresolved)
	return &ShippingMetrics{quotes: quotes, unresolved: unresolved}
}

// IncQuote records a served quote for the named commune.
func (s *ShippingMetrics) IncQuote(commune string) {
	if s == nil || s.quotes == nil {
		return
	}
	s.quotes.WithLabelValues(normalizeLabel(commune)).Inc()
}

// IncUnresolved records a quote request with no resolvable commune.
func (s *ShippingMetrics) IncUnresolved() {
	if s == nil || s.unresolved == nil {
		return
	}
	s.unresolved.Inc()
}
