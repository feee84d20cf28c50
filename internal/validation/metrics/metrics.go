package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the validation module.
type Metrics struct {
	// Validation verdicts by outcome ("valid" or the rejection reason)
	Outcomes *prometheus.CounterVec

	// Format requests served
	Formats prometheus.Counter

	// Batch sizes and end-to-end batch latency
	BatchSize    prometheus.Histogram
	BatchLatency prometheus.Histogram
}

// New creates the validation metrics and registers them with reg.
// A nil reg uses the default Prometheus registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cadastro_cnpj_validations_total",
			Help: "Total CNPJ validations by outcome",
		}, []string{"outcome"}), // outcome: "valid", "length", "empty", "non_digit", "reserved", "check_digit"

		Formats: factory.NewCounter(prometheus.CounterOpts{
			Name: "cadastro_cnpj_formats_total",
			Help: "Total CNPJ mask formatting operations",
		}),

		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cadastro_cnpj_batch_size",
			Help:    "Number of identifiers per batch validation",
			Buckets: []float64{1, 5, 10, 50, 100, 250, 500, 1000},
		}),

		BatchLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cadastro_cnpj_batch_duration_seconds",
			Help:    "Duration of batch validations",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementOutcome records a validation verdict.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.Outcomes.WithLabelValues(outcome).Inc()
	}
}

// IncrementFormats records a format operation.
func (m *Metrics) IncrementFormats() {
	if m != nil {
		m.Formats.Inc()
	}
}

// ObserveBatch records a batch's size and total duration.
func (m *Metrics) ObserveBatch(size int, d time.Duration) {
	if m != nil {
		m.BatchSize.Observe(float64(size))
		m.BatchLatency.Observe(d.Seconds())
	}
}
