package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SchemaRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rnadnavar",
		Name:      "schema_requests_total",
		Help:      "Parameter schema requests by route.",
	}, []string{"route"})

	CommandLinePreviews = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rnadnavar",
		Name:      "commandline_previews_total",
		Help:      "Command-line previews by outcome.",
	}, []string{"outcome"})

	ValidationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rnadnavar",
		Name:      "parameter_validation_failures_total",
		Help:      "Validation requests that reported at least one error.",
	})

	RunRecordsSanitized = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rnadnavar",
		Name:      "run_records_sanitized_total",
		Help:      "Run records removed by the sanitation job.",
	})
)

// Register adds the collectors to reg; the API passes the default registry.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(SchemaRequests, CommandLinePreviews, ValidationFailures, RunRecordsSanitized)
}
