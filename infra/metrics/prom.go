package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/planwise/planwise/core/metrics"
)

// PromSink records optimizer events in Prometheus metrics.
type PromSink struct {
	suggestions *prometheus.CounterVec
	resolutions *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	candidates  *prometheus.GaugeVec
}

// NewPromSink registers optimizer metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	suggestions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planwise_suggestions_total",
		Help: "Total number of suggestion pipeline runs",
	}, []string{"scope"})
	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planwise_resolutions_total",
		Help: "Total number of conflict resolution passes",
	}, []string{"scope"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planwise_pipeline_seconds",
		Help:    "Wall-clock time of one optimizer invocation",
		Buckets: prometheus.DefBuckets,
	}, []string{"scope", "operation"})
	candidates := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "planwise_candidates",
		Help: "Number of candidates produced by the last suggestion run",
	}, []string{"scope"})

	if err := reg.Register(suggestions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			suggestions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(resolutions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			resolutions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(candidates); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			candidates = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	return &PromSink{
		suggestions: suggestions,
		resolutions: resolutions,
		latency:     latency,
		candidates:  candidates,
	}, nil
}

// RecordSuggestion counts the run and observes its latency.
func (s *PromSink) RecordSuggestion(ev coremetrics.SuggestionEvent) error {
	s.suggestions.WithLabelValues(ev.Scope).Inc()
	s.latency.WithLabelValues(ev.Scope, "suggest").Observe(ev.Elapsed.Seconds())
	s.candidates.WithLabelValues(ev.Scope).Set(float64(ev.Candidates))
	return nil
}

// RecordResolution counts the pass and observes its latency.
func (s *PromSink) RecordResolution(ev coremetrics.ResolutionEvent) error {
	s.resolutions.WithLabelValues(ev.Scope).Inc()
	s.latency.WithLabelValues(ev.Scope, "resolve").Observe(ev.Elapsed.Seconds())
	return nil
}
