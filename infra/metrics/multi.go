package metrics

import coremetrics "github.com/planwise/planwise/core/metrics"

// MultiSink fans optimizer events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSuggestion forwards the event to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordSuggestion(ev coremetrics.SuggestionEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSuggestion(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordResolution forwards the event to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordResolution(ev coremetrics.ResolutionEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordResolution(ev); err != nil {
			return err
		}
	}
	return nil
}
