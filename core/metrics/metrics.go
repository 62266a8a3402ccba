package metrics

import "time"

// SuggestionEvent captures one optimizer invocation for observability.
type SuggestionEvent struct {
	Scope        string
	Participants int
	Candidates   int
	TopScore     int
	Elapsed      time.Duration
}

// ResolutionEvent captures one conflict-resolution pass.
type ResolutionEvent struct {
	Scope        string
	Proposed     int
	Conflicted   int
	Alternatives int
	Elapsed      time.Duration
}

// MetricsSink records optimizer events. Implementations must be safe for
// concurrent use.
type MetricsSink interface {
	RecordSuggestion(ev SuggestionEvent) error
	RecordResolution(ev ResolutionEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordSuggestion(SuggestionEvent) error { return nil }
func (NopSink) RecordResolution(ResolutionEvent) error { return nil }
