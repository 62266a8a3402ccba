package metrics

import (
	coremetrics "github.com/planwise/planwise/core/metrics"
	"github.com/planwise/planwise/infra/logger"
)

// LogSink writes optimizer events to the structured log.
type LogSink struct {
	log logger.Logger
}

// NewLogSink creates a LogSink on the given logger.
func NewLogSink(log logger.Logger) *LogSink {
	return &LogSink{log: log}
}

// RecordSuggestion logs the suggestion run.
func (s *LogSink) RecordSuggestion(ev coremetrics.SuggestionEvent) error {
	s.log.Debugw("suggestion run", map[string]any{
		"scope":        ev.Scope,
		"participants": ev.Participants,
		"candidates":   ev.Candidates,
		"top_score":    ev.TopScore,
		"elapsed_ms":   ev.Elapsed.Milliseconds(),
	})
	return nil
}

// RecordResolution logs the resolution pass.
func (s *LogSink) RecordResolution(ev coremetrics.ResolutionEvent) error {
	s.log.Debugw("resolution pass", map[string]any{
		"scope":        ev.Scope,
		"proposed":     ev.Proposed,
		"conflicted":   ev.Conflicted,
		"alternatives": ev.Alternatives,
		"elapsed_ms":   ev.Elapsed.Milliseconds(),
	})
	return nil
}
