package schedule

import (
	"fmt"

	"github.com/planwise/planwise/core/logger"
	"github.com/planwise/planwise/core/model"
)

// Engine ties the sweep, scorer and ranker into the full suggestion
// pipeline. It holds no mutable state between calls; identical inputs
// produce byte-identical ranked output.
type Engine struct {
	scorer Scorer
	log    logger.Logger
}

// NewEngine creates an Engine with the default scorer. A nil logger
// disables logging.
func NewEngine(log logger.Logger) *Engine {
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{scorer: NewScorer(), log: log}
}

// Suggest runs availability through the full pipeline and returns the top
// candidates, ranked. An empty participant list or all-empty ranges yields
// ErrNoAvailability so callers can distinguish "nothing to schedule" from
// "no good slot found".
func (e *Engine) Suggest(avails []model.ParticipantAvailability, opts model.SchedulingOptions) ([]model.CandidateSlot, error) {
	return e.SuggestWithConstraints(avails, opts, ConstraintSet{})
}

// SuggestWithConstraints is Suggest with a constraint set applied to the
// scored candidates before the list is capped: required constraints drop
// failing candidates, soft constraints adjust their scores. An empty set
// leaves the ranking untouched.
func (e *Engine) SuggestWithConstraints(avails []model.ParticipantAvailability, opts model.SchedulingOptions, cs ConstraintSet) ([]model.CandidateSlot, error) {
	opts = opts.Normalized()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if len(avails) == 0 || model.TotalAvailable(avails) == 0 {
		return nil, ErrNoAvailability
	}
	windows, err := FindOverlapWindows(avails, opts)
	if err != nil {
		return nil, err
	}
	scored := e.scorer.ScoreAll(windows, participantIDs(avails), opts)
	ranked := ApplyConstraints(scored, len(avails), cs)
	if len(ranked) > opts.MaxSuggestions {
		ranked = ranked[:opts.MaxSuggestions]
	}
	e.log.Debugw("suggestion pipeline complete", map[string]any{
		"participants": len(avails),
		"windows":      len(windows),
		"returned":     len(ranked),
	})
	return ranked, nil
}

// Resolve checks candidates against committed events and derives ranked
// alternatives for the conflicted ones.
func (e *Engine) Resolve(cands []model.CandidateSlot, events []model.CommittedEvent, avails []model.ParticipantAvailability, opts model.SchedulingOptions) ([]model.ConflictResolution, error) {
	return ResolveConflicts(cands, events, avails, opts)
}

// Analyze produces the descriptive availability-pattern report.
func (e *Engine) Analyze(avails []model.ParticipantAvailability, opts model.SchedulingOptions) (*PatternReport, error) {
	return AnalyzePatterns(avails, opts)
}

// Common lists every shared-free-time window meeting the query threshold.
func (e *Engine) Common(avails []model.ParticipantAvailability, q CommonWindowQuery) ([]model.CommonWindow, error) {
	return CommonWindows(avails, q)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
