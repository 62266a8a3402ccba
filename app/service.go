package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/planwise/planwise/config"
	corehistory "github.com/planwise/planwise/core/history"
	coremetrics "github.com/planwise/planwise/core/metrics"
	"github.com/planwise/planwise/core/model"
	"github.com/planwise/planwise/core/repository"
	"github.com/planwise/planwise/core/schedule"
	"github.com/planwise/planwise/infra/enrich"
	"github.com/planwise/planwise/infra/history"
	"github.com/planwise/planwise/infra/logger"
	"github.com/planwise/planwise/infra/metrics"
	"github.com/planwise/planwise/infra/store"
	"github.com/planwise/planwise/internal/eventbus"
)

// Enricher re-scores ranked candidates through the optional AI
// recommendation service. Any error means the engine's own ranking is used
// unmodified; that fallback is a hard contract.
type Enricher interface {
	Enrich(ctx context.Context, scope string, cands []model.CandidateSlot) ([]model.CandidateSlot, error)
}

// ScopeStore is the combined storage surface used by the service and by
// CLI fixture seeding.
type ScopeStore interface {
	repository.AvailabilityRepository
	repository.CommittedEventRepository
	SaveAvailability(ctx context.Context, scope string, p model.ParticipantAvailability) error
	SaveCommittedEvent(ctx context.Context, scope string, ev model.CommittedEvent) error
	Close() error
}

// Service orchestrates storage, the scheduling engine and the optional
// enrichment collaborator. The engine itself stays pure; all I/O happens
// here, before or after invoking it.
type Service struct {
	Engine *schedule.Engine

	store    ScopeStore
	enricher Enricher
	history  corehistory.Store
	sink     coremetrics.MetricsSink
	bus      eventbus.EventBus
	log      logger.Logger
	defaults model.SchedulingOptions

	promEnabled bool
	promAddr    string
	closers     []io.Closer
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var st ScopeStore
	if cfg.Store.Path != "" {
		s, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		st = s
	} else {
		st = store.NewMemoryStore()
	}

	var hist corehistory.Store
	var err error
	switch cfg.History.Backend {
	case "sqlite":
		hist, err = history.NewSQLiteStore(cfg.History.Path)
	default:
		hist, err = history.NewRotatingJSONLStore(cfg.History.Path, cfg.History.MaxSizeMB, cfg.History.MaxBackups, cfg.History.MaxAgeDays)
	}
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}

	sinks := []coremetrics.MetricsSink{metrics.NewLogSink(logger.New("metrics"))}
	if cfg.Metrics.PrometheusEnabled {
		prom, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, prom)
	}
	sink := metrics.NewMultiSink(sinks...)

	var enricher Enricher
	if cfg.Enrichment.URL != "" {
		enricher = enrich.NewClient(cfg.Enrichment, logger.New("enrich"))
	}

	defaults, err := cfg.Scheduling.Options()
	if err != nil {
		return nil, fmt.Errorf("scheduling defaults: %w", err)
	}

	return &Service{
		Engine:      schedule.NewEngine(logger.New("engine")),
		store:       st,
		enricher:    enricher,
		history:     hist,
		sink:        sink,
		bus:         eventbus.New(),
		log:         logg,
		defaults:    defaults,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promAddr:    cfg.Metrics.PrometheusAddr,
		closers:     []io.Closer{st, hist},
	}, nil
}

// Options returns the configured default scheduling options.
func (s *Service) Options() model.SchedulingOptions { return s.defaults }

// Store exposes the scope store for seeding fixtures.
func (s *Service) Store() ScopeStore { return s.store }

// Bus exposes the event bus for observers.
func (s *Service) Bus() eventbus.EventBus { return s.bus }

// SuggestForScope loads the scope's availability, runs the full pipeline
// and returns ranked candidates. The run is recorded in the plan history
// and the metrics sink.
func (s *Service) SuggestForScope(ctx context.Context, scope string, opts model.SchedulingOptions) ([]model.CandidateSlot, error) {
	start := time.Now()
	avails, err := s.store.ListAvailability(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("load availability for %s: %w", scope, err)
	}
	ranked, err := s.Engine.Suggest(avails, opts)
	if err != nil {
		return nil, err
	}
	ranked = s.enriched(ctx, scope, ranked)

	rec := corehistory.PlanRecord{
		ID:           uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Scope:        scope,
		Participants: len(avails),
		Options:      opts,
		Candidates:   ranked,
	}
	if err := s.history.Append(ctx, rec); err != nil {
		s.log.Warnf("record plan history: %v", err)
	}
	ev := coremetrics.SuggestionEvent{
		Scope:        scope,
		Participants: len(avails),
		Candidates:   len(ranked),
		Elapsed:      time.Since(start),
	}
	if len(ranked) > 0 {
		ev.TopScore = ranked[0].Score
	}
	if err := s.sink.RecordSuggestion(ev); err != nil {
		s.log.Warnf("record suggestion metrics: %v", err)
	}
	s.bus.Publish(eventbus.PlanComputedEvent{Scope: scope, Candidates: len(ranked), TopScore: ev.TopScore})
	return ranked, nil
}

// enriched applies the optional AI enrichment, falling back to the engine's
// ranking on any failure.
func (s *Service) enriched(ctx context.Context, scope string, ranked []model.CandidateSlot) []model.CandidateSlot {
	if s.enricher == nil || len(ranked) == 0 {
		return ranked
	}
	out, err := s.enricher.Enrich(ctx, scope, ranked)
	if err != nil {
		s.log.Warnf("enrichment failed, keeping engine ranking: %v", err)
		return ranked
	}
	return schedule.Rank(out)
}

// ResolveForScope checks the proposed candidates against the scope's
// committed events and derives ranked alternatives for the conflicted ones.
func (s *Service) ResolveForScope(ctx context.Context, scope string, proposed []model.CandidateSlot, opts model.SchedulingOptions) ([]model.ConflictResolution, error) {
	start := time.Now()
	avails, err := s.store.ListAvailability(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("load availability for %s: %w", scope, err)
	}
	events, err := s.store.ListCommittedEvents(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("load committed events for %s: %w", scope, err)
	}
	resolutions, err := s.Engine.Resolve(proposed, events, avails, opts)
	if err != nil {
		return nil, err
	}

	conflicted, alternatives := 0, 0
	for _, r := range resolutions {
		if len(r.Conflicts) == 0 {
			continue
		}
		conflicted++
		alternatives += len(r.Alternatives)
		ids := make([]string, 0, len(r.Conflicts))
		for _, c := range r.Conflicts {
			ids = append(ids, c.EventID)
		}
		s.bus.Publish(eventbus.ConflictDetectedEvent{Scope: scope, EventIDs: ids})
	}
	if err := s.sink.RecordResolution(coremetrics.ResolutionEvent{
		Scope:        scope,
		Proposed:     len(proposed),
		Conflicted:   conflicted,
		Alternatives: alternatives,
		Elapsed:      time.Since(start),
	}); err != nil {
		s.log.Warnf("record resolution metrics: %v", err)
	}
	return resolutions, nil
}

// AnalyzeScope produces the descriptive availability-pattern report for a
// scope.
func (s *Service) AnalyzeScope(ctx context.Context, scope string, opts model.SchedulingOptions) (*schedule.PatternReport, error) {
	avails, err := s.store.ListAvailability(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("load availability for %s: %w", scope, err)
	}
	return s.Engine.Analyze(avails, opts)
}

// CommonWindowsForScope lists shared free time for display.
func (s *Service) CommonWindowsForScope(ctx context.Context, scope string, q schedule.CommonWindowQuery) ([]model.CommonWindow, error) {
	avails, err := s.store.ListAvailability(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("load availability for %s: %w", scope, err)
	}
	return s.Engine.Common(avails, q)
}

// Run blocks until the context is canceled, serving Prometheus metrics when
// enabled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	<-ctx.Done()
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
