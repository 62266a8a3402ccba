package store

import (
	"context"
	"sync"

	"github.com/planwise/planwise/core/model"
)

// MemoryStore keeps availability and committed events in memory. It is used
// by the CLI for fixture-driven runs and by tests.
type MemoryStore struct {
	mu     sync.RWMutex
	avails map[string][]model.ParticipantAvailability
	events map[string][]model.CommittedEvent
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		avails: make(map[string][]model.ParticipantAvailability),
		events: make(map[string][]model.CommittedEvent),
	}
}

// SaveAvailability appends the participant's availability for a scope.
func (m *MemoryStore) SaveAvailability(_ context.Context, scope string, p model.ParticipantAvailability) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.avails[scope] = append(m.avails[scope], p)
	return nil
}

// ListAvailability returns the stored availability for a scope.
func (m *MemoryStore) ListAvailability(_ context.Context, scope string) ([]model.ParticipantAvailability, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.ParticipantAvailability, len(m.avails[scope]))
	copy(out, m.avails[scope])
	return out, nil
}

// SaveCommittedEvent records an event for a scope.
func (m *MemoryStore) SaveCommittedEvent(_ context.Context, scope string, ev model.CommittedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[scope] = append(m.events[scope], ev)
	return nil
}

// ListCommittedEvents returns the events of a scope.
func (m *MemoryStore) ListCommittedEvents(_ context.Context, scope string) ([]model.CommittedEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.CommittedEvent, len(m.events[scope]))
	copy(out, m.events[scope])
	return out, nil
}

// Close implements the closer expected by the service layer.
func (m *MemoryStore) Close() error { return nil }
