package repository

import (
	"context"

	"github.com/planwise/planwise/core/model"
)

// AvailabilityRepository supplies the declared availability for a scope
// (an event or group identifier). The optimizer never queries storage
// directly; it receives the loaded records from the orchestration layer.
type AvailabilityRepository interface {
	ListAvailability(ctx context.Context, scope string) ([]model.ParticipantAvailability, error)
}

// CommittedEventRepository supplies already-scheduled events for conflict
// resolution. Read-only.
type CommittedEventRepository interface {
	ListCommittedEvents(ctx context.Context, scope string) ([]model.CommittedEvent, error)
}
