package history

import (
	"context"
	"time"

	"github.com/planwise/planwise/core/model"
)

// PlanRecord captures one suggestion run and its ranked output.
type PlanRecord struct {
	ID           string                  `json:"id"`
	Timestamp    time.Time               `json:"timestamp"`
	Scope        string                  `json:"scope"`
	Participants int                     `json:"participants"`
	Options      model.SchedulingOptions `json:"options"`
	Candidates   []model.CandidateSlot   `json:"candidates"`
}

// PlanQuery defines filters for retrieving records.
type PlanQuery struct {
	Start time.Time
	End   time.Time
	Scope string
}

// Store persists PlanRecords and supports querying.
type Store interface {
	Append(ctx context.Context, rec PlanRecord) error
	Query(ctx context.Context, q PlanQuery) ([]PlanRecord, error)
	Close() error
}
