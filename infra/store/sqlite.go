package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/planwise/planwise/core/model"
)

// SQLiteStore persists availability and committed events per scope. It
// implements both repository interfaces consumed by the orchestration layer.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS availability (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        scope TEXT NOT NULL,
        participant_id TEXT NOT NULL,
        start_ts INTEGER NOT NULL,
        end_ts INTEGER NOT NULL,
        status INTEGER NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_availability_scope ON availability(scope);
    CREATE TABLE IF NOT EXISTS committed_events (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        scope TEXT NOT NULL,
        event_id TEXT NOT NULL,
        start_ts INTEGER NOT NULL,
        end_ts INTEGER NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_events_scope ON committed_events(scope);`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// SaveAvailability appends the participant's declared ranges for a scope.
func (s *SQLiteStore) SaveAvailability(ctx context.Context, scope string, p model.ParticipantAvailability) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, ar := range p.Ranges {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO availability (scope, participant_id, start_ts, end_ts, status) VALUES (?, ?, ?, ?, ?)`,
			scope, p.ParticipantID, ar.Range.Start.Unix(), ar.Range.End.Unix(), int(ar.Status)); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// ListAvailability returns the stored availability for a scope, grouped per
// participant and ordered for reproducible output.
func (s *SQLiteStore) ListAvailability(ctx context.Context, scope string) ([]model.ParticipantAvailability, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT participant_id, start_ts, end_ts, status FROM availability
         WHERE scope = ? ORDER BY participant_id, start_ts, end_ts`, scope)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.ParticipantAvailability
	var cur *model.ParticipantAvailability
	for rows.Next() {
		var id string
		var start, end int64
		var status int
		if err := rows.Scan(&id, &start, &end, &status); err != nil {
			return nil, err
		}
		if cur == nil || cur.ParticipantID != id {
			out = append(out, model.ParticipantAvailability{ParticipantID: id})
			cur = &out[len(out)-1]
		}
		cur.Ranges = append(cur.Ranges, model.AvailabilityRange{
			Range:  model.TimeRange{Start: time.Unix(start, 0).UTC(), End: time.Unix(end, 0).UTC()},
			Status: model.AvailabilityStatus(status),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveCommittedEvent records an already-scheduled event for a scope.
func (s *SQLiteStore) SaveCommittedEvent(ctx context.Context, scope string, ev model.CommittedEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO committed_events (scope, event_id, start_ts, end_ts) VALUES (?, ?, ?, ?)`,
		scope, ev.EventID, ev.Range.Start.Unix(), ev.Range.End.Unix())
	return err
}

// ListCommittedEvents returns the committed events of a scope ordered by
// start time.
func (s *SQLiteStore) ListCommittedEvents(ctx context.Context, scope string) ([]model.CommittedEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT event_id, start_ts, end_ts FROM committed_events
         WHERE scope = ? ORDER BY start_ts, event_id`, scope)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.CommittedEvent
	for rows.Next() {
		var id string
		var start, end int64
		if err := rows.Scan(&id, &start, &end); err != nil {
			return nil, err
		}
		out = append(out, model.CommittedEvent{
			EventID: id,
			Range:   model.TimeRange{Start: time.Unix(start, 0).UTC(), End: time.Unix(end, 0).UTC()},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
