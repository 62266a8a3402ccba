package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/planwise/planwise/core/model"
)

// CommonWindowQuery parametrizes the descriptive shared-free-time listing.
type CommonWindowQuery struct {
	MinRequiredUsers   int
	MinDurationMinutes int
	StartDate          time.Time
	EndDate            time.Time
}

// Validate rejects malformed queries before the sweep runs.
func (q CommonWindowQuery) Validate() error {
	if q.MinRequiredUsers <= 0 {
		return fmt.Errorf("min required users must be positive, got %d", q.MinRequiredUsers)
	}
	if q.MinDurationMinutes < 0 {
		return fmt.Errorf("min duration must not be negative, got %d", q.MinDurationMinutes)
	}
	if !q.StartDate.IsZero() && !q.EndDate.IsZero() && q.StartDate.After(q.EndDate) {
		return fmt.Errorf("start date %s is after end date %s", q.StartDate, q.EndDate)
	}
	return nil
}

// CommonWindows reports every window where at least MinRequiredUsers are
// simultaneously available, sorted by participant count then duration, both
// descending. No scoring is applied; this is a descriptive listing for
// showing shared free time, not a recommendation ranking.
func CommonWindows(avails []model.ParticipantAvailability, q CommonWindowQuery) ([]model.CommonWindow, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	merged := clampedAvailability(avails, model.SchedulingOptions{StartDate: q.StartDate, EndDate: q.EndDate})
	runs, segs := sweep(merged, q.MinRequiredUsers)
	windows := runs
	for _, s := range segs {
		if w, ok := coverWindow(merged, s); ok {
			windows = append(windows, w)
		}
	}

	minDur := time.Duration(q.MinDurationMinutes) * time.Minute
	seen := make(map[string]struct{}, len(windows))
	var out []model.CommonWindow
	for _, w := range windows {
		key := windowKey(w)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if w.Duration() < minDur {
			continue
		}
		ids := attendeesCovering(merged, w)
		if len(ids) < q.MinRequiredUsers {
			continue
		}
		out = append(out, model.CommonWindow{
			Range:           w,
			ParticipantIDs:  ids,
			DurationMinutes: w.Minutes(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i].ParticipantIDs) != len(out[j].ParticipantIDs) {
			return len(out[i].ParticipantIDs) > len(out[j].ParticipantIDs)
		}
		if out[i].DurationMinutes != out[j].DurationMinutes {
			return out[i].DurationMinutes > out[j].DurationMinutes
		}
		return out[i].Range.Start.Before(out[j].Range.Start)
	})
	return out, nil
}
