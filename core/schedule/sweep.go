package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/planwise/planwise/core/model"
)

// participantRanges maps a participant to their merged available ranges,
// already clamped to the configured date bounds.
type participantRanges map[string][]model.TimeRange

func clampedAvailability(avails []model.ParticipantAvailability, opts model.SchedulingOptions) participantRanges {
	merged := make(participantRanges, len(avails))
	for _, p := range avails {
		var kept []model.TimeRange
		for _, r := range p.AvailableRanges() {
			if c, ok := r.Clamp(opts.StartDate, opts.EndDate); ok {
				kept = append(kept, c)
			}
		}
		if len(kept) > 0 {
			merged[p.ParticipantID] = kept
		}
	}
	return merged
}

type sweepEvent struct {
	at    time.Time
	start bool
	id    string
}

// timeline builds the chronological event list for the sweep. START events
// sort before END events at the same instant so back-to-back ranges count as
// continuous coverage. Participant ID breaks remaining ties to keep the
// order reproducible.
func timeline(merged participantRanges) []sweepEvent {
	var evs []sweepEvent
	for id, ranges := range merged {
		for _, r := range ranges {
			evs = append(evs,
				sweepEvent{at: r.Start, start: true, id: id},
				sweepEvent{at: r.End, start: false, id: id})
		}
	}
	sort.Slice(evs, func(i, j int) bool {
		if !evs[i].at.Equal(evs[j].at) {
			return evs[i].at.Before(evs[j].at)
		}
		if evs[i].start != evs[j].start {
			return evs[i].start
		}
		return evs[i].id < evs[j].id
	})
	return evs
}

type segment struct {
	r   model.TimeRange
	ids []string
}

// sweep walks the timeline once and returns two window families: runs, the
// maximal stretches where the active set stays at or above minAttendees, and
// segs, the stretches between consecutive events where the active set is
// constant. Runs capture the longest schedulable windows; segments capture
// the sub-windows where additional participants join or leave.
func sweep(merged participantRanges, minAttendees int) ([]model.TimeRange, []segment) {
	evs := timeline(merged)
	active := make(map[string]struct{})
	var runs []model.TimeRange
	var segs []segment
	var runStart time.Time
	inRun := false
	for i := 0; i < len(evs); {
		at := evs[i].at
		for ; i < len(evs) && evs[i].at.Equal(at) && evs[i].start; i++ {
			active[evs[i].id] = struct{}{}
		}
		if !inRun && len(active) >= minAttendees {
			inRun, runStart = true, at
		}
		for ; i < len(evs) && evs[i].at.Equal(at); i++ {
			delete(active, evs[i].id)
		}
		if inRun && len(active) < minAttendees {
			inRun = false
			if at.After(runStart) {
				runs = append(runs, model.TimeRange{Start: runStart, End: at})
			}
		}
		if len(active) >= minAttendees && i < len(evs) && evs[i].at.After(at) {
			segs = append(segs, segment{
				r:   model.TimeRange{Start: at, End: evs[i].at},
				ids: activeIDs(active),
			})
		}
	}
	return runs, segs
}

func activeIDs(active map[string]struct{}) []string {
	ids := make([]string, 0, len(active))
	for id := range active {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// coveringRange returns the merged range of a participant that fully
// contains w, if any. A participant has at most one since ranges are merged.
func coveringRange(ranges []model.TimeRange, w model.TimeRange) (model.TimeRange, bool) {
	for _, r := range ranges {
		if r.Contains(w) {
			return r, true
		}
	}
	return model.TimeRange{}, false
}

// coverWindow widens a segment to the largest window still fully covered by
// every participant active during the segment.
func coverWindow(merged participantRanges, seg segment) (model.TimeRange, bool) {
	var w model.TimeRange
	for i, id := range seg.ids {
		r, ok := coveringRange(merged[id], seg.r)
		if !ok {
			return model.TimeRange{}, false
		}
		if i == 0 {
			w = r
			continue
		}
		if r.Start.After(w.Start) {
			w.Start = r.Start
		}
		if r.End.Before(w.End) {
			w.End = r.End
		}
	}
	if !w.Start.Before(w.End) {
		return model.TimeRange{}, false
	}
	return w, true
}

// attendeesCovering returns, sorted, every participant whose availability
// fully contains w. This is the exact attendee set of a window, guarding
// against reporting someone on a sub-window they only partially cover.
func attendeesCovering(merged participantRanges, w model.TimeRange) []string {
	var ids []string
	for id, ranges := range merged {
		if _, ok := coveringRange(ranges, w); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func windowKey(w model.TimeRange) string {
	return w.Start.UTC().Format(time.RFC3339Nano) + "/" + w.End.UTC().Format(time.RFC3339Nano)
}

// FindOverlapWindows derives unscored candidate slots from the participants'
// available ranges. Zero availability yields an empty result, not an error.
// Windows longer than MaxDurationMinutes are truncated to that duration from
// the window start rather than discarded.
func FindOverlapWindows(avails []model.ParticipantAvailability, opts model.SchedulingOptions) ([]model.CandidateSlot, error) {
	opts = opts.Normalized()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	merged := clampedAvailability(avails, opts)
	runs, segs := sweep(merged, opts.MinAttendees)
	windows := runs
	for _, s := range segs {
		if w, ok := coverWindow(merged, s); ok {
			windows = append(windows, w)
		}
	}

	minDur := time.Duration(opts.MinDurationMinutes) * time.Minute
	maxDur := time.Duration(opts.MaxDurationMinutes) * time.Minute
	seen := make(map[string]struct{}, len(windows))
	var slots []model.CandidateSlot
	for _, w := range windows {
		if maxDur > 0 {
			w = w.Truncate(maxDur)
		}
		key := windowKey(w)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if w.Duration() < minDur {
			continue
		}
		attendees := attendeesCovering(merged, w)
		if len(attendees) < opts.MinAttendees {
			continue
		}
		slot := model.NewCandidateSlot(w, attendees)
		slot.TimeOfDay = model.TimeOfDayFor(w.Start.In(opts.Location))
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Range.Start.Equal(slots[j].Range.Start) {
			return slots[i].Range.Start.Before(slots[j].Range.Start)
		}
		return slots[i].Range.End.Before(slots[j].Range.End)
	})
	return slots, nil
}
