package schedule

import (
	"fmt"
	"math"
	"sort"

	"github.com/planwise/planwise/core/model"
)

// Conflict re-search parameters.
const (
	conflictSearchDays        = 3
	conflictAttendeeKeepRatio = 0.7
	maxAlternatives           = 3

	similarityContextWeight   = 0.4
	similarityIntrinsicWeight = 0.6
	dateProximityDecay        = 0.1
	timeOfDayMatchSame        = 1.0
	timeOfDayMatchOther       = 0.5
)

// ResolveConflicts checks each proposed candidate against the committed
// events and, where they collide, re-runs the pipeline over availability
// with the conflicting time carved out to produce ranked alternatives.
// The availability for the scope must be non-empty: resolving against
// nothing is a caller precondition failure, not an empty result.
func ResolveConflicts(cands []model.CandidateSlot, events []model.CommittedEvent, avails []model.ParticipantAvailability, opts model.SchedulingOptions) ([]model.ConflictResolution, error) {
	opts = opts.Normalized()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if len(avails) == 0 || model.TotalAvailable(avails) == 0 {
		return nil, ErrNoAvailability
	}
	scorer := NewScorer()
	participants := participantIDs(avails)
	out := make([]model.ConflictResolution, 0, len(cands))
	for _, c := range cands {
		conflicts := overlappingEvents(events, c.Range)
		res := model.ConflictResolution{Original: c, Conflicts: conflicts}
		if len(conflicts) > 0 {
			res.Alternatives = alternativesFor(c, conflicts, avails, opts, scorer, participants)
		}
		out = append(out, res)
	}
	return out, nil
}

// overlappingEvents returns the committed events colliding with w using the
// open-interval overlap test, ordered by start time then event ID.
func overlappingEvents(events []model.CommittedEvent, w model.TimeRange) []model.CommittedEvent {
	var hits []model.CommittedEvent
	for _, ev := range events {
		if ev.Range.Overlaps(w) {
			hits = append(hits, ev)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if !hits[i].Range.Start.Equal(hits[j].Range.Start) {
			return hits[i].Range.Start.Before(hits[j].Range.Start)
		}
		return hits[i].EventID < hits[j].EventID
	})
	return hits
}

// splitAvailability carves the conflicting ranges out of the attendees'
// availability, producing new values. Caller-supplied availability is never
// mutated; fragments shorter than an instant are discarded by SplitAround.
func splitAvailability(avails []model.ParticipantAvailability, attendees map[string]struct{}, conflicts []model.CommittedEvent) []model.ParticipantAvailability {
	out := make([]model.ParticipantAvailability, 0, len(avails))
	for _, p := range avails {
		if _, hit := attendees[p.ParticipantID]; !hit {
			out = append(out, p)
			continue
		}
		var ranges []model.AvailabilityRange
		for _, ar := range p.Ranges {
			if ar.Status != model.StatusAvailable {
				ranges = append(ranges, ar)
				continue
			}
			parts := []model.TimeRange{ar.Range}
			for _, ev := range conflicts {
				var next []model.TimeRange
				for _, part := range parts {
					next = append(next, part.SplitAround(ev.Range)...)
				}
				parts = next
			}
			for _, part := range parts {
				ranges = append(ranges, model.AvailabilityRange{Range: part, Status: model.StatusAvailable})
			}
		}
		out = append(out, model.ParticipantAvailability{ParticipantID: p.ParticipantID, Ranges: ranges})
	}
	return out
}

func alternativesFor(orig model.CandidateSlot, conflicts []model.CommittedEvent, avails []model.ParticipantAvailability, opts model.SchedulingOptions, scorer Scorer, participants []string) []model.CandidateSlot {
	attendees := make(map[string]struct{}, len(orig.AttendeeIDs))
	for _, id := range orig.AttendeeIDs {
		attendees[id] = struct{}{}
	}
	mod := splitAvailability(avails, attendees, conflicts)

	searchOpts := opts
	searchOpts.StartDate = orig.Range.Start.AddDate(0, 0, -conflictSearchDays)
	searchOpts.EndDate = orig.Range.End.AddDate(0, 0, conflictSearchDays)
	searchOpts.MinDurationMinutes = orig.DurationMinutes
	searchOpts.MinAttendees = int(math.Ceil(conflictAttendeeKeepRatio * float64(len(orig.AttendeeIDs))))
	if searchOpts.MinAttendees < 1 {
		searchOpts.MinAttendees = 1
	}

	windows, err := FindOverlapWindows(mod, searchOpts)
	if err != nil {
		return nil
	}
	scored := Rank(scorer.ScoreAll(windows, participants, searchOpts))

	type ranked struct {
		slot model.CandidateSlot
		sim  float64
	}
	alts := make([]ranked, 0, len(scored))
	for _, alt := range scored {
		alts = append(alts, ranked{slot: alt, sim: similarity(orig, alt)})
	}
	sort.SliceStable(alts, func(i, j int) bool { return alts[i].sim > alts[j].sim })

	n := len(alts)
	if n > maxAlternatives {
		n = maxAlternatives
	}
	out := make([]model.CandidateSlot, 0, n)
	for _, a := range alts[:n] {
		a.slot.Score = int(math.Round(100 * a.sim))
		out = append(out, a.slot)
	}
	return out
}

// similarity blends how close an alternative sits to the original slot with
// the alternative's own intrinsic score. Date proximity decays by 10% per
// day of distance; keeping the same time of day counts double.
func similarity(orig, alt model.CandidateSlot) float64 {
	daysDiff := math.Abs(alt.Range.Start.Sub(orig.Range.Start).Hours()) / 24
	dateProximity := math.Max(0, 1-dateProximityDecay*daysDiff)
	todMatch := timeOfDayMatchOther
	if alt.TimeOfDay == orig.TimeOfDay {
		todMatch = timeOfDayMatchSame
	}
	var attendanceRatio float64
	if len(orig.AttendeeIDs) > 0 {
		attendanceRatio = float64(len(alt.AttendeeIDs)) / float64(len(orig.AttendeeIDs))
	}
	return similarityContextWeight*dateProximity*todMatch*attendanceRatio +
		similarityIntrinsicWeight*float64(alt.Score)/100
}

func participantIDs(avails []model.ParticipantAvailability) []string {
	ids := make([]string, 0, len(avails))
	for _, p := range avails {
		ids = append(ids, p.ParticipantID)
	}
	sort.Strings(ids)
	return ids
}
