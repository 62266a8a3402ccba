package model

import (
	"sort"
	"time"
)

// AvailabilityStatus describes how firm a declared time range is.
type AvailabilityStatus int

const (
	// StatusAvailable ranges are the only ones fed to the overlap engine.
	StatusAvailable AvailabilityStatus = iota
	StatusUnavailable
	StatusTentative
)

// String implements fmt.Stringer.
func (s AvailabilityStatus) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusUnavailable:
		return "unavailable"
	case StatusTentative:
		return "tentative"
	default:
		return "unknown"
	}
}

// AvailabilityRange couples a time range with its declared status.
type AvailabilityRange struct {
	Range  TimeRange          `json:"range"`
	Status AvailabilityStatus `json:"status"`
}

// ParticipantAvailability holds the declared ranges of one participant.
// The optimizer only reads it; it never mutates or stores it.
type ParticipantAvailability struct {
	ParticipantID string              `json:"participant_id"`
	Ranges        []AvailabilityRange `json:"ranges"`
}

// AvailableRanges returns the participant's available ranges merged into a
// minimal sorted set of non-overlapping ranges. Overlapping or adjacent
// self-ranges are treated as one continuous availability.
func (p ParticipantAvailability) AvailableRanges() []TimeRange {
	var ranges []TimeRange
	for _, ar := range p.Ranges {
		if ar.Status != StatusAvailable {
			continue
		}
		if ar.Range.Validate() != nil {
			continue
		}
		ranges = append(ranges, ar.Range)
	}
	return MergeRanges(ranges)
}

// MergeRanges normalizes ranges into a sorted list where overlapping and
// back-to-back ranges are coalesced. The input slice is not modified.
func MergeRanges(ranges []TimeRange) []TimeRange {
	if len(ranges) == 0 {
		return nil
	}
	sorted := make([]TimeRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].End.Before(sorted[j].End)
	})
	merged := []TimeRange{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !r.Start.After(last.End) {
			if r.End.After(last.End) {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// CommittedEvent is an already scheduled event supplied by the caller.
// It is read-only input; the optimizer never produces one.
type CommittedEvent struct {
	EventID string    `json:"event_id"`
	Range   TimeRange `json:"range"`
}

// TotalAvailable sums the available duration of all participants.
func TotalAvailable(avails []ParticipantAvailability) time.Duration {
	var total time.Duration
	for _, p := range avails {
		for _, r := range p.AvailableRanges() {
			total += r.Duration()
		}
	}
	return total
}
