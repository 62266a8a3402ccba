package model

import (
	"fmt"
	"time"
)

// TimeRange is a half-open interval [Start, End). Values are immutable;
// every transformation returns a new range.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeRange builds a TimeRange and enforces Start < End.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, fmt.Errorf("time range start %s must be before end %s", start, end)
	}
	return TimeRange{Start: start, End: end}, nil
}

// Validate checks the Start < End invariant.
func (r TimeRange) Validate() error {
	if !r.Start.Before(r.End) {
		return fmt.Errorf("time range start %s must be before end %s", r.Start, r.End)
	}
	return nil
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Minutes returns the length of the range in whole minutes.
func (r TimeRange) Minutes() int {
	return int(r.Duration() / time.Minute)
}

// Overlaps reports whether the two half-open ranges share any instant.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Contains reports whether o lies entirely within r.
func (r TimeRange) Contains(o TimeRange) bool {
	return !o.Start.Before(r.Start) && !o.End.After(r.End)
}

// ContainsInstant reports whether t lies within the half-open range.
func (r TimeRange) ContainsInstant(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Clamp returns the part of r inside the given bounds. A zero bound is
// ignored. The second return value is false when nothing remains.
func (r TimeRange) Clamp(start, end time.Time) (TimeRange, bool) {
	s, e := r.Start, r.End
	if !start.IsZero() && s.Before(start) {
		s = start
	}
	if !end.IsZero() && e.After(end) {
		e = end
	}
	if !s.Before(e) {
		return TimeRange{}, false
	}
	return TimeRange{Start: s, End: e}, true
}

// Truncate returns a copy of r shortened to at most d, keeping the start.
func (r TimeRange) Truncate(d time.Duration) TimeRange {
	if d <= 0 || r.Duration() <= d {
		return r
	}
	return TimeRange{Start: r.Start, End: r.Start.Add(d)}
}

// SplitAround removes the overlap with cut and returns the surviving
// fragments, preserving order. Fragments of zero length are discarded.
func (r TimeRange) SplitAround(cut TimeRange) []TimeRange {
	if !r.Overlaps(cut) {
		return []TimeRange{r}
	}
	var parts []TimeRange
	if r.Start.Before(cut.Start) {
		parts = append(parts, TimeRange{Start: r.Start, End: cut.Start})
	}
	if cut.End.Before(r.End) {
		parts = append(parts, TimeRange{Start: cut.End, End: r.End})
	}
	return parts
}
