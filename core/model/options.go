package model

import (
	"fmt"
	"time"
)

// Default thresholds applied by SchedulingOptions.Normalized.
const (
	DefaultMinAttendees       = 2
	DefaultMinDurationMinutes = 30
	DefaultMaxSuggestions     = 10
)

// SchedulingOptions is the sole tuning surface of the optimizer. The zero
// value is usable; Normalized fills in defaults. Options values are treated
// as immutable and threaded explicitly through every call.
type SchedulingOptions struct {
	MinAttendees         int                `json:"min_attendees"`
	MinDurationMinutes   int                `json:"min_duration_minutes"`
	MaxDurationMinutes   int                `json:"max_duration_minutes"`
	MaxSuggestions       int                `json:"max_suggestions"`
	PreferredTimesOfDay  []TimeOfDay        `json:"preferred_times_of_day,omitempty"`
	PreferredDaysOfWeek  []time.Weekday     `json:"preferred_days_of_week,omitempty"`
	AttendeeWeights      map[string]float64 `json:"attendee_weights,omitempty"`
	PrioritizeAttendance bool               `json:"prioritize_attendance"`
	StartDate            time.Time          `json:"start_date,omitempty"`
	EndDate              time.Time          `json:"end_date,omitempty"`
	// Location is the timezone used for time-of-day and day-of-week
	// categorization. Defaults to UTC.
	Location *time.Location `json:"-"`
}

// Normalized returns a copy with defaults applied. The receiver is not
// modified.
func (o SchedulingOptions) Normalized() SchedulingOptions {
	n := o
	if n.MinAttendees == 0 {
		n.MinAttendees = DefaultMinAttendees
	}
	if n.MinDurationMinutes == 0 {
		n.MinDurationMinutes = DefaultMinDurationMinutes
	}
	if n.MaxSuggestions == 0 {
		n.MaxSuggestions = DefaultMaxSuggestions
	}
	if n.Location == nil {
		n.Location = time.UTC
	}
	return n
}

// Validate rejects malformed options before the pipeline runs.
func (o SchedulingOptions) Validate() error {
	if o.MinAttendees < 0 {
		return fmt.Errorf("min attendees must not be negative, got %d", o.MinAttendees)
	}
	if o.MinDurationMinutes < 0 {
		return fmt.Errorf("min duration must not be negative, got %d", o.MinDurationMinutes)
	}
	if o.MaxDurationMinutes < 0 {
		return fmt.Errorf("max duration must not be negative, got %d", o.MaxDurationMinutes)
	}
	if o.MaxDurationMinutes > 0 && o.MinDurationMinutes > o.MaxDurationMinutes {
		return fmt.Errorf("min duration %d exceeds max duration %d", o.MinDurationMinutes, o.MaxDurationMinutes)
	}
	for _, d := range o.PreferredDaysOfWeek {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("invalid preferred weekday %d", d)
		}
	}
	for id, w := range o.AttendeeWeights {
		if w < 0 {
			return fmt.Errorf("attendee weight for %q must not be negative", id)
		}
	}
	if !o.StartDate.IsZero() && !o.EndDate.IsZero() && o.StartDate.After(o.EndDate) {
		return fmt.Errorf("start date %s is after end date %s", o.StartDate, o.EndDate)
	}
	return nil
}

// PrefersTimeOfDay reports whether t is among the preferred buckets.
func (o SchedulingOptions) PrefersTimeOfDay(t TimeOfDay) bool {
	for _, p := range o.PreferredTimesOfDay {
		if p == t {
			return true
		}
	}
	return false
}

// PrefersDay reports whether d is among the preferred weekdays.
func (o SchedulingOptions) PrefersDay(d time.Weekday) bool {
	for _, p := range o.PreferredDaysOfWeek {
		if p == d {
			return true
		}
	}
	return false
}

// Weight returns the configured weight for a participant, defaulting to 1.
func (o SchedulingOptions) Weight(id string) float64 {
	if o.AttendeeWeights == nil {
		return 1
	}
	if w, ok := o.AttendeeWeights[id]; ok {
		return w
	}
	return 1
}
