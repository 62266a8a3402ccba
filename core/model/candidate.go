package model

import (
	"sort"
	"time"
)

// TimeOfDay buckets an instant into the coarse categories used by the
// scoring engine and the pattern analyzer.
type TimeOfDay int

const (
	Morning   TimeOfDay = iota // 05:00-11:59
	Afternoon                  // 12:00-16:59
	Evening                    // everything else
)

// String implements fmt.Stringer.
func (t TimeOfDay) String() string {
	switch t {
	case Morning:
		return "morning"
	case Afternoon:
		return "afternoon"
	case Evening:
		return "evening"
	default:
		return "unknown"
	}
}

// TimeOfDayFor categorizes the local hour of t.
func TimeOfDayFor(t time.Time) TimeOfDay {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return Morning
	case h >= 12 && h < 17:
		return Afternoon
	default:
		return Evening
	}
}

// ScoreBreakdown carries the individual factors behind an overall score.
type ScoreBreakdown struct {
	Attendance           int `json:"attendance"`
	AttendancePercentage int `json:"attendance_percentage"`
	TimeOfDay            int `json:"time_of_day"`
	DayOfWeek            int `json:"day_of_week"`
}

// CandidateSlot is a scored, attendee-annotated meeting window. AttendeeIDs
// is the exact set of participants whose available ranges fully cover the
// window, not merely overlap it.
type CandidateSlot struct {
	Range           TimeRange      `json:"range"`
	AttendeeIDs     []string       `json:"attendee_ids"`
	Score           int            `json:"score"`
	Breakdown       ScoreBreakdown `json:"breakdown"`
	TimeOfDay       TimeOfDay      `json:"time_of_day"`
	DurationMinutes int            `json:"duration_minutes"`
}

// NewCandidateSlot builds an unscored slot from a window and its attendees.
// The attendee list is copied and sorted so identical inputs produce
// identical slots.
func NewCandidateSlot(r TimeRange, attendees []string) CandidateSlot {
	ids := make([]string, len(attendees))
	copy(ids, attendees)
	sort.Strings(ids)
	return CandidateSlot{
		Range:           r,
		AttendeeIDs:     ids,
		TimeOfDay:       TimeOfDayFor(r.Start),
		DurationMinutes: r.Minutes(),
	}
}

// HasAttendee reports whether id is part of the slot's attendee set.
func (c CandidateSlot) HasAttendee(id string) bool {
	for _, a := range c.AttendeeIDs {
		if a == id {
			return true
		}
	}
	return false
}

// ConflictResolution pairs a conflicted slot with its ranked alternatives.
type ConflictResolution struct {
	Original     CandidateSlot    `json:"original"`
	Conflicts    []CommittedEvent `json:"conflicts"`
	Alternatives []CandidateSlot  `json:"alternatives"`
}

// CommonWindow is a descriptive shared-free-time window. Unlike a
// CandidateSlot it carries no score.
type CommonWindow struct {
	Range           TimeRange `json:"range"`
	ParticipantIDs  []string  `json:"participant_ids"`
	DurationMinutes int       `json:"duration_minutes"`
}
