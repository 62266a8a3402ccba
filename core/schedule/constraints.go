package schedule

import (
	"math"
	"time"

	"github.com/planwise/planwise/core/model"
)

// Soft-constraint score adjustments.
const (
	categoricalBonus   = 10
	categoricalPenalty = -10
	attendancePenalty  = -15
	durationBonusMax   = 15
)

// TimeOfDayConstraint restricts candidates to the given buckets.
type TimeOfDayConstraint struct {
	Allowed  []model.TimeOfDay
	Required bool
}

func (c TimeOfDayConstraint) matches(slot model.CandidateSlot) bool {
	for _, t := range c.Allowed {
		if slot.TimeOfDay == t {
			return true
		}
	}
	return false
}

// DayOfWeekConstraint restricts candidates to the given weekdays.
type DayOfWeekConstraint struct {
	Allowed  []time.Weekday
	Required bool
}

func (c DayOfWeekConstraint) matches(slot model.CandidateSlot) bool {
	for _, d := range c.Allowed {
		if slot.Range.Start.Weekday() == d {
			return true
		}
	}
	return false
}

// DurationConstraint rewards candidates close to an ideal duration and can
// require a minimum.
type DurationConstraint struct {
	IdealMinutes int
	MinMinutes   int
	Required     bool
}

// AttendanceConstraint enforces or rewards attendance thresholds. Both
// fields are optional; zero disables the corresponding check.
type AttendanceConstraint struct {
	MinCount      int
	MinPercentage int
	Required      bool
}

// ConstraintSet groups the optional per-category constraints applied after
// scoring. Required constraints drop failing candidates; soft constraints
// adjust the score instead.
type ConstraintSet struct {
	TimeOfDay  *TimeOfDayConstraint
	DayOfWeek  *DayOfWeekConstraint
	Duration   *DurationConstraint
	Attendance *AttendanceConstraint
}

// durationBonus scales with proximity to the ideal duration, from
// durationBonusMax at an exact match down to zero at twice the distance.
func durationBonus(minutes, ideal int) int {
	if ideal <= 0 {
		return 0
	}
	dist := math.Abs(float64(minutes-ideal)) / float64(ideal)
	if dist >= 1 {
		return 0
	}
	return int(math.Round(durationBonusMax * (1 - dist)))
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// ApplyConstraints filters and re-scores candidates against the constraint
// set, then re-ranks the survivors. totalParticipants is needed for the
// percentage check. The input slice is not modified.
func ApplyConstraints(cands []model.CandidateSlot, totalParticipants int, cs ConstraintSet) []model.CandidateSlot {
	var kept []model.CandidateSlot
	for _, c := range cands {
		adjusted := c.Score
		drop := false

		if cs.TimeOfDay != nil && len(cs.TimeOfDay.Allowed) > 0 {
			switch {
			case cs.TimeOfDay.matches(c):
				adjusted += categoricalBonus
			case cs.TimeOfDay.Required:
				drop = true
			default:
				adjusted += categoricalPenalty
			}
		}
		if cs.DayOfWeek != nil && len(cs.DayOfWeek.Allowed) > 0 {
			switch {
			case cs.DayOfWeek.matches(c):
				adjusted += categoricalBonus
			case cs.DayOfWeek.Required:
				drop = true
			default:
				adjusted += categoricalPenalty
			}
		}
		if cs.Duration != nil {
			if cs.Duration.MinMinutes > 0 && c.DurationMinutes < cs.Duration.MinMinutes {
				if cs.Duration.Required {
					drop = true
				} else {
					adjusted += categoricalPenalty
				}
			} else {
				adjusted += durationBonus(c.DurationMinutes, cs.Duration.IdealMinutes)
			}
		}
		if cs.Attendance != nil {
			ok := true
			if cs.Attendance.MinCount > 0 && len(c.AttendeeIDs) < cs.Attendance.MinCount {
				ok = false
			}
			if cs.Attendance.MinPercentage > 0 && totalParticipants > 0 {
				pct := int(math.Round(100 * float64(len(c.AttendeeIDs)) / float64(totalParticipants)))
				if pct < cs.Attendance.MinPercentage {
					ok = false
				}
			}
			if !ok {
				if cs.Attendance.Required {
					drop = true
				} else {
					adjusted += attendancePenalty
				}
			}
		}

		if drop {
			continue
		}
		c.Score = clampScore(adjusted)
		kept = append(kept, c)
	}
	return Rank(kept)
}
