package schedule

import (
	"math"
	"time"

	"github.com/planwise/planwise/core/model"
)

// Scoring constants. The preference-match value and the attendance curve are
// contractual; the fallback ladders are tunable defaults.
const (
	preferenceMatchScore = 100
	preferenceMissScore  = 50

	// Attendance curve: min(100, 120·pct^0.7). Concave so full attendance
	// outranks partial attendance more than linear scaling would.
	attendanceCurveGain     = 120.0
	attendanceCurveExponent = 0.7
)

// Fallback time-of-day ladder when no preference is given: afternoons work
// for most groups, evenings next, mornings last.
var timeOfDayFallback = map[model.TimeOfDay]int{
	model.Afternoon: 75,
	model.Evening:   65,
	model.Morning:   50,
}

// Fallback day-of-week ladder: weekends first, then Friday.
func dayOfWeekFallback(d time.Weekday) int {
	switch d {
	case time.Saturday, time.Sunday:
		return 80
	case time.Friday:
		return 70
	default:
		return 55
	}
}

// Scorer computes candidate scores. The zero value is ready to use; the
// weight fields control how the factors blend and are renormalized to sum
// to one on every call.
type Scorer struct {
	AttendanceWeight float64
	TimeOfDayWeight  float64
	DayOfWeekWeight  float64
}

// NewScorer returns a scorer with the default factor weights.
func NewScorer() Scorer {
	return Scorer{
		AttendanceWeight: 0.4,
		TimeOfDayWeight:  0.3,
		DayOfWeekWeight:  0.3,
	}
}

// weightsFor adapts the blend to the options: attendance dominates when the
// caller prioritizes it, and explicit preferences signal intentional
// weighting for their factor.
func (s Scorer) weightsFor(opts model.SchedulingOptions) (wa, wt, wd float64) {
	wa, wt, wd = s.AttendanceWeight, s.TimeOfDayWeight, s.DayOfWeekWeight
	if opts.PrioritizeAttendance {
		wa = 0.7
		wt, wd = 0.15, 0.15
	}
	if len(opts.PreferredTimesOfDay) > 0 {
		wt += 0.1
	}
	if len(opts.PreferredDaysOfWeek) > 0 {
		wd += 0.1
	}
	total := wa + wt + wd
	return wa / total, wt / total, wd / total
}

// attendanceScore applies the concave curve to the attendance percentage.
func attendanceScore(pct int) int {
	curved := attendanceCurveGain * math.Pow(float64(pct)/100, attendanceCurveExponent)
	return int(math.Round(math.Min(100, curved)))
}

// attendancePercentage computes the share of participants attending. When
// attendee weights are configured the share is weighted instead of a raw
// head count.
func attendancePercentage(c model.CandidateSlot, participants []string, opts model.SchedulingOptions) int {
	if len(participants) == 0 {
		return 0
	}
	if len(opts.AttendeeWeights) > 0 {
		var attending, total float64
		for _, id := range participants {
			w := opts.Weight(id)
			total += w
			if c.HasAttendee(id) {
				attending += w
			}
		}
		if total == 0 {
			return 0
		}
		return int(math.Round(100 * attending / total))
	}
	return int(math.Round(100 * float64(len(c.AttendeeIDs)) / float64(len(participants))))
}

func (s Scorer) timeOfDayScore(t model.TimeOfDay, opts model.SchedulingOptions) int {
	if len(opts.PreferredTimesOfDay) > 0 {
		if opts.PrefersTimeOfDay(t) {
			return preferenceMatchScore
		}
		return preferenceMissScore
	}
	return timeOfDayFallback[t]
}

func (s Scorer) dayOfWeekScore(d time.Weekday, opts model.SchedulingOptions) int {
	if len(opts.PreferredDaysOfWeek) > 0 {
		if opts.PrefersDay(d) {
			return preferenceMatchScore
		}
		return preferenceMissScore
	}
	return dayOfWeekFallback(d)
}

// Score computes the candidate's factor scores and blended overall score.
// It is a pure function: identical inputs always yield identical scores.
func (s Scorer) Score(c model.CandidateSlot, participants []string, opts model.SchedulingOptions) (int, model.ScoreBreakdown) {
	opts = opts.Normalized()
	local := c.Range.Start.In(opts.Location)

	pct := attendancePercentage(c, participants, opts)
	breakdown := model.ScoreBreakdown{
		AttendancePercentage: pct,
		Attendance:           attendanceScore(pct),
		TimeOfDay:            s.timeOfDayScore(model.TimeOfDayFor(local), opts),
		DayOfWeek:            s.dayOfWeekScore(local.Weekday(), opts),
	}
	wa, wt, wd := s.weightsFor(opts)
	overall := math.Round(wa*float64(breakdown.Attendance) +
		wt*float64(breakdown.TimeOfDay) +
		wd*float64(breakdown.DayOfWeek))
	return int(overall), breakdown
}

// ScoreAll returns a copy of the candidates with scores filled in.
func (s Scorer) ScoreAll(cands []model.CandidateSlot, participants []string, opts model.SchedulingOptions) []model.CandidateSlot {
	scored := make([]model.CandidateSlot, len(cands))
	for i, c := range cands {
		overall, breakdown := s.Score(c, participants, opts)
		c.Score = overall
		c.Breakdown = breakdown
		scored[i] = c
	}
	return scored
}
