package schedule

import (
	"testing"
	"time"

	"github.com/planwise/planwise/core/model"
)

func slotAt(start, end time.Time, attendees ...string) model.CandidateSlot {
	return model.NewCandidateSlot(model.TimeRange{Start: start, End: end}, attendees)
}

func TestAttendanceScoreCurve(t *testing.T) {
	if got := attendanceScore(100); got != 100 {
		t.Fatalf("full attendance must score 100, got %d", got)
	}
	if got := attendanceScore(0); got != 0 {
		t.Fatalf("zero attendance must score 0, got %d", got)
	}
	// Concave: half attendance scores well above linear 50.
	if got := attendanceScore(50); got <= 50 || got > 100 {
		t.Fatalf("curve must lift partial attendance, got %d", got)
	}
}

func TestAttendanceMonotonicity(t *testing.T) {
	participants := []string{"a", "b", "c", "d", "e"}
	opts := model.SchedulingOptions{}
	prev := -1
	for n := 0; n <= len(participants); n++ {
		slot := slotAt(at(10, 0), at(11, 0), participants[:n]...)
		pct := attendancePercentage(slot, participants, opts)
		score := attendanceScore(pct)
		if score < prev {
			t.Fatalf("attendance score decreased at %d attendees: %d < %d", n, score, prev)
		}
		prev = score
	}
}

func TestWeightedAttendancePercentage(t *testing.T) {
	participants := []string{"lead", "a", "b"}
	opts := model.SchedulingOptions{AttendeeWeights: map[string]float64{"lead": 2}}
	// lead attends alone: 2 of 4 total weight.
	slot := slotAt(at(10, 0), at(11, 0), "lead")
	if pct := attendancePercentage(slot, participants, opts); pct != 50 {
		t.Fatalf("expected weighted 50%%, got %d", pct)
	}
	// a attends alone: 1 of 4.
	slot = slotAt(at(10, 0), at(11, 0), "a")
	if pct := attendancePercentage(slot, participants, opts); pct != 25 {
		t.Fatalf("expected weighted 25%%, got %d", pct)
	}
}

func TestTimeOfDayPreference(t *testing.T) {
	s := NewScorer()
	opts := model.SchedulingOptions{PreferredTimesOfDay: []model.TimeOfDay{model.Morning}}
	if got := s.timeOfDayScore(model.Morning, opts); got != preferenceMatchScore {
		t.Fatalf("preference match: got %d", got)
	}
	if got := s.timeOfDayScore(model.Evening, opts); got != preferenceMissScore {
		t.Fatalf("preference miss: got %d", got)
	}
	// Fallback ladder when no preference is set.
	none := model.SchedulingOptions{}
	if s.timeOfDayScore(model.Afternoon, none) <= s.timeOfDayScore(model.Morning, none) {
		t.Fatalf("fallback must rank afternoons above mornings")
	}
}

func TestDayOfWeekPreference(t *testing.T) {
	s := NewScorer()
	opts := model.SchedulingOptions{PreferredDaysOfWeek: []time.Weekday{time.Tuesday}}
	if got := s.dayOfWeekScore(time.Tuesday, opts); got != preferenceMatchScore {
		t.Fatalf("preference match: got %d", got)
	}
	if got := s.dayOfWeekScore(time.Monday, opts); got != preferenceMissScore {
		t.Fatalf("preference miss: got %d", got)
	}
	none := model.SchedulingOptions{}
	if s.dayOfWeekScore(time.Saturday, none) <= s.dayOfWeekScore(time.Wednesday, none) {
		t.Fatalf("fallback must rank weekends above midweek")
	}
}

func TestWeightsRenormalize(t *testing.T) {
	s := NewScorer()
	cases := []model.SchedulingOptions{
		{},
		{PrioritizeAttendance: true},
		{PreferredTimesOfDay: []model.TimeOfDay{model.Morning}},
		{PreferredDaysOfWeek: []time.Weekday{time.Monday}, PrioritizeAttendance: true},
	}
	for _, opts := range cases {
		wa, wt, wd := s.weightsFor(opts)
		if sum := wa + wt + wd; sum < 0.999 || sum > 1.001 {
			t.Fatalf("weights must sum to 1, got %f for %+v", sum, opts)
		}
	}
}

func TestPrioritizeAttendanceDominates(t *testing.T) {
	s := NewScorer()
	participants := []string{"a", "b", "c"}
	// Full house at a weak time versus two attendees at a strong time.
	full := slotAt(at(8, 0), at(9, 0), "a", "b", "c")    // Monday morning
	partial := slotAt(at(14, 0), at(15, 0), "a", "b")    // Monday afternoon
	opts := model.SchedulingOptions{PrioritizeAttendance: true}

	fullScore, _ := s.Score(full, participants, opts)
	partialScore, _ := s.Score(partial, participants, opts)
	if fullScore <= partialScore {
		t.Fatalf("full attendance must win under PrioritizeAttendance: %d vs %d", fullScore, partialScore)
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := NewScorer()
	participants := []string{"a", "b", "c"}
	slot := slotAt(at(14, 0), at(15, 0), "a", "b")
	opts := model.SchedulingOptions{PreferredTimesOfDay: []model.TimeOfDay{model.Afternoon}}

	first, firstBreakdown := s.Score(slot, participants, opts)
	for i := 0; i < 5; i++ {
		again, b := s.Score(slot, participants, opts)
		if again != first || b != firstBreakdown {
			t.Fatalf("score diverged: %d/%+v vs %d/%+v", first, firstBreakdown, again, b)
		}
	}
}

func TestScoreBreakdownPercentage(t *testing.T) {
	s := NewScorer()
	participants := []string{"a", "b", "c"}
	slot := slotAt(at(19, 0), at(20, 0), "a", "b", "c")
	_, breakdown := s.Score(slot, participants, model.SchedulingOptions{})
	if breakdown.AttendancePercentage != 100 {
		t.Fatalf("expected 100%% attendance, got %d", breakdown.AttendancePercentage)
	}
	if breakdown.Attendance != 100 {
		t.Fatalf("expected max attendance score, got %d", breakdown.Attendance)
	}
}
