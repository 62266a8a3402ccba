package schedule

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/planwise/planwise/core/model"
)

func TestAnalyzePatternsEmptyInput(t *testing.T) {
	_, err := AnalyzePatterns(nil, model.SchedulingOptions{})
	if !errors.Is(err, ErrNoAvailability) {
		t.Fatalf("expected ErrNoAvailability, got %v", err)
	}

	empty := []model.ParticipantAvailability{{ParticipantID: "ghost"}}
	_, err = AnalyzePatterns(empty, model.SchedulingOptions{})
	if !errors.Is(err, ErrNoAvailability) {
		t.Fatalf("all-empty ranges must also yield ErrNoAvailability, got %v", err)
	}
}

func TestAnalyzePatternsPeaks(t *testing.T) {
	// Monday evenings dominate: both participants free 18:00-21:00 Monday,
	// one also free Tuesday morning.
	monday := at(18, 0)
	avails := []model.ParticipantAvailability{
		available("alice",
			model.TimeRange{Start: monday, End: monday.Add(3 * time.Hour)},
			model.TimeRange{Start: at(9, 0).AddDate(0, 0, 1), End: at(10, 0).AddDate(0, 0, 1)}),
		available("bob", model.TimeRange{Start: monday, End: monday.Add(3 * time.Hour)}),
	}

	report, err := AnalyzePatterns(avails, model.SchedulingOptions{MinDurationMinutes: 60})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(report.BestDays) == 0 || report.BestDays[0] != time.Monday {
		t.Fatalf("Monday must lead, got %v", report.BestDays)
	}
	if report.BestTimeOfDay != model.Evening {
		t.Fatalf("evening must lead, got %s", report.BestTimeOfDay)
	}
	if hour, ok := report.PeakHoursByDay[time.Monday]; !ok || hour < 18 || hour > 20 {
		t.Fatalf("Monday peak hour out of range: %d", hour)
	}
	if len(report.CommonWindows) == 0 {
		t.Fatalf("shared Monday window missing from report")
	}
	if len(report.RecommendedCandidates) == 0 {
		t.Fatalf("expected recommended candidates")
	}
}

func TestAnalyzePatternsStats(t *testing.T) {
	avails := []model.ParticipantAvailability{
		available("alice", model.TimeRange{Start: at(9, 0), End: at(13, 0)}),  // 4h Monday
		available("bob", model.TimeRange{Start: at(9, 0), End: at(11, 0)}),    // 2h Monday
	}
	report, err := AnalyzePatterns(avails, model.SchedulingOptions{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if math.Abs(report.Stats.AverageAvailableHours-3) > 1e-9 {
		t.Fatalf("expected 3h average, got %f", report.Stats.AverageAvailableHours)
	}
	if math.Abs(report.Stats.WeekdayShare-1) > 1e-9 {
		t.Fatalf("all hours are on Monday, weekday share must be 1, got %f", report.Stats.WeekdayShare)
	}
	var total float64
	for _, share := range report.Stats.TimeOfDayShare {
		total += share
	}
	if math.Abs(total-1) > 1e-9 {
		t.Fatalf("time-of-day shares must sum to 1, got %f", total)
	}
}

func TestTopDaysSkipsEmpty(t *testing.T) {
	var byDay [7]float64
	byDay[time.Wednesday] = 5
	byDay[time.Friday] = 3
	got := topDays(byDay, 3)
	if len(got) != 2 || got[0] != time.Wednesday || got[1] != time.Friday {
		t.Fatalf("bad top days %v", got)
	}
}
