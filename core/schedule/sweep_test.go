package schedule

import (
	"reflect"
	"testing"
	"time"

	"github.com/planwise/planwise/core/model"
)

// June 2 2025 is a Monday.
func at(h, m int) time.Time {
	return time.Date(2025, 6, 2, h, m, 0, 0, time.UTC)
}

func available(id string, ranges ...model.TimeRange) model.ParticipantAvailability {
	p := model.ParticipantAvailability{ParticipantID: id}
	for _, r := range ranges {
		p.Ranges = append(p.Ranges, model.AvailabilityRange{Range: r, Status: model.StatusAvailable})
	}
	return p
}

func findSlot(t *testing.T, slots []model.CandidateSlot, start, end time.Time) model.CandidateSlot {
	t.Helper()
	for _, s := range slots {
		if s.Range.Start.Equal(start) && s.Range.End.Equal(end) {
			return s
		}
	}
	t.Fatalf("no slot [%s, %s) among %+v", start, end, slots)
	return model.CandidateSlot{}
}

func TestFindOverlapWindowsSubWindowWithAllAttendees(t *testing.T) {
	avails := []model.ParticipantAvailability{
		available("alice", model.TimeRange{Start: at(18, 0), End: at(20, 0)}),
		available("bob", model.TimeRange{Start: at(19, 0), End: at(21, 0)}),
		available("carol", model.TimeRange{Start: at(18, 0), End: at(20, 0)}),
	}
	opts := model.SchedulingOptions{MinAttendees: 2, MinDurationMinutes: 60}

	slots, err := FindOverlapWindows(avails, opts)
	if err != nil {
		t.Fatalf("overlap: %v", err)
	}

	full := findSlot(t, slots, at(19, 0), at(20, 0))
	if !reflect.DeepEqual(full.AttendeeIDs, []string{"alice", "bob", "carol"}) {
		t.Fatalf("expected all three attendees, got %v", full.AttendeeIDs)
	}

	wide := findSlot(t, slots, at(18, 0), at(20, 0))
	if !reflect.DeepEqual(wide.AttendeeIDs, []string{"alice", "carol"}) {
		t.Fatalf("wide window must only list full coverers, got %v", wide.AttendeeIDs)
	}
}

func TestFindOverlapWindowsExcludesUnavailable(t *testing.T) {
	avails := []model.ParticipantAvailability{
		{ParticipantID: "alice", Ranges: []model.AvailabilityRange{
			{Range: model.TimeRange{Start: at(18, 0), End: at(20, 0)}, Status: model.StatusUnavailable},
		}},
		available("bob", model.TimeRange{Start: at(18, 0), End: at(20, 0)}),
	}

	slots, err := FindOverlapWindows(avails, model.SchedulingOptions{MinAttendees: 1, MinDurationMinutes: 60})
	if err != nil {
		t.Fatalf("overlap: %v", err)
	}
	got := findSlot(t, slots, at(18, 0), at(20, 0))
	if !reflect.DeepEqual(got.AttendeeIDs, []string{"bob"}) {
		t.Fatalf("unavailable participant must be excluded, got %v", got.AttendeeIDs)
	}

	slots, err = FindOverlapWindows(avails, model.SchedulingOptions{MinAttendees: 2, MinDurationMinutes: 60})
	if err != nil {
		t.Fatalf("overlap: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no candidates below the attendee threshold, got %+v", slots)
	}
}

func TestFindOverlapWindowsMergesSelfOverlap(t *testing.T) {
	avails := []model.ParticipantAvailability{
		available("alice",
			model.TimeRange{Start: at(9, 0), End: at(10, 30)},
			model.TimeRange{Start: at(10, 0), End: at(11, 0)},
			model.TimeRange{Start: at(11, 0), End: at(12, 0)}),
		available("bob", model.TimeRange{Start: at(9, 0), End: at(12, 0)}),
	}

	slots, err := FindOverlapWindows(avails, model.SchedulingOptions{MinAttendees: 2, MinDurationMinutes: 30})
	if err != nil {
		t.Fatalf("overlap: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("fragmented but continuous coverage must yield one window, got %+v", slots)
	}
	if !slots[0].Range.Start.Equal(at(9, 0)) || !slots[0].Range.End.Equal(at(12, 0)) {
		t.Fatalf("bad window %+v", slots[0].Range)
	}
}

func TestFindOverlapWindowsTruncatesToMaxDuration(t *testing.T) {
	avails := []model.ParticipantAvailability{
		available("alice", model.TimeRange{Start: at(9, 0), End: at(13, 0)}),
		available("bob", model.TimeRange{Start: at(9, 0), End: at(13, 0)}),
	}

	slots, err := FindOverlapWindows(avails, model.SchedulingOptions{
		MinAttendees: 2, MinDurationMinutes: 60, MaxDurationMinutes: 120,
	})
	if err != nil {
		t.Fatalf("overlap: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected a single truncated window, got %+v", slots)
	}
	if slots[0].DurationMinutes != 120 || !slots[0].Range.Start.Equal(at(9, 0)) {
		t.Fatalf("window must be truncated from its start: %+v", slots[0])
	}
}

func TestFindOverlapWindowsCoverageExactness(t *testing.T) {
	avails := []model.ParticipantAvailability{
		available("alice", model.TimeRange{Start: at(9, 0), End: at(12, 0)}),
		available("bob", model.TimeRange{Start: at(10, 0), End: at(11, 0)}),
		available("carol", model.TimeRange{Start: at(9, 30), End: at(12, 0)}),
	}
	slots, err := FindOverlapWindows(avails, model.SchedulingOptions{MinAttendees: 1, MinDurationMinutes: 30})
	if err != nil {
		t.Fatalf("overlap: %v", err)
	}
	byID := map[string][]model.TimeRange{}
	for _, p := range avails {
		byID[p.ParticipantID] = p.AvailableRanges()
	}
	for _, s := range slots {
		for _, id := range s.AttendeeIDs {
			covered := false
			for _, r := range byID[id] {
				if r.Contains(s.Range) {
					covered = true
				}
			}
			if !covered {
				t.Fatalf("participant %s listed on window %+v without full coverage", id, s.Range)
			}
		}
	}
}

func TestFindOverlapWindowsClampsToDateBounds(t *testing.T) {
	avails := []model.ParticipantAvailability{
		available("alice", model.TimeRange{Start: at(9, 0), End: at(13, 0)}),
		available("bob", model.TimeRange{Start: at(9, 0), End: at(13, 0)}),
	}
	slots, err := FindOverlapWindows(avails, model.SchedulingOptions{
		MinAttendees: 2, MinDurationMinutes: 30,
		StartDate: at(10, 0), EndDate: at(12, 0),
	})
	if err != nil {
		t.Fatalf("overlap: %v", err)
	}
	if len(slots) != 1 || !slots[0].Range.Start.Equal(at(10, 0)) || !slots[0].Range.End.Equal(at(12, 0)) {
		t.Fatalf("window must be clamped to the bounds, got %+v", slots)
	}
}

func TestFindOverlapWindowsDeterministic(t *testing.T) {
	avails := []model.ParticipantAvailability{
		available("carol", model.TimeRange{Start: at(18, 0), End: at(20, 0)}),
		available("alice", model.TimeRange{Start: at(18, 0), End: at(20, 0)}),
		available("bob", model.TimeRange{Start: at(19, 0), End: at(21, 0)}),
	}
	opts := model.SchedulingOptions{MinAttendees: 2, MinDurationMinutes: 30}

	first, err := FindOverlapWindows(avails, opts)
	if err != nil {
		t.Fatalf("overlap: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := FindOverlapWindows(avails, opts)
		if err != nil {
			t.Fatalf("overlap: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d diverged:\n%+v\n%+v", i, first, again)
		}
	}
}

func TestFindOverlapWindowsInvalidOptions(t *testing.T) {
	_, err := FindOverlapWindows(nil, model.SchedulingOptions{MinAttendees: -1})
	if err == nil {
		t.Fatalf("expected validation error")
	}
}
