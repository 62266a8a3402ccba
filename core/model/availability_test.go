package model

import (
	"testing"
	"time"
)

func TestMergeRangesCoalesces(t *testing.T) {
	ranges := []TimeRange{
		{Start: at(10, 0), End: at(11, 0)},
		{Start: at(9, 0), End: at(10, 30)},
		{Start: at(11, 0), End: at(12, 0)}, // back-to-back joins too
		{Start: at(14, 0), End: at(15, 0)},
	}
	merged := MergeRanges(ranges)
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged ranges, got %d: %+v", len(merged), merged)
	}
	if !merged[0].Start.Equal(at(9, 0)) || !merged[0].End.Equal(at(12, 0)) {
		t.Fatalf("bad first merged range %+v", merged[0])
	}
	if !merged[1].Start.Equal(at(14, 0)) {
		t.Fatalf("bad second merged range %+v", merged[1])
	}
	// Input order untouched.
	if !ranges[0].Start.Equal(at(10, 0)) {
		t.Fatalf("input slice was mutated")
	}
}

func TestAvailableRangesFiltersStatusAndInvalid(t *testing.T) {
	p := ParticipantAvailability{
		ParticipantID: "alice",
		Ranges: []AvailabilityRange{
			{Range: TimeRange{Start: at(9, 0), End: at(10, 0)}, Status: StatusAvailable},
			{Range: TimeRange{Start: at(10, 0), End: at(11, 0)}, Status: StatusUnavailable},
			{Range: TimeRange{Start: at(11, 0), End: at(12, 0)}, Status: StatusTentative},
			{Range: TimeRange{Start: at(13, 0), End: at(13, 0)}, Status: StatusAvailable}, // invalid, dropped
		},
	}
	got := p.AvailableRanges()
	if len(got) != 1 {
		t.Fatalf("expected 1 available range, got %+v", got)
	}
	if !got[0].End.Equal(at(10, 0)) {
		t.Fatalf("wrong range kept: %+v", got[0])
	}
}

func TestTotalAvailable(t *testing.T) {
	avails := []ParticipantAvailability{
		{ParticipantID: "a", Ranges: []AvailabilityRange{
			{Range: TimeRange{Start: at(9, 0), End: at(10, 0)}, Status: StatusAvailable},
		}},
		{ParticipantID: "b", Ranges: []AvailabilityRange{
			{Range: TimeRange{Start: at(9, 0), End: at(9, 30)}, Status: StatusAvailable},
			{Range: TimeRange{Start: at(12, 0), End: at(13, 0)}, Status: StatusUnavailable},
		}},
	}
	if got := TotalAvailable(avails); got != 90*time.Minute {
		t.Fatalf("expected 90m, got %s", got)
	}
}
