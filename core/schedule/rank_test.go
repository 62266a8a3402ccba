package schedule

import (
	"testing"

	"github.com/planwise/planwise/core/model"
)

func TestRankOrder(t *testing.T) {
	a := slotAt(at(9, 0), at(10, 0), "x")
	a.Score = 80
	b := slotAt(at(11, 0), at(13, 0), "x")
	b.Score = 90
	c := slotAt(at(14, 0), at(15, 0), "x")
	c.Score = 80
	d := slotAt(at(8, 0), at(9, 0), "x")
	d.Score = 80

	ranked := Rank([]model.CandidateSlot{a, c, d, b})
	if ranked[0].Score != 90 {
		t.Fatalf("highest score must come first, got %+v", ranked[0])
	}
	if !ranked[1].Range.Start.Equal(at(8, 0)) {
		t.Fatalf("equal score and duration must order by start, got %+v", ranked[1])
	}
	if !ranked[2].Range.Start.Equal(at(9, 0)) || !ranked[3].Range.Start.Equal(at(14, 0)) {
		t.Fatalf("bad tail order: %+v", ranked)
	}
}

func TestRankDurationBreaksTies(t *testing.T) {
	short := slotAt(at(9, 0), at(10, 0), "x")
	short.Score = 80
	long := slotAt(at(11, 0), at(13, 0), "x")
	long.Score = 80

	ranked := Rank([]model.CandidateSlot{short, long})
	if ranked[0].DurationMinutes != 120 {
		t.Fatalf("longer window must win the tie, got %+v", ranked[0])
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	a := slotAt(at(9, 0), at(10, 0), "x")
	a.Score = 10
	b := slotAt(at(11, 0), at(12, 0), "x")
	b.Score = 90
	in := []model.CandidateSlot{a, b}
	_ = Rank(in)
	if in[0].Score != 10 {
		t.Fatalf("input slice was reordered")
	}
}
