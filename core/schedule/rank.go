package schedule

import (
	"sort"

	"github.com/planwise/planwise/core/model"
)

// Rank sorts candidates by overall score descending, then duration
// descending, then start time ascending. The order is part of the contract:
// it makes output deterministic for identical-score candidates. The input
// slice is not modified.
func Rank(cands []model.CandidateSlot) []model.CandidateSlot {
	ranked := make([]model.CandidateSlot, len(cands))
	copy(ranked, cands)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].DurationMinutes != ranked[j].DurationMinutes {
			return ranked[i].DurationMinutes > ranked[j].DurationMinutes
		}
		return ranked[i].Range.Start.Before(ranked[j].Range.Start)
	})
	return ranked
}
