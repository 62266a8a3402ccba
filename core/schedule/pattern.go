package schedule

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/planwise/planwise/core/model"
)

// PatternStats summarizes availability habits across the whole group.
type PatternStats struct {
	// AverageAvailableHours is the mean declared available time per
	// participant.
	AverageAvailableHours float64 `json:"average_available_hours"`
	// WeekdayShare is the fraction of available hours falling on
	// Monday through Friday.
	WeekdayShare float64 `json:"weekday_share"`
	// TimeOfDayShare is the fraction of available hours per bucket.
	TimeOfDayShare map[model.TimeOfDay]float64 `json:"time_of_day_share"`
}

// PatternReport is the descriptive output of the analyzer. It states where
// the group tends to be free; it does not prescribe a slot.
type PatternReport struct {
	BestDays              []time.Weekday        `json:"best_days"`
	BestTimeOfDay         model.TimeOfDay       `json:"best_time_of_day"`
	PeakHoursByDay        map[time.Weekday]int  `json:"peak_hours_by_day"`
	CommonWindows         []model.CommonWindow  `json:"common_windows"`
	RecommendedCandidates []model.CandidateSlot `json:"recommended_candidates"`
	Stats                 PatternStats          `json:"stats"`
}

// hourBuckets accumulates available hours per weekday and hour of day.
type hourBuckets struct {
	byDayHour [7][24]float64
	byDay     [7]float64
	byTOD     [3]float64
	total     float64
}

// add walks the range in hour-aligned slices so fractional hours land in the
// right bucket.
func (b *hourBuckets) add(r model.TimeRange, loc *time.Location) {
	cur := r.Start.In(loc)
	end := r.End.In(loc)
	for cur.Before(end) {
		next := cur.Truncate(time.Hour).Add(time.Hour)
		if next.After(end) {
			next = end
		}
		hours := next.Sub(cur).Hours()
		day := int(cur.Weekday())
		hour := cur.Hour()
		b.byDayHour[day][hour] += hours
		b.byDay[day] += hours
		b.byTOD[model.TimeOfDayFor(cur)] += hours
		b.total += hours
		cur = next
	}
}

// AnalyzePatterns aggregates available hours per weekday and hour across all
// participants and reports the peaks, shared windows and recommended
// candidates derived from them. At least one participant must have at least
// one available range; empty input yields ErrNoAvailability since no
// meaningful statistics exist.
func AnalyzePatterns(avails []model.ParticipantAvailability, opts model.SchedulingOptions) (*PatternReport, error) {
	opts = opts.Normalized()
	if len(avails) == 0 || model.TotalAvailable(avails) == 0 {
		return nil, ErrNoAvailability
	}

	var buckets hourBuckets
	perParticipant := make([]float64, 0, len(avails))
	for _, p := range avails {
		var hours float64
		for _, r := range p.AvailableRanges() {
			buckets.add(r, opts.Location)
			hours += r.Duration().Hours()
		}
		perParticipant = append(perParticipant, hours)
	}

	bestDays := topDays(buckets.byDay, 3)
	bestTOD := bestTimeOfDay(buckets.byTOD)
	peaks := peakHours(buckets.byDayHour)

	minUsers := (len(avails) + 1) / 2
	if minUsers < 2 {
		minUsers = 1
	}
	windows, err := CommonWindows(avails, CommonWindowQuery{
		MinRequiredUsers:   minUsers,
		MinDurationMinutes: opts.MinDurationMinutes,
		StartDate:          opts.StartDate,
		EndDate:            opts.EndDate,
	})
	if err != nil {
		return nil, err
	}

	// Recommend with the derived peaks as soft preferences, never as hard
	// filters.
	recOpts := opts
	recOpts.PreferredDaysOfWeek = bestDays
	recOpts.PreferredTimesOfDay = []model.TimeOfDay{bestTOD}
	candidates, err := FindOverlapWindows(avails, recOpts)
	if err != nil {
		return nil, err
	}
	scorer := NewScorer()
	ranked := Rank(scorer.ScoreAll(candidates, participantIDs(avails), recOpts))
	if len(ranked) > recOpts.MaxSuggestions {
		ranked = ranked[:recOpts.MaxSuggestions]
	}

	weekdayHours := buckets.total - buckets.byDay[time.Saturday] - buckets.byDay[time.Sunday]
	stats := PatternStats{
		AverageAvailableHours: stat.Mean(perParticipant, nil),
		TimeOfDayShare:        make(map[model.TimeOfDay]float64, 3),
	}
	if buckets.total > 0 {
		stats.WeekdayShare = weekdayHours / buckets.total
		for tod := model.Morning; tod <= model.Evening; tod++ {
			stats.TimeOfDayShare[tod] = buckets.byTOD[tod] / buckets.total
		}
	}

	return &PatternReport{
		BestDays:              bestDays,
		BestTimeOfDay:         bestTOD,
		PeakHoursByDay:        peaks,
		CommonWindows:         windows,
		RecommendedCandidates: ranked,
		Stats:                 stats,
	}, nil
}

// topDays ranks weekdays by aggregate hours, ties going to the earlier day.
func topDays(byDay [7]float64, n int) []time.Weekday {
	days := []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}
	sort.SliceStable(days, func(i, j int) bool {
		return byDay[days[i]] > byDay[days[j]]
	})
	var out []time.Weekday
	for _, d := range days {
		if byDay[d] <= 0 || len(out) == n {
			break
		}
		out = append(out, d)
	}
	return out
}

func bestTimeOfDay(byTOD [3]float64) model.TimeOfDay {
	best := model.Morning
	for tod := model.Afternoon; tod <= model.Evening; tod++ {
		if byTOD[tod] > byTOD[best] {
			best = tod
		}
	}
	return best
}

// peakHours returns, per weekday with any availability, the hour holding the
// most aggregate available time.
func peakHours(byDayHour [7][24]float64) map[time.Weekday]int {
	peaks := make(map[time.Weekday]int)
	for day := 0; day < 7; day++ {
		bestHour, bestVal := -1, 0.0
		for hour := 0; hour < 24; hour++ {
			if byDayHour[day][hour] > bestVal {
				bestHour, bestVal = hour, byDayHour[day][hour]
			}
		}
		if bestHour >= 0 {
			peaks[time.Weekday(day)] = bestHour
		}
	}
	return peaks
}
