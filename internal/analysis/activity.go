package analysis

import (
	"github.com/mkovacevic/github-profile-analyzer/internal/types"
)

// stableMode returns the most frequent value in samples. Ties are broken
// by first appearance in the sample stream, so the result is deterministic
// for a given input order.
func stableMode[T comparable](samples []T) (T, bool) {
	var zero T
	if len(samples) == 0 {
		return zero, false
	}

	counts := make(map[T]int, len(samples))
	var order []T
	for _, s := range samples {
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}

	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best, true
}

// AnalyzeActivity derives the activity pattern from the sampled event
// feed. The commit total is an estimate (the feed only covers the most
// recent pages), and streaks stay at 0: the sample is too shallow to
// compute them honestly.
func AnalyzeActivity(stats *types.ContributionStats) types.ActivityPattern {
	mostActiveHour := 12
	if hour, ok := stableMode(stats.CommitHours); ok {
		mostActiveHour = hour
	}

	mostActiveDay := "Monday"
	if day, ok := stableMode(stats.CommitDays); ok {
		mostActiveDay = day
	}

	consistency := float64(stats.TotalPushEvents) / 30 * 100
	if consistency > 100 {
		consistency = 100
	}

	return types.ActivityPattern{
		MostActiveDay:        mostActiveDay,
		MostActiveHour:       mostActiveHour,
		TotalCommitsLastYear: stats.TotalPushEvents * 4,
		LongestStreak:        0,
		CurrentStreak:        0,
		ConsistencyScore:     round1(consistency),
	}
}
