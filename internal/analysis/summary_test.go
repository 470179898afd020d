package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mkovacevic/github-profile-analyzer/internal/types"
)

func TestBuildSummaryTimeOfDayLabels(t *testing.T) {
	tests := []struct {
		name  string
		hour  int
		label string
	}{
		{name: "morning coder", hour: 9, label: "(morning coder)"},
		{name: "afternoon coder", hour: 14, label: "(afternoon coder)"},
		{name: "evening coder", hour: 20, label: "(evening coder)"},
		{name: "noon is afternoon", hour: 12, label: "(afternoon coder)"},
		{name: "six pm is evening", hour: 18, label: "(evening coder)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := buildSummary(summaryInput{
				User:  &types.User{Login: "dev"},
				Level: "Junior",
				Activity: types.ActivityPattern{
					MostActiveDay:  "Monday",
					MostActiveHour: tt.hour,
				},
			})
			assert.Contains(t, summary, tt.label)
		})
	}
}

func TestAnalyzeSummaryReflectsActiveHour(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	user := &types.User{Login: "earlybird", CreatedAt: now.AddDate(-2, 0, 0)}
	stats := &types.ContributionStats{
		TotalPushEvents: 3,
		CommitHours:     []int{9, 9, 14},
		CommitDays:      []string{"Monday", "Monday", "Tuesday"},
	}

	analyzer := NewAnalyzer()
	result := analyzer.Analyze(user, nil, map[string]map[string]int64{}, stats, nil, now)

	assert.Contains(t, result.RecruiterSummary, "(morning coder)")
	assert.Contains(t, result.RecruiterSummary, "Most active on Mondays")
}
