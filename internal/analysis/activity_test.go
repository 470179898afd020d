package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkovacevic/github-profile-analyzer/internal/types"
)

func TestStableMode(t *testing.T) {
	tests := []struct {
		name     string
		samples  []int
		expected int
		ok       bool
	}{
		{
			name:    "empty samples have no mode",
			samples: nil,
			ok:      false,
		},
		{
			name:     "single value",
			samples:  []int{9},
			expected: 9,
			ok:       true,
		},
		{
			name:     "clear winner",
			samples:  []int{9, 14, 9, 22, 9},
			expected: 9,
			ok:       true,
		},
		{
			name:     "tie goes to first appearance",
			samples:  []int{14, 9, 14, 9},
			expected: 14,
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, ok := stableMode(tt.samples)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, mode)
			}
		})
	}
}

func TestAnalyzeActivity(t *testing.T) {
	stats := &types.ContributionStats{
		TotalPushEvents: 15,
		CommitHours:     []int{9, 9, 14, 9},
		CommitDays:      []string{"Tuesday", "Tuesday", "Friday"},
	}

	activity := AnalyzeActivity(stats)

	assert.Equal(t, 9, activity.MostActiveHour)
	assert.Equal(t, "Tuesday", activity.MostActiveDay)
	assert.Equal(t, 50.0, activity.ConsistencyScore)
	assert.Equal(t, 60, activity.TotalCommitsLastYear)
	assert.Equal(t, 0, activity.LongestStreak)
	assert.Equal(t, 0, activity.CurrentStreak)
}

func TestAnalyzeActivityDefaults(t *testing.T) {
	activity := AnalyzeActivity(&types.ContributionStats{})

	assert.Equal(t, 12, activity.MostActiveHour)
	assert.Equal(t, "Monday", activity.MostActiveDay)
	assert.Equal(t, 0.0, activity.ConsistencyScore)
	assert.Equal(t, 0, activity.TotalCommitsLastYear)
}

func TestAnalyzeActivityConsistencyCapped(t *testing.T) {
	stats := &types.ContributionStats{TotalPushEvents: 300}

	activity := AnalyzeActivity(stats)
	assert.Equal(t, 100.0, activity.ConsistencyScore)
}
