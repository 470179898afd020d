package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkovacevic/github-profile-analyzer/internal/types"
)

func TestAggregateLanguages(t *testing.T) {
	repos := []types.Repository{
		{Name: "alpha"},
		{Name: "beta"},
		{Name: "gamma"},
	}
	repoLanguages := map[string]map[string]int64{
		"alpha": {"Go": 6000, "Shell": 1000},
		"beta":  {"Go": 2000, "Python": 1000},
		// gamma has no language data
	}

	languages := AggregateLanguages(repos, repoLanguages)
	require.Len(t, languages, 3)

	assert.Equal(t, "Go", languages[0].Name)
	assert.Equal(t, int64(8000), languages[0].Bytes)
	assert.Equal(t, 80.0, languages[0].Percentage)
	assert.Equal(t, "#00ADD8", languages[0].Color)

	var sum float64
	for _, lang := range languages {
		sum += lang.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.5)
}

func TestAggregateLanguagesEmpty(t *testing.T) {
	languages := AggregateLanguages(nil, map[string]map[string]int64{})
	assert.Empty(t, languages)
}

func TestAggregateLanguagesCapsAtTen(t *testing.T) {
	repoLanguages := map[string]map[string]int64{
		"poly": {
			"A": 120, "B": 110, "C": 100, "D": 90, "E": 80, "F": 70,
			"G": 60, "H": 50, "I": 40, "J": 30, "K": 20, "L": 10,
		},
	}
	repos := []types.Repository{{Name: "poly"}}

	languages := AggregateLanguages(repos, repoLanguages)
	require.Len(t, languages, 10)
	assert.Equal(t, "A", languages[0].Name)
	assert.Equal(t, "J", languages[9].Name)
}

func TestAggregateLanguagesUnknownColor(t *testing.T) {
	repoLanguages := map[string]map[string]int64{
		"esoteric": {"Brainfuck": 100},
	}
	repos := []types.Repository{{Name: "esoteric"}}

	languages := AggregateLanguages(repos, repoLanguages)
	require.Len(t, languages, 1)
	assert.Equal(t, defaultLanguageColor, languages[0].Color)
}

func TestAggregateLanguagesDeterministicTies(t *testing.T) {
	repoLanguages := map[string]map[string]int64{
		"tied": {"Zig": 500, "Ada": 500, "Nim": 500},
	}
	repos := []types.Repository{{Name: "tied"}}

	first := AggregateLanguages(repos, repoLanguages)
	for i := 0; i < 20; i++ {
		again := AggregateLanguages(repos, repoLanguages)
		assert.Equal(t, first, again)
	}
}

func TestDetectFocusAreas(t *testing.T) {
	tests := []struct {
		name      string
		languages []types.LanguageStat
		expected  []string
	}{
		{
			name:      "no languages means no focus areas",
			languages: nil,
			expected:  []string{},
		},
		{
			name: "web stack",
			languages: []types.LanguageStat{
				{Name: "JavaScript"}, {Name: "HTML"}, {Name: "CSS"},
			},
			expected: []string{"Web Development"},
		},
		{
			name: "python spans several domains, capped at three",
			languages: []types.LanguageStat{
				{Name: "Python"}, {Name: "Go"}, {Name: "Rust"},
			},
			expected: []string{"Data Science", "Systems Programming", "DevOps"},
		},
		{
			name: "only the top five languages are considered",
			languages: []types.LanguageStat{
				{Name: "Zig"}, {Name: "Ada"}, {Name: "Nim"},
				{Name: "Crystal"}, {Name: "Elm"}, {Name: "Python"},
			},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectFocusAreas(tt.languages))
		})
	}
}
