package analysis

import (
	"sort"

	"github.com/mkovacevic/github-profile-analyzer/internal/types"
)

// defaultLanguageColor is used for languages missing from the color table.
const defaultLanguageColor = "#858585"

// languageColors holds GitHub's display colors for common languages.
var languageColors = map[string]string{
	"Python":           "#3572A5",
	"JavaScript":       "#f1e05a",
	"TypeScript":       "#2b7489",
	"Java":             "#b07219",
	"C++":              "#f34b7d",
	"C":                "#555555",
	"C#":               "#178600",
	"Go":               "#00ADD8",
	"Rust":             "#dea584",
	"Ruby":             "#701516",
	"PHP":              "#4F5D95",
	"Swift":            "#ffac45",
	"Kotlin":           "#F18E33",
	"Dart":             "#00B4AB",
	"Scala":            "#c22d40",
	"R":                "#198CE7",
	"Shell":            "#89e051",
	"HTML":             "#e34c26",
	"CSS":              "#563d7c",
	"Vue":              "#41b883",
	"Svelte":           "#ff3e00",
	"Jupyter Notebook": "#DA5B0B",
}

// focusPatterns maps domain labels to their characteristic languages.
// Declared order is the order focus areas are reported in.
var focusPatterns = []struct {
	Area      string
	Languages []string
}{
	{"Web Development", []string{"JavaScript", "TypeScript", "HTML", "CSS", "Vue", "React", "Angular", "Svelte", "PHP"}},
	{"Data Science", []string{"Python", "R", "Jupyter Notebook"}},
	{"Mobile Development", []string{"Swift", "Kotlin", "Dart", "Java"}},
	{"Systems Programming", []string{"C", "C++", "Rust", "Go"}},
	{"DevOps", []string{"Shell", "Python", "Go", "Dockerfile"}},
	{"Backend Development", []string{"Java", "Python", "Go", "Ruby", "PHP", "C#"}},
	{"Game Development", []string{"C++", "C#", "GDScript"}},
}

// AggregateLanguages sums byte counts per language across all repository
// language maps and returns the top 10 by byte count, with percentages of
// the aggregate total.
func AggregateLanguages(repos []types.Repository, repoLanguages map[string]map[string]int64) []types.LanguageStat {
	totals := make(map[string]int64)
	var order []string // first-seen order, keeps ties deterministic

	for _, repo := range repos {
		langs, ok := repoLanguages[repo.Name]
		if !ok {
			continue
		}
		// Within one repo the map iteration order is random; sort the
		// names so accumulation order is reproducible.
		names := make([]string, 0, len(langs))
		for name := range langs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if _, seen := totals[name]; !seen {
				order = append(order, name)
			}
			totals[name] += langs[name]
		}
	}

	var total int64
	for _, b := range totals {
		total += b
	}
	if total < 1 {
		total = 1
	}

	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]] > totals[order[j]]
	})

	languages := make([]types.LanguageStat, 0, len(order))
	for _, name := range order {
		bytes := totals[name]
		color, ok := languageColors[name]
		if !ok {
			color = defaultLanguageColor
		}
		languages = append(languages, types.LanguageStat{
			Name:       name,
			Percentage: round1(float64(bytes) / float64(total) * 100),
			Bytes:      bytes,
			Color:      color,
		})
	}

	if len(languages) > 10 {
		languages = languages[:10]
	}
	return languages
}

// DetectFocusAreas intersects the top five languages against the focus
// pattern table and returns up to three matching domains, in table order.
func DetectFocusAreas(languages []types.LanguageStat) []string {
	top := languages
	if len(top) > 5 {
		top = top[:5]
	}

	names := make(map[string]bool, len(top))
	for _, lang := range top {
		names[lang.Name] = true
	}

	areas := []string{}
	for _, pattern := range focusPatterns {
		for _, lang := range pattern.Languages {
			if names[lang] {
				areas = append(areas, pattern.Area)
				break
			}
		}
		if len(areas) == 3 {
			break
		}
	}

	return areas
}
