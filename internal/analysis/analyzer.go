package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/mkovacevic/github-profile-analyzer/internal/types"
)

// Analyzer turns a raw profile dataset into a ProfileAnalysis. All
// transforms are pure: identical inputs and evaluation instant produce an
// identical result.
type Analyzer struct {
	// TopRepoLimit is how many repositories the highlight list carries.
	TopRepoLimit int
}

// NewAnalyzer creates an analyzer with default settings.
func NewAnalyzer() *Analyzer {
	return &Analyzer{TopRepoLimit: 5}
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }

// accountAgeYears converts whole days since creation into years.
func accountAgeYears(createdAt, now time.Time) float64 {
	days := int(now.Sub(createdAt).Hours() / 24)
	return round1(float64(days) / 365.25)
}

// TopRepos returns the limit highest-starred repositories.
func TopRepos(repos []types.Repository, limit int) []types.RepoHighlight {
	sorted := make([]types.Repository, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StargazersCount > sorted[j].StargazersCount
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	highlights := make([]types.RepoHighlight, 0, len(sorted))
	for _, repo := range sorted {
		highlights = append(highlights, types.RepoHighlight{
			Name:        repo.Name,
			Description: repo.Description,
			Stars:       repo.StargazersCount,
			Forks:       repo.ForksCount,
			Language:    repo.Language,
			URL:         repo.HTMLURL,
		})
	}
	return highlights
}

// Collaboration computes community engagement metrics from the profile
// and organization membership.
func Collaboration(user *types.User, orgs []string) types.CollaborationMetrics {
	following := user.Following
	if following < 1 {
		following = 1
	}

	return types.CollaborationMetrics{
		PublicRepos:   user.PublicRepos,
		PublicGists:   user.PublicGists,
		Followers:     user.Followers,
		Following:     user.Following,
		FollowerRatio: round2(float64(user.Followers) / float64(following)),
		Organizations: orgs,
	}
}

// BuildGrowthTimeline groups repositories by creation year, ascending.
// Distinct language names within a year are reported sorted so the output
// is reproducible.
func BuildGrowthTimeline(repos []types.Repository) []types.GrowthTimeline {
	type yearData struct {
		repos     int
		stars     int
		languages map[string]bool
	}

	byYear := make(map[int]*yearData)
	for _, repo := range repos {
		year := repo.CreatedAt.UTC().Year()
		data, ok := byYear[year]
		if !ok {
			data = &yearData{languages: make(map[string]bool)}
			byYear[year] = data
		}
		data.repos++
		data.stars += repo.StargazersCount
		if repo.Language != "" {
			data.languages[repo.Language] = true
		}
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	timeline := make([]types.GrowthTimeline, 0, len(years))
	for _, year := range years {
		data := byYear[year]
		languages := make([]string, 0, len(data.languages))
		for lang := range data.languages {
			languages = append(languages, lang)
		}
		sort.Strings(languages)

		timeline = append(timeline, types.GrowthTimeline{
			Year:          year,
			ReposCreated:  data.repos,
			LanguagesUsed: languages,
			StarsEarned:   data.stars,
		})
	}
	return timeline
}

// OverallScore sums five capped sub-scores into a 0-100 developer score.
func OverallScore(repoCount, totalStars, languageCount int, consistencyScore float64, followers, orgCount int) float64 {
	repoScore := math.Min(25, float64(repoCount)*1.5)
	starScore := math.Min(25, float64(totalStars)*0.5)
	diversityScore := math.Min(15, float64(languageCount)*2)
	activityScore := math.Min(20, consistencyScore*0.2)
	engagementScore := math.Min(15, float64(followers)/10+float64(orgCount)*2)

	return round1(repoScore + starScore + diversityScore + activityScore + engagementScore)
}

// ExperienceLevel maps score, account age, and repo count onto ordered
// tiers; the first matching tier wins.
func ExperienceLevel(accountAge float64, repoCount int, score float64) string {
	switch {
	case score >= 70 || (accountAge >= 5 && repoCount >= 30):
		return "Expert"
	case score >= 50 || (accountAge >= 3 && repoCount >= 15):
		return "Senior"
	case score >= 30 || (accountAge >= 1 && repoCount >= 5):
		return "Mid-Level"
	default:
		return "Junior"
	}
}

// Analyze performs the complete profile analysis. now is the evaluation
// instant; passing it explicitly keeps the result deterministic within a
// run.
func (a *Analyzer) Analyze(
	user *types.User,
	repos []types.Repository,
	repoLanguages map[string]map[string]int64,
	stats *types.ContributionStats,
	orgs []string,
	now time.Time,
) *types.ProfileAnalysis {
	accountAge := accountAgeYears(user.CreatedAt, now)
	languages := AggregateLanguages(repos, repoLanguages)
	topRepos := TopRepos(repos, a.TopRepoLimit)
	activity := AnalyzeActivity(stats)
	collaboration := Collaboration(user, orgs)
	timeline := BuildGrowthTimeline(repos)
	focusAreas := DetectFocusAreas(languages)

	totalStars := 0
	totalForks := 0
	for _, repo := range repos {
		totalStars += repo.StargazersCount
		totalForks += repo.ForksCount
	}

	score := OverallScore(len(repos), totalStars, len(languages), activity.ConsistencyScore, user.Followers, len(orgs))
	level := ExperienceLevel(accountAge, len(repos), score)

	primaryLanguage := ""
	if len(languages) > 0 {
		primaryLanguage = languages[0].Name
	}

	summary := buildSummary(summaryInput{
		User:          user,
		Languages:     languages,
		RepoCount:     len(repos),
		TotalStars:    totalStars,
		Activity:      activity,
		Collaboration: collaboration,
		Level:         level,
		FocusAreas:    focusAreas,
		AccountAge:    accountAge,
	})

	return &types.ProfileAnalysis{
		Username:  user.Login,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		Bio:       user.Bio,
		Location:  user.Location,
		Company:   user.Company,
		Blog:      user.Blog,
		Twitter:   user.TwitterUsername,
		Email:     user.Email,
		Hireable:  user.Hireable,

		CreatedAt:       user.CreatedAt,
		AccountAgeYears: accountAge,
		ProfileURL:      user.HTMLURL,

		Languages:          languages,
		PrimaryLanguage:    primaryLanguage,
		TechDiversityScore: round1(math.Min(100, float64(len(languages))*12)),

		TopRepos:   topRepos,
		TotalStars: totalStars,
		TotalForks: totalForks,

		Activity:      activity,
		Collaboration: collaboration,

		GrowthTimeline: timeline,

		OverallScore:    score,
		ExperienceLevel: level,
		FocusAreas:      focusAreas,

		RecruiterSummary: summary,
	}
}
