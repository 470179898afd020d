package types

import "time"

// AnalyzeRequest represents the request structure for the analyze endpoint.
// The query can be a username, a profile URL, or an email address.
type AnalyzeRequest struct {
	Query string `json:"query" binding:"required"`
}

// User represents a GitHub user profile as returned by the users endpoint.
type User struct {
	Login           string    `json:"login"`
	Name            string    `json:"name"`
	AvatarURL       string    `json:"avatar_url"`
	Bio             string    `json:"bio"`
	Location        string    `json:"location"`
	Company         string    `json:"company"`
	Blog            string    `json:"blog"`
	TwitterUsername string    `json:"twitter_username"`
	Email           string    `json:"email"`
	Hireable        *bool     `json:"hireable"`
	CreatedAt       time.Time `json:"created_at"`
	Followers       int       `json:"followers"`
	Following       int       `json:"following"`
	PublicRepos     int       `json:"public_repos"`
	PublicGists     int       `json:"public_gists"`
	HTMLURL         string    `json:"html_url"`
}

// Repository represents a public repository as returned by the repo listing.
type Repository struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	Language        string    `json:"language"`
	CreatedAt       time.Time `json:"created_at"`
	HTMLURL         string    `json:"html_url"`
}

// Event represents a public activity event from the event feed.
// Only the most recent pages are available upstream, so a set of events
// is always a sample, never the full history.
type Event struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// ContributionStats aggregates the sampled event feed for activity analysis.
type ContributionStats struct {
	TotalPushEvents  int      `json:"total_push_events"`
	TotalPREvents    int      `json:"total_pr_events"`
	TotalIssueEvents int      `json:"total_issue_events"`
	CommitHours      []int    `json:"commit_hours"`
	CommitDays       []string `json:"commit_days"`
}

// RateLimitInfo reports the remaining GitHub API quota.
type RateLimitInfo struct {
	Remaining int        `json:"remaining"`
	ResetAt   *time.Time `json:"reset_at"`
	HasToken  bool       `json:"has_token"`
}

// LanguageStat is one language's share of the aggregate byte distribution.
type LanguageStat struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Bytes      int64   `json:"bytes"`
	Color      string  `json:"color"`
}

// RepoHighlight is a top repository by star count.
type RepoHighlight struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	Language    string `json:"language"`
	URL         string `json:"url"`
}

// ActivityPattern describes commit rhythm derived from the sampled event feed.
// Streak fields are always 0: the public feed does not carry enough history.
type ActivityPattern struct {
	MostActiveDay        string  `json:"most_active_day"`
	MostActiveHour       int     `json:"most_active_hour"`
	TotalCommitsLastYear int     `json:"total_commits_last_year"`
	LongestStreak        int     `json:"longest_streak"`
	CurrentStreak        int     `json:"current_streak"`
	ConsistencyScore     float64 `json:"consistency_score"`
}

// CollaborationMetrics describes community engagement.
type CollaborationMetrics struct {
	PublicRepos   int      `json:"public_repos"`
	PublicGists   int      `json:"public_gists"`
	Followers     int      `json:"followers"`
	Following     int      `json:"following"`
	FollowerRatio float64  `json:"follower_ratio"`
	Organizations []string `json:"organizations"`
}

// GrowthTimeline is one year of repository creation activity.
type GrowthTimeline struct {
	Year          int      `json:"year"`
	ReposCreated  int      `json:"repos_created"`
	LanguagesUsed []string `json:"languages_used"`
	StarsEarned   int      `json:"stars_earned"`
}

// ProfileAnalysis is the complete derived output for one profile.
// It is never mutated after construction; a new query produces a new instance.
type ProfileAnalysis struct {
	// Basic info
	Username  string `json:"username"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio,omitempty"`
	Location  string `json:"location,omitempty"`
	Company   string `json:"company,omitempty"`
	Blog      string `json:"blog,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Email     string `json:"email,omitempty"`
	Hireable  *bool  `json:"hireable"`

	// Account info
	CreatedAt       time.Time `json:"created_at"`
	AccountAgeYears float64   `json:"account_age_years"`
	ProfileURL      string    `json:"profile_url"`

	// Technical skills
	Languages          []LanguageStat `json:"languages"`
	PrimaryLanguage    string         `json:"primary_language,omitempty"`
	TechDiversityScore float64        `json:"tech_diversity_score"`

	// Top repositories
	TopRepos   []RepoHighlight `json:"top_repos"`
	TotalStars int             `json:"total_stars"`
	TotalForks int             `json:"total_forks"`

	// Activity and collaboration
	Activity      ActivityPattern      `json:"activity"`
	Collaboration CollaborationMetrics `json:"collaboration"`

	// Growth
	GrowthTimeline []GrowthTimeline `json:"growth_timeline"`

	// Overall scores
	OverallScore    float64  `json:"overall_score"`
	ExperienceLevel string   `json:"experience_level"`
	FocusAreas      []string `json:"focus_areas"`

	// Recruiter brief
	RecruiterSummary string `json:"recruiter_summary"`
}
