package profile

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkovacevic/github-profile-analyzer/internal/analysis"
	"github.com/mkovacevic/github-profile-analyzer/internal/cache"
	"github.com/mkovacevic/github-profile-analyzer/internal/github"
	"github.com/mkovacevic/github-profile-analyzer/internal/resolve"
	"github.com/mkovacevic/github-profile-analyzer/internal/types"
)

// languageFetchLimit caps how many repositories get a language lookup per
// analysis; the listing is last-updated order, so these are the freshest.
const languageFetchLimit = 20

// Service orchestrates the full analysis pipeline: resolve the query,
// aggregate the raw dataset through the GitHub client, and run the
// metrics engine over it.
type Service struct {
	client   *github.Client
	resolver *resolve.Resolver
	analyzer *analysis.Analyzer
	cache    *cache.Cache
}

// dataset is one profile's complete raw input for the metrics engine.
type dataset struct {
	user          *types.User
	repos         []types.Repository
	repoLanguages map[string]map[string]int64
	stats         *types.ContributionStats
	orgs          []string
}

// NewService wires the orchestrator from its collaborators.
func NewService(client *github.Client, resolver *resolve.Resolver, analyzer *analysis.Analyzer, c *cache.Cache) *Service {
	return &Service{
		client:   client,
		resolver: resolver,
		analyzer: analyzer,
		cache:    c,
	}
}

// Analyze resolves query to a username, builds the raw dataset, and
// derives the profile analysis.
func (s *Service) Analyze(ctx context.Context, query string) (*types.ProfileAnalysis, error) {
	username, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}

	ds, err := s.buildDataset(ctx, username)
	if err != nil {
		return nil, err
	}

	result := s.analyzer.Analyze(ds.user, ds.repos, ds.repoLanguages, ds.stats, ds.orgs, time.Now().UTC())

	slog.Info("analysis completed",
		"username", ds.user.Login,
		"repos", len(ds.repos),
		"score", result.OverallScore,
		"level", result.ExperienceLevel,
	)

	return result, nil
}

// buildDataset fetches the account, repositories, organizations, and
// contribution stats sequentially, then fans out language lookups for the
// first languageFetchLimit repositories. Account, repo, org, and event
// failures propagate; per-repo language failures were already degraded
// inside the client.
func (s *Service) buildDataset(ctx context.Context, username string) (*dataset, error) {
	user, err := s.client.FetchUser(ctx, username)
	if err != nil {
		return nil, err
	}

	repos, err := s.client.FetchRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	orgs, err := s.client.FetchOrgs(ctx, username)
	if err != nil {
		return nil, err
	}

	stats, err := s.client.ContributionStats(ctx, username)
	if err != nil {
		return nil, err
	}

	limit := languageFetchLimit
	if len(repos) < limit {
		limit = len(repos)
	}
	repoNames := make([]string, 0, limit)
	for _, repo := range repos[:limit] {
		repoNames = append(repoNames, repo.Name)
	}

	repoLanguages, err := s.client.FetchManyRepoLanguages(ctx, username, repoNames)
	if err != nil {
		return nil, err
	}

	return &dataset{
		user:          user,
		repos:         repos,
		repoLanguages: repoLanguages,
		stats:         stats,
		orgs:          orgs,
	}, nil
}

// RateLimitInfo exposes the client's quota state to the router.
func (s *Service) RateLimitInfo() types.RateLimitInfo {
	return s.client.RateLimitInfo()
}

// CacheStats exposes cache occupancy to the router.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// ClearCache drops all cached remote data.
func (s *Service) ClearCache() {
	s.cache.Clear()
}
