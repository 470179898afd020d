package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mkovacevic/github-profile-analyzer/internal/cache"
	"github.com/mkovacevic/github-profile-analyzer/internal/errors"
	"github.com/mkovacevic/github-profile-analyzer/internal/monitoring"
	"github.com/mkovacevic/github-profile-analyzer/internal/types"
)

const (
	defaultBaseURL = "https://api.github.com"
	userAgent      = "GitHub-Profile-Analyzer/1.0"

	perPage       = 100
	maxRepoPages  = 5
	maxEventPages = 3

	eventsTTL = 30 * time.Minute
)

// Config configures a Client. Cache is required; everything else has a
// usable zero value.
type Config struct {
	Token      string
	BaseURL    string
	HTTPClient *http.Client
	Cache      *cache.Cache
	// Limiter smooths outbound call bursts; nil disables local limiting.
	Limiter *rate.Limiter
	Metrics *monitoring.Metrics
	Logger  *monitoring.Logger
}

// Client talks to the GitHub REST API with caching, pagination,
// rate-limit tracking, and concurrent language fan-out.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cache      *cache.Cache
	limiter    *rate.Limiter
	metrics    *monitoring.Metrics
	logger     *monitoring.Logger

	mu            sync.Mutex
	rateRemaining int
	rateReset     *time.Time
}

// NewClient creates a GitHub API client.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:          10,
				MaxConnsPerHost:       20,
				MaxIdleConnsPerHost:   5,
				IdleConnTimeout:       30 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
			},
		}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		token:         cfg.Token,
		httpClient:    httpClient,
		cache:         cfg.Cache,
		limiter:       cfg.Limiter,
		metrics:       cfg.Metrics,
		logger:        cfg.Logger,
		rateRemaining: -1,
	}
}

// RateLimitInfo returns the quota state observed on the most recent response.
// Remaining is -1 before any request has been made.
func (c *Client) RateLimitInfo() types.RateLimitInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	return types.RateLimitInfo{
		Remaining: c.rateRemaining,
		ResetAt:   c.rateReset,
		HasToken:  c.token != "",
	}
}

// noteCache records a cache hit or miss against the metrics and debug log,
// when wired.
func (c *Client) noteCache(op string, hit bool) {
	if c.metrics != nil {
		if hit {
			c.metrics.IncrementCacheHit()
		} else {
			c.metrics.IncrementCacheMiss()
		}
	}
	if c.logger != nil {
		c.logger.CacheLogger(op, hit, c.cache.Stats().TotalEntries)
	}
}

// updateRateLimit records quota headers; GitHub sends them on every
// response, success or not.
func (c *Client) updateRateLimit(header http.Header) {
	remaining, err := strconv.Atoi(header.Get("x-ratelimit-remaining"))
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rateRemaining = remaining
	if ts, err := strconv.ParseInt(header.Get("x-ratelimit-reset"), 10, 64); err == nil && ts > 0 {
		reset := time.Unix(ts, 0).UTC()
		c.rateReset = &reset
	}
}

// doGet issues one GET and returns the status and body. A 403 whose body
// mentions the rate limit is translated to a RateLimited error; transport
// failures become external API errors. All other statuses are returned to
// the caller for per-operation handling.
func (c *Client) doGet(ctx context.Context, path string, query url.Values) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, errors.NewExternalAPIError("github request aborted", err)
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, nil, errors.NewInternalError("failed to build github request", err)
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		c.metrics.IncrementGitHubCalls()
	}
	if err != nil {
		return 0, nil, errors.NewExternalAPIError("github request failed", err)
	}
	defer resp.Body.Close()

	c.updateRateLimit(resp.Header)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.NewExternalAPIError("failed to read github response", err)
	}

	if c.metrics != nil {
		c.metrics.RecordExternalAPIRequest("github", resp.StatusCode < 400)
	}
	if c.logger != nil {
		c.logger.ExternalAPILogger("github", http.MethodGet, path, resp.StatusCode, time.Since(start), resp.StatusCode < 400)
	} else {
		slog.Debug("github request completed", "path", path, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
	}

	if resp.StatusCode == http.StatusForbidden && strings.Contains(strings.ToLower(string(body)), "rate limit") {
		retryAfter := -1
		c.mu.Lock()
		if c.rateReset != nil {
			retryAfter = int(time.Until(*c.rateReset).Seconds())
		}
		c.mu.Unlock()
		return resp.StatusCode, body, errors.NewRateLimitError(retryAfter)
	}

	return resp.StatusCode, body, nil
}

// FetchUser returns the profile for username. A 404 from the source
// becomes a NotFound error.
func (c *Client) FetchUser(ctx context.Context, username string) (*types.User, error) {
	key := cache.Key("user", strings.ToLower(username))
	if user, ok := cache.GetAs[*types.User](c.cache, key); ok {
		c.noteCache("user", true)
		return user, nil
	}
	c.noteCache("user", false)

	status, body, err := c.doGet(ctx, "/users/"+username, nil)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusNotFound:
		return nil, errors.NewNotFoundError(fmt.Sprintf("GitHub user not found: %s", username))
	case status != http.StatusOK:
		return nil, errors.NewExternalAPIError(fmt.Sprintf("github user lookup failed with status %d", status), nil)
	}

	var user types.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode github user", err)
	}

	c.cache.Set(key, &user)
	return &user, nil
}

// FetchRepos returns all public owner repositories for username, paginated
// in the source's last-updated order, capped at maxRepoPages pages.
func (c *Client) FetchRepos(ctx context.Context, username string) ([]types.Repository, error) {
	key := cache.Key("repos", strings.ToLower(username))
	if repos, ok := cache.GetAs[[]types.Repository](c.cache, key); ok {
		c.noteCache("repos", true)
		return repos, nil
	}
	c.noteCache("repos", false)

	var repos []types.Repository
	for page := 1; page <= maxRepoPages; page++ {
		query := url.Values{
			"per_page": {strconv.Itoa(perPage)},
			"page":     {strconv.Itoa(page)},
			"sort":     {"updated"},
			"type":     {"owner"},
		}

		status, body, err := c.doGet(ctx, "/users/"+username+"/repos", query)
		if err != nil {
			return nil, err
		}

		switch {
		case status == http.StatusNotFound:
			return nil, errors.NewNotFoundError(fmt.Sprintf("GitHub user not found: %s", username))
		case status != http.StatusOK:
			return nil, errors.NewExternalAPIError(fmt.Sprintf("github repo listing failed with status %d", status), nil)
		}

		var pageRepos []types.Repository
		if err := json.Unmarshal(body, &pageRepos); err != nil {
			return nil, errors.NewExternalAPIError("failed to decode github repos", err)
		}

		if len(pageRepos) == 0 {
			break
		}

		repos = append(repos, pageRepos...)
	}

	c.cache.Set(key, repos)
	return repos, nil
}

// FetchRepoLanguages returns the byte-count-per-language map for one
// repository. Languages are best effort: any non-success response yields
// an empty map, which is cached to suppress repeat lookups.
func (c *Client) FetchRepoLanguages(ctx context.Context, username, repoName string) (map[string]int64, error) {
	key := cache.Key("languages", strings.ToLower(username), strings.ToLower(repoName))
	if langs, ok := cache.GetAs[map[string]int64](c.cache, key); ok {
		c.noteCache("languages", true)
		return langs, nil
	}
	c.noteCache("languages", false)

	status, body, err := c.doGet(ctx, "/repos/"+username+"/"+repoName+"/languages", nil)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		empty := map[string]int64{}
		c.cache.Set(key, empty)
		return empty, nil
	}

	var langs map[string]int64
	if err := json.Unmarshal(body, &langs); err != nil {
		empty := map[string]int64{}
		c.cache.Set(key, empty)
		return empty, nil
	}

	c.cache.Set(key, langs)
	return langs, nil
}

// langResult is the per-task outcome of the concurrent language fan-out.
type langResult struct {
	repo  string
	langs map[string]int64
	err   error
}

// FetchManyRepoLanguages fetches languages for every named repository
// concurrently. A failed lookup does not fail the batch; its entry is
// simply omitted from the result map.
func (c *Client) FetchManyRepoLanguages(ctx context.Context, username string, repoNames []string) (map[string]map[string]int64, error) {
	results := make(chan langResult, len(repoNames))

	for _, name := range repoNames {
		go func(repoName string) {
			langs, err := c.FetchRepoLanguages(ctx, username, repoName)
			results <- langResult{repo: repoName, langs: langs, err: err}
		}(name)
	}

	byRepo := make(map[string]map[string]int64, len(repoNames))
	for range repoNames {
		res := <-results
		if res.err != nil {
			continue
		}
		byRepo[res.repo] = res.langs
	}

	return byRepo, nil
}

// FetchEvents returns the recent public event feed for username, up to
// maxEventPages pages, stopping early on an empty page or a non-success
// response. Events are cached with a shorter TTL than profile data.
func (c *Client) FetchEvents(ctx context.Context, username string) ([]types.Event, error) {
	key := cache.Key("events", strings.ToLower(username))
	if events, ok := cache.GetAs[[]types.Event](c.cache, key); ok {
		c.noteCache("events", true)
		return events, nil
	}
	c.noteCache("events", false)

	var events []types.Event
	for page := 1; page <= maxEventPages; page++ {
		query := url.Values{
			"per_page": {strconv.Itoa(perPage)},
			"page":     {strconv.Itoa(page)},
		}

		status, body, err := c.doGet(ctx, "/users/"+username+"/events/public", query)
		if err != nil {
			return nil, err
		}

		if status != http.StatusOK {
			break
		}

		var pageEvents []types.Event
		if err := json.Unmarshal(body, &pageEvents); err != nil {
			break
		}

		if len(pageEvents) == 0 {
			break
		}

		events = append(events, pageEvents...)
	}

	c.cache.SetTTL(key, events, eventsTTL)
	return events, nil
}

// FetchOrgs returns the organizations username belongs to. Membership is
// best effort: a non-success response yields an empty list, cached.
func (c *Client) FetchOrgs(ctx context.Context, username string) ([]string, error) {
	key := cache.Key("orgs", strings.ToLower(username))
	if orgs, ok := cache.GetAs[[]string](c.cache, key); ok {
		c.noteCache("orgs", true)
		return orgs, nil
	}
	c.noteCache("orgs", false)

	status, body, err := c.doGet(ctx, "/users/"+username+"/orgs", nil)
	if err != nil {
		return nil, err
	}

	orgs := []string{}
	if status == http.StatusOK {
		var raw []struct {
			Login string `json:"login"`
		}
		if err := json.Unmarshal(body, &raw); err == nil {
			for _, org := range raw {
				orgs = append(orgs, org.Login)
			}
		}
	}

	c.cache.Set(key, orgs)
	return orgs, nil
}

// SearchUserByEmail looks up a username by email via the user search
// endpoint. A miss returns ("", nil) and is negative-cached so known-absent
// emails do not trigger repeat searches.
func (c *Client) SearchUserByEmail(ctx context.Context, email string) (string, error) {
	key := cache.Key("search_email", email)
	if login, ok := cache.GetAs[string](c.cache, key); ok {
		c.noteCache("search_email", true)
		return login, nil
	}
	c.noteCache("search_email", false)

	query := url.Values{"q": {email + " in:email"}}
	status, body, err := c.doGet(ctx, "/search/users", query)
	if err != nil {
		return "", err
	}

	if status == http.StatusOK {
		var result struct {
			TotalCount int `json:"total_count"`
			Items      []struct {
				Login string `json:"login"`
			} `json:"items"`
		}
		if err := json.Unmarshal(body, &result); err == nil && result.TotalCount > 0 && len(result.Items) > 0 {
			login := result.Items[0].Login
			c.cache.Set(key, login)
			return login, nil
		}
	}

	// Negative result
	c.cache.Set(key, "")
	return "", nil
}

// ContributionStats derives push/PR/issue counts and commit time samples
// from the sampled event feed.
func (c *Client) ContributionStats(ctx context.Context, username string) (*types.ContributionStats, error) {
	events, err := c.FetchEvents(ctx, username)
	if err != nil {
		return nil, err
	}

	stats := &types.ContributionStats{
		CommitHours: []int{},
		CommitDays:  []string{},
	}

	for _, event := range events {
		switch event.Type {
		case "PushEvent":
			stats.TotalPushEvents++
			created := event.CreatedAt.UTC()
			stats.CommitHours = append(stats.CommitHours, created.Hour())
			stats.CommitDays = append(stats.CommitDays, created.Weekday().String())
		case "PullRequestEvent":
			stats.TotalPREvents++
		case "IssuesEvent":
			stats.TotalIssueEvents++
		}
	}

	return stats, nil
}
