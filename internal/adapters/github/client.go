// Package github fetches public account activity from the GitHub REST API
// and condenses it into the fixed metric shape the scorer consumes.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gitscout/gitscout/internal/domain/model"
	"github.com/gitscout/gitscout/pkg/logger"
	"github.com/gitscout/gitscout/pkg/metrics"
)

// Defaults for client behavior.
const (
	defaultBaseURL          = "https://api.github.com"
	defaultUserAgent        = "gitscout/1.0"
	defaultTimeout          = 10 * time.Second
	defaultTopRepoLimit     = 5
	defaultCommitWindowDays = 90
	defaultConcurrency      = 4
	pageSize                = 100

	// maxLanguageShares bounds the display-time language breakdown to the
	// candidate's top languages by share.
	maxLanguageShares = 5
)

// Client talks to the GitHub REST API v3.
type Client struct {
	httpClient       *http.Client
	baseURL          string
	token            string
	userAgent        string
	topRepoLimit     int
	commitWindowDays int
	concurrency      int
	logger           logger.Logger
	now              func() time.Time
}

// New creates a Client. Without a token requests run against the anonymous
// rate limit, which is enough for tests but not for real traffic.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient:       &http.Client{Timeout: defaultTimeout},
		baseURL:          defaultBaseURL,
		userAgent:        defaultUserAgent,
		topRepoLimit:     defaultTopRepoLimit,
		commitWindowDays: defaultCommitWindowDays,
		concurrency:      defaultConcurrency,
		logger:           logger.Get().Named("github"),
		now:              time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type githubUser struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

type githubRepo struct {
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	Description     string `json:"description"`
	Fork            bool   `json:"fork"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	LanguagesURL    string `json:"languages_url"`
}

// Candidate returns the display-time view of an account.
func (c *Client) Candidate(ctx context.Context, username string) (model.Candidate, error) {
	user, err := c.fetchUser(ctx, username)
	if err != nil {
		return model.Candidate{}, err
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}

	return model.Candidate{
		Name:        name,
		Username:    user.Login,
		AvatarURL:   user.AvatarURL,
		Bio:         user.Bio,
		PublicRepos: user.PublicRepos,
		Followers:   user.Followers,
	}, nil
}

// Metrics fetches and condenses the account's activity. Per-repository
// sub-fetches that fail contribute zero rather than failing the whole call.
func (c *Client) Metrics(ctx context.Context, username string) (model.GitHubMetrics, error) {
	if _, err := c.fetchUser(ctx, username); err != nil {
		return model.GitHubMetrics{}, err
	}

	repos, err := c.fetchRepos(ctx, username)
	if err != nil {
		return model.GitHubMetrics{}, err
	}

	var stars, forks int
	for _, r := range repos {
		stars += r.StargazersCount
		forks += r.ForksCount
	}

	return model.GitHubMetrics{
		Username:            username,
		CommitFrequency:     c.commitFrequency(ctx, username, repos),
		RepositoryCount:     len(repos),
		StarsReceived:       stars,
		ForkCount:           forks,
		LanguageBytes:       c.languageBytes(ctx, repos),
		CodeQualityEstimate: qualityEstimate(repos),
		FetchedAt:           c.now().UTC(),
	}, nil
}

// Languages returns the account's language breakdown as percentages of total
// analyzed bytes, largest first.
func (c *Client) Languages(ctx context.Context, username string) ([]model.LanguageShare, error) {
	repos, err := c.fetchRepos(ctx, username)
	if err != nil {
		return nil, err
	}
	return sharesFromBytes(c.languageBytes(ctx, repos)), nil
}

func (c *Client) fetchUser(ctx context.Context, username string) (githubUser, error) {
	var user githubUser
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(username))
	if _, err := c.getJSON(ctx, endpoint, &user); err != nil {
		return githubUser{}, fmt.Errorf("fetch user %q: %w", username, err)
	}
	return user, nil
}

// fetchRepos pages through the account's repositories via Link headers.
func (c *Client) fetchRepos(ctx context.Context, username string) ([]githubRepo, error) {
	var all []githubRepo
	next := fmt.Sprintf("%s/users/%s/repos?per_page=%d&sort=updated", c.baseURL, url.PathEscape(username), pageSize)

	for next != "" {
		var page []githubRepo
		header, err := c.getJSON(ctx, next, &page)
		if err != nil {
			return nil, fmt.Errorf("fetch repos for %q: %w", username, err)
		}
		all = append(all, page...)
		next = nextLink(header.Get("Link"))
	}

	return all, nil
}

// languageBytes sums per-language byte counts over the non-fork repositories.
// Fetches run concurrently with a bounded number of in-flight requests.
func (c *Client) languageBytes(ctx context.Context, repos []githubRepo) map[string]int64 {
	owned := ownedRepos(repos)
	totals := make(map[string]int64)
	if len(owned) == 0 {
		return totals
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, c.concurrency)
	)

	for _, repo := range owned {
		wg.Add(1)
		go func(repo githubRepo) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			var langs map[string]int64
			if _, err := c.getJSON(ctx, repo.LanguagesURL, &langs); err != nil {
				c.logger.Warn(ctx, "language fetch failed, skipping repository",
					logger.String("repo", repo.FullName),
					logger.Error(err),
				)
				return
			}

			mu.Lock()
			for lang, bytes := range langs {
				totals[lang] += bytes
			}
			mu.Unlock()
		}(repo)
	}
	wg.Wait()

	return totals
}

// commitFrequency averages the candidate's authored commits per day over the
// analysis window, sampled from the most-starred non-fork repositories. A
// repository whose commit fetch fails contributes zero commits.
func (c *Client) commitFrequency(ctx context.Context, username string, repos []githubRepo) float64 {
	sample := ownedRepos(repos)
	sort.SliceStable(sample, func(i, j int) bool {
		return sample[i].StargazersCount > sample[j].StargazersCount
	})
	if len(sample) > c.topRepoLimit {
		sample = sample[:c.topRepoLimit]
	}

	since := c.now().AddDate(0, 0, -c.commitWindowDays).UTC().Format(time.RFC3339)

	var (
		total int64
		mu    sync.Mutex
		wg    sync.WaitGroup
		sem   = make(chan struct{}, c.concurrency)
	)

	for _, repo := range sample {
		wg.Add(1)
		go func(repo githubRepo) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			endpoint := fmt.Sprintf("%s/repos/%s/commits?author=%s&since=%s&per_page=%d",
				c.baseURL, repo.FullName, url.QueryEscape(username), url.QueryEscape(since), pageSize)

			var commits []json.RawMessage
			if _, err := c.getJSON(ctx, endpoint, &commits); err != nil {
				c.logger.Warn(ctx, "commit fetch failed, skipping repository",
					logger.String("repo", repo.FullName),
					logger.Error(err),
				)
				return
			}

			mu.Lock()
			total += int64(len(commits))
			mu.Unlock()
		}(repo)
	}
	wg.Wait()

	if c.commitWindowDays <= 0 {
		return 0
	}
	perDay := float64(total) / float64(c.commitWindowDays)
	return math.Round(perDay*10) / 10
}

// qualityEstimate is a rough 0-100 proxy for codebase upkeep: how many owned
// repositories carry a description, plus a capped community signal from
// average stars per owned repository.
func qualityEstimate(repos []githubRepo) float64 {
	owned := ownedRepos(repos)
	if len(owned) == 0 {
		return 0
	}

	var described, stars int
	for _, r := range owned {
		if strings.TrimSpace(r.Description) != "" {
			described++
		}
		stars += r.StargazersCount
	}

	coverage := float64(described) / float64(len(owned)) * 60
	community := math.Min(40, float64(stars)/float64(len(owned))*4)
	return math.Round((coverage+community)*10) / 10
}

func ownedRepos(repos []githubRepo) []githubRepo {
	owned := make([]githubRepo, 0, len(repos))
	for _, r := range repos {
		if !r.Fork {
			owned = append(owned, r)
		}
	}
	return owned
}

func sharesFromBytes(bytes map[string]int64) []model.LanguageShare {
	var total int64
	for _, b := range bytes {
		total += b
	}
	if total == 0 {
		return nil
	}

	shares := make([]model.LanguageShare, 0, len(bytes))
	for name, b := range bytes {
		pct := math.Round(float64(b)/float64(total)*1000) / 10
		shares = append(shares, model.LanguageShare{Name: name, Percent: pct})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Percent != shares[j].Percent {
			return shares[i].Percent > shares[j].Percent
		}
		return shares[i].Name < shares[j].Name
	})
	if len(shares) > maxLanguageShares {
		shares = shares[:maxLanguageShares]
	}
	return shares
}

// getJSON performs an authenticated GET and decodes the body into v. It maps
// 404 to ErrUserNotFound, 403 and 429 to ErrRateLimited, and every other
// non-2xx status to ErrUpstream.
func (c *Client) getJSON(ctx context.Context, endpoint string, v any) (http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %w", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RecordGitHubRequestDuration(float64(time.Since(start).Milliseconds()))
	metrics.RecordGitHubRequest()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrUserNotFound
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		metrics.RecordGitHubRateLimited()
		return nil, ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: unexpected status %d from %s", ErrUpstream, resp.StatusCode, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrUpstream, err)
	}
	return resp.Header, nil
}

// nextLink extracts the rel="next" URL from a Link header, if any.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}
		if strings.Contains(section[1], `rel="next"`) {
			return strings.Trim(strings.TrimSpace(section[0]), "<>")
		}
	}
	return ""
}
