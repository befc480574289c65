// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath locates the SQLite database file.
	DBPath string `koanf:"db_path"`

	// GitHubToken authenticates GitHub API requests. Empty means anonymous
	// access with its much lower rate limit.
	GitHubToken string `koanf:"github_token"`

	// GitHubBaseURL overrides the GitHub API endpoint, e.g. for GitHub
	// Enterprise installs.
	GitHubBaseURL string `koanf:"github_base_url"`

	// TopRepoSample caps how many most-starred repositories feed the
	// commit frequency estimate.
	TopRepoSample int `koanf:"top_repo_sample"`

	// CommitWindowDays sets the commit analysis window.
	CommitWindowDays int `koanf:"commit_window_days"`

	// FetchConcurrency bounds in-flight per-repository GitHub requests.
	FetchConcurrency int `koanf:"fetch_concurrency"`

	// RequestTimeoutMS bounds a single GitHub API request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// ProfileCacheSize bounds the in-memory standard profile cache.
	ProfileCacheSize int `koanf:"profile_cache_size"`
}

// New creates a Config with defaults.
func New() *Config {
	concurrency := runtime.NumCPU() * 2
	if concurrency > 8 {
		concurrency = 8
	}

	return &Config{
		LogLevel:         "info",
		Addr:             ":8080",
		DBPath:           "gitscout.db",
		GitHubBaseURL:    "https://api.github.com",
		TopRepoSample:    5,
		CommitWindowDays: 90,
		FetchConcurrency: concurrency,
		RequestTimeoutMS: 10_000,
		ProfileCacheSize: 1024,
	}
}
