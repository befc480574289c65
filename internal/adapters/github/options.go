package github

import (
	"net/http"
	"time"

	"github.com/gitscout/gitscout/pkg/logger"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used against httptest servers and
// GitHub Enterprise installs.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithToken sets the bearer token for authenticated requests.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTopRepoLimit caps how many most-starred repositories feed the commit
// frequency sample.
func WithTopRepoLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.topRepoLimit = limit
		}
	}
}

// WithCommitWindow sets the commit analysis window in days.
func WithCommitWindow(days int) Option {
	return func(c *Client) {
		if days > 0 {
			c.commitWindowDays = days
		}
	}
}

// WithConcurrency bounds in-flight per-repository requests.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock overrides the time source for the commit window cutoff.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}
