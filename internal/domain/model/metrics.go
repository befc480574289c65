// Package model contains domain models passed between layers.
package model

import "time"

// GitHubMetrics is the fixed-shape activity record produced per scoring call.
// All numeric fields are non-negative; LanguageBytes values sum to the
// candidate's total analyzed source bytes and may sum to zero.
type GitHubMetrics struct {
	Username            string           `json:"username"`
	CommitFrequency     float64          `json:"commit_frequency"`
	RepositoryCount     int              `json:"repository_count"`
	StarsReceived       int              `json:"stars_received"`
	ForkCount           int              `json:"fork_count"`
	LanguageBytes       map[string]int64 `json:"language_breakdown"`
	CodeQualityEstimate float64          `json:"code_quality_estimate"`
	FetchedAt           time.Time        `json:"fetched_at"`
}

// TotalLanguageBytes sums the analyzed bytes across all languages.
func (m GitHubMetrics) TotalLanguageBytes() int64 {
	var total int64
	for _, b := range m.LanguageBytes {
		total += b
	}
	return total
}

// Candidate is the display-time view of a GitHub account, fetched fresh on
// comparison reads. It is presentation data and never feeds the scorer.
type Candidate struct {
	Name        string `json:"name"`
	Username    string `json:"username"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

// LanguageShare is one entry of an ordered language breakdown, expressed as a
// percentage of total analyzed bytes.
type LanguageShare struct {
	Name    string  `json:"name"`
	Percent float64 `json:"value"`
}
