package github

import "errors"

// Sentinel errors returned by the client. Callers map these to their own
// failure modes with errors.Is.
var (
	// ErrUserNotFound indicates the username does not exist on GitHub.
	ErrUserNotFound = errors.New("github user not found")

	// ErrRateLimited indicates the API quota is exhausted.
	ErrRateLimited = errors.New("github rate limit exceeded")

	// ErrUpstream covers every other non-2xx response or transport failure.
	ErrUpstream = errors.New("github request failed")
)
