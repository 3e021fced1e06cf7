package constants

import "time"

// RFC 3339 date-time format string.
// Use this format for all date-time serialization and communication with external systems.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

// Default rate limiting configuration
const (
	// DefaultRateLimitRequests is the default number of requests allowed per time window
	DefaultRateLimitRequests = 100
	// DefaultRateLimitWindowMinutes is the default time window for rate limiting
	DefaultRateLimitWindowMinutes = 1
)

// Signup rate limiting. The join endpoint carries a much tighter budget than
// the default: 10 requests per client address per 15 minutes.
const (
	SignupRateLimitRequests      = 10
	SignupRateLimitWindowMinutes = 15
)

// Pagination bounds for the admin entrant listing.
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// DefaultRateLimitWindow returns the default rate limit window duration
func DefaultRateLimitWindow() time.Duration {
	return time.Duration(DefaultRateLimitWindowMinutes) * time.Minute
}

// SignupRateLimitWindow returns the join endpoint's rate limit window duration
func SignupRateLimitWindow() time.Duration {
	return time.Duration(SignupRateLimitWindowMinutes) * time.Minute
}
