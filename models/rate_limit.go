package models

import "time"

// RateLimitPolicy bounds the number of requests a client may make in one
// fixed window. Name namespaces the counters of different policies.
type RateLimitPolicy struct {
	Name   string
	Window time.Duration
	Max    int64
}

// RateDecision is the outcome of counting one request against a policy.
type RateDecision struct {
	// Key is the store key of the window the request was counted in.
	Key string

	// Count is the post-increment number of requests in the window.
	Count int64

	Limit     int64
	Remaining int64

	// ResetAfter is how long until the window's counter expires.
	ResetAfter time.Duration

	Allowed bool
}
