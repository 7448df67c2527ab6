package ratelimiter

import (
	"fmt"

	"github.com/Sportinger/argus/internal/config"
)

// RateLimiter is the interface for rate limiting.
// It defines a single method, Allow, which returns true if a request is allowed,
// and false otherwise.
type RateLimiter interface {
	// Allow returns true if the request is allowed, otherwise returns false.
	Allow() bool
}

// New creates a RateLimiter from configuration. The algorithm name selects
// the implementation.
func New(cfg config.RateLimiterConfig) (RateLimiter, error) {
	switch cfg.Algorithm {
	case "tokenBucket":
		return NewTokenBucket(cfg.Rate, cfg.Capacity), nil
	case "leakyBucket":
		return NewLeakyBucket(cfg.Rate, cfg.Capacity), nil
	default:
		return nil, fmt.Errorf("unsupported rate limiter algorithm: %s", cfg.Algorithm)
	}
}
