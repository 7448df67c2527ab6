package ratelimiter

import (
	"sync"
	"time"
)

// TokenBucket implements the RateLimiter interface using the token bucket
// algorithm. It allows bursts of requests up to the bucket's capacity.
type TokenBucket struct {
	rate     float64 // tokens generated per second
	capacity float64 // maximum number of tokens in the bucket
	tokens   float64 // current number of tokens
	lastFill time.Time
	mutex    sync.Mutex
}

// NewTokenBucket creates a new TokenBucket.
// rate: the number of tokens to generate per second.
// capacity: the maximum number of tokens (burst size).
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	return &TokenBucket{
		rate:     rate,
		capacity: float64(capacity),
		tokens:   float64(capacity), // start with a full bucket
		lastFill: time.Now(),
	}
}

// Allow refills the bucket based on the elapsed time and consumes one token
// if available.
func (tb *TokenBucket) Allow() bool {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastFill)
	if elapsed > 0 {
		tb.tokens += elapsed.Seconds() * tb.rate
		if tb.tokens > tb.capacity {
			tb.tokens = tb.capacity
		}
		tb.lastFill = now
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}
