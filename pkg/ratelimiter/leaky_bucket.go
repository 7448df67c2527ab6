package ratelimiter

import (
	"sync"
	"time"
)

// LeakyBucket implements the RateLimiter interface using the leaky bucket
// algorithm. Requests fill the bucket and drain at a fixed rate; a full
// bucket rejects new requests, which smooths bursts instead of allowing them.
type LeakyBucket struct {
	rate     float64 // drain rate in requests per second
	capacity float64 // bucket size
	water    float64 // current fill level
	lastLeak time.Time
	mutex    sync.Mutex
}

// NewLeakyBucket creates a new LeakyBucket.
// rate: how many requests drain per second.
// capacity: how many requests the bucket can hold.
func NewLeakyBucket(rate float64, capacity int) *LeakyBucket {
	return &LeakyBucket{
		rate:     rate,
		capacity: float64(capacity),
		lastLeak: time.Now(),
	}
}

// Allow drains the bucket for the elapsed time and admits the request if
// there is room left.
func (lb *LeakyBucket) Allow() bool {
	lb.mutex.Lock()
	defer lb.mutex.Unlock()

	now := time.Now()
	elapsed := now.Sub(lb.lastLeak)
	if elapsed > 0 {
		lb.water -= elapsed.Seconds() * lb.rate
		if lb.water < 0 {
			lb.water = 0
		}
		lb.lastLeak = now
	}

	if lb.water+1 <= lb.capacity {
		lb.water++
		return true
	}
	return false
}
