package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Sportinger/argus/internal/config"
	"github.com/Sportinger/argus/pkg/circuitbreaker"
	"github.com/Sportinger/argus/pkg/ratelimiter"
)

// ErrRateLimited is returned when the client-side rate limiter rejects a
// request before it is sent.
var ErrRateLimited = errors.New("request rejected by client-side rate limiter")

// Client is a custom HTTP client that wraps the standard http.Client
// and provides built-in support for circuit breaking and client-side
// rate limiting of outbound calls to upstream data sources.
type Client struct {
	httpClient *http.Client
	breaker    circuitbreaker.CircuitBreaker
	limiter    ratelimiter.RateLimiter
}

// NewClient creates a new Client from the middleware configuration.
func NewClient(cfg config.MiddlewareConfig) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{
			// Every network-facing call carries an explicit timeout; the
			// upstream APIs this client talks to are public and slow.
			Timeout: 30 * time.Second,
		},
	}

	if cfg.CircuitBreaker.Enabled {
		breaker, err := createCircuitBreaker(cfg.CircuitBreaker)
		if err != nil {
			return nil, err
		}
		c.breaker = breaker
	}

	if cfg.RateLimiter.Enabled {
		limiter, err := ratelimiter.New(cfg.RateLimiter)
		if err != nil {
			return nil, err
		}
		c.limiter = limiter
	}

	return c, nil
}

// Do executes an HTTP request with rate limiter and circuit breaker
// protection. It considers status codes >= 500 as failures for the breaker.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.limiter != nil && !c.limiter.Allow() {
		return nil, ErrRateLimited
	}

	if c.breaker == nil {
		return c.httpClient.Do(req)
	}

	var resp *http.Response
	var err error

	// The breaker's Execute function returns its own error, which might be
	// ErrCircuitOpen or the error from the operation itself.
	_, breakerErr := c.breaker.Execute(func() (interface{}, error) {
		resp, err = c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}

		// Treat server-side errors as failures for the circuit breaker.
		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			return nil, fmt.Errorf("server error: received status code %d", resp.StatusCode)
		}

		return resp, nil
	})

	if breakerErr != nil {
		return nil, breakerErr
	}

	return resp, nil
}

func createCircuitBreaker(cfg config.CircuitBreakerConfig) (circuitbreaker.CircuitBreaker, error) {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid circuit breaker timeout '%s': %w", cfg.Timeout, err)
	}
	return circuitbreaker.New(cfg.FailureThreshold, cfg.SuccessThreshold, timeout), nil
}
