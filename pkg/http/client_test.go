package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sportinger/argus/internal/config"
	"github.com/Sportinger/argus/pkg/circuitbreaker"
)

// helper function to create a mock middleware config for testing
func newTestConfig() config.MiddlewareConfig {
	return config.MiddlewareConfig{
		RateLimiter: config.RateLimiterConfig{
			Enabled:   true,
			Algorithm: "tokenBucket",
			Rate:      0.001, // effectively no refill during a test
			Capacity:  2,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			SuccessThreshold: 1,
			Timeout:          "10s",
		},
	}
}

func TestClientWithoutMiddleware(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(config.MiddlewareConfig{})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestClientRateLimiter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(newTestConfig())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	// First 2 requests pass (equal to capacity).
	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("Request %d failed: %v", i+1, err)
		}
		resp.Body.Close()
	}

	// The 3rd request is rejected before it is sent.
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	if _, err := client.Do(req); !errors.Is(err, ErrRateLimited) {
		t.Errorf("Do() error = %v, want ErrRateLimited", err)
	}
}

func TestClientCircuitBreakerTripsOnServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := newTestConfig()
	cfg.RateLimiter.Enabled = false
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	// First 2 requests fail and trip the circuit.
	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		if _, err := client.Do(req); err == nil {
			t.Fatalf("Request %d expected an error", i+1)
		}
	}

	// The 3rd request is blocked by the open circuit.
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	if _, err := client.Do(req); !errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		t.Errorf("Do() error = %v, want ErrCircuitOpen", err)
	}
}

func TestClientClientErrorsDoNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	}))
	defer server.Close()

	cfg := newTestConfig()
	cfg.RateLimiter.Enabled = false
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	// 4xx responses pass through and never open the circuit.
	for i := 0; i < 5; i++ {
		req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("Request %d failed: %v", i+1, err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("StatusCode = %d, want %d", resp.StatusCode, http.StatusNotFound)
		}
		resp.Body.Close()
	}
}

func TestClientRejectsInvalidBreakerTimeout(t *testing.T) {
	cfg := newTestConfig()
	cfg.CircuitBreaker.Timeout = "soon"
	if _, err := NewClient(cfg); err == nil {
		t.Error("NewClient() expected an error for an invalid timeout")
	}
}
