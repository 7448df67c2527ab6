package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State represents the state of the circuit breaker.
type State int

const (
	// Closed is the initial state where requests are allowed.
	Closed State = iota
	// Open state is when the circuit has tripped and requests are blocked.
	Open
	// HalfOpen allows a limited number of trial requests to test recovery.
	HalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Open:
		return "Open"
	case HalfOpen:
		return "Half-Open"
	default:
		return "Unknown"
	}
}

// ErrCircuitOpen is returned when the circuit breaker is in the Open state.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker is the interface for the circuit breaker pattern.
type CircuitBreaker interface {
	// Execute runs the given request if the circuit breaker is closed or half-open.
	Execute(req func() (interface{}, error)) (interface{}, error)
	// State returns the current state of the circuit breaker.
	State() State
}

type breaker struct {
	failureThreshold uint32 // consecutive failures that trip the circuit
	successThreshold uint32 // consecutive half-open successes that close it
	timeout          time.Duration

	consecutiveFailures  uint32
	consecutiveSuccesses uint32
	openedAt             time.Time
	state                State
	mutex                sync.Mutex
}

// New creates a circuit breaker.
// failureThreshold: consecutive failures required to open the circuit.
// successThreshold: consecutive half-open successes required to close it again.
// timeout: how long the circuit stays open before allowing trial requests.
func New(failureThreshold, successThreshold uint32, timeout time.Duration) CircuitBreaker {
	return &breaker{
		failureThreshold: failureThreshold,
		successThreshold: successThreshold,
		timeout:          timeout,
		state:            Closed,
	}
}

// State returns the current state of the circuit breaker.
func (cb *breaker) State() State {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	cb.maybeHalfOpen()
	return cb.state
}

// Execute wraps the execution of a function with the circuit breaker logic.
func (cb *breaker) Execute(req func() (interface{}, error)) (interface{}, error) {
	cb.mutex.Lock()
	cb.maybeHalfOpen()
	if cb.state == Open {
		cb.mutex.Unlock()
		return nil, ErrCircuitOpen
	}
	cb.mutex.Unlock()

	result, err := req()

	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	if err != nil {
		cb.onFailure()
		return nil, err
	}
	cb.onSuccess()
	return result, nil
}

// maybeHalfOpen transitions Open -> HalfOpen once the timeout has elapsed.
// Caller must hold the mutex.
func (cb *breaker) maybeHalfOpen() {
	if cb.state == Open && time.Since(cb.openedAt) > cb.timeout {
		cb.state = HalfOpen
		cb.consecutiveSuccesses = 0
	}
}

func (cb *breaker) onFailure() {
	cb.consecutiveSuccesses = 0
	cb.consecutiveFailures++
	switch cb.state {
	case HalfOpen:
		// A single failure during the trial period re-opens the circuit.
		cb.state = Open
		cb.openedAt = time.Now()
	case Closed:
		if cb.consecutiveFailures >= cb.failureThreshold {
			cb.state = Open
			cb.openedAt = time.Now()
		}
	}
}

func (cb *breaker) onSuccess() {
	cb.consecutiveFailures = 0
	if cb.state == HalfOpen {
		cb.consecutiveSuccesses++
		if cb.consecutiveSuccesses >= cb.successThreshold {
			cb.state = Closed
			cb.consecutiveSuccesses = 0
		}
	}
}
