package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

var errUpstream = errors.New("upstream failure")

func fail() (interface{}, error)    { return nil, errUpstream }
func succeed() (interface{}, error) { return "ok", nil }

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	cb := New(2, 1, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := cb.Execute(fail); !errors.Is(err, errUpstream) {
			t.Fatalf("Execute() error = %v, want %v", err, errUpstream)
		}
	}

	if cb.State() != Open {
		t.Fatalf("State() = %v, want Open", cb.State())
	}

	// Requests are rejected without running the operation.
	ran := false
	_, err := cb.Execute(func() (interface{}, error) {
		ran = true
		return nil, nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Execute() error = %v, want ErrCircuitOpen", err)
	}
	if ran {
		t.Error("operation ran while the circuit was open")
	}
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := New(2, 1, time.Minute)

	if _, err := cb.Execute(fail); err == nil {
		t.Fatal("Execute() expected an error")
	}
	if _, err := cb.Execute(succeed); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := cb.Execute(fail); err == nil {
		t.Fatal("Execute() expected an error")
	}

	// Only one consecutive failure, so the circuit stays closed.
	if cb.State() != Closed {
		t.Errorf("State() = %v, want Closed", cb.State())
	}
}

func TestBreakerRecoversThroughHalfOpen(t *testing.T) {
	cb := New(1, 2, 10*time.Millisecond)

	if _, err := cb.Execute(fail); err == nil {
		t.Fatal("Execute() expected an error")
	}
	if cb.State() != Open {
		t.Fatalf("State() = %v, want Open", cb.State())
	}

	time.Sleep(20 * time.Millisecond)
	if cb.State() != HalfOpen {
		t.Fatalf("State() = %v, want HalfOpen after timeout", cb.State())
	}

	// Two successes are required before the circuit closes again.
	if _, err := cb.Execute(succeed); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if cb.State() != HalfOpen {
		t.Fatalf("State() = %v, want HalfOpen after first success", cb.State())
	}
	if _, err := cb.Execute(succeed); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if cb.State() != Closed {
		t.Errorf("State() = %v, want Closed after second success", cb.State())
	}
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	cb := New(1, 2, 10*time.Millisecond)

	if _, err := cb.Execute(fail); err == nil {
		t.Fatal("Execute() expected an error")
	}
	time.Sleep(20 * time.Millisecond)
	if cb.State() != HalfOpen {
		t.Fatalf("State() = %v, want HalfOpen", cb.State())
	}

	if _, err := cb.Execute(fail); err == nil {
		t.Fatal("Execute() expected an error")
	}
	if cb.State() != Open {
		t.Errorf("State() = %v, want Open after half-open failure", cb.State())
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		Closed:    "Closed",
		Open:      "Open",
		HalfOpen:  "Half-Open",
		State(99): "Unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
