package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func testConfig() Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      1,
		Interval:         10 * time.Second,
		Timeout:          20 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      3,
	}
}

func TestNew(t *testing.T) {
	cb := New(testConfig())

	if cb.Name() != "test-circuit" {
		t.Errorf("expected name='test-circuit', got %q", cb.Name())
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected initial state=Closed, got %v", cb.State())
	}
}

func TestAssetHostConfig(t *testing.T) {
	cfg := AssetHostConfig(0, 0, 0)
	def := DefaultConfig("asset-host")
	if cfg.MinRequests != def.MinRequests || cfg.FailureThreshold != def.FailureThreshold || cfg.Timeout != def.Timeout {
		t.Errorf("zero arguments should keep defaults, got %+v", cfg)
	}

	cfg = AssetHostConfig(10, 0.5, time.Second)
	if cfg.MinRequests != 10 || cfg.FailureThreshold != 0.5 || cfg.Timeout != time.Second {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestDo_Success(t *testing.T) {
	cb := New(testConfig())

	got, err := Do(cb, func() (string, error) { return "https://cdn/x.png", nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://cdn/x.png" {
		t.Errorf("got %q", got)
	}
}

func TestDo_OpensAfterFailures(t *testing.T) {
	var transitions []gobreaker.State
	cfg := testConfig()
	cfg.OnStateChange = func(_ string, _, to gobreaker.State) {
		transitions = append(transitions, to)
	}
	cb := New(cfg)

	boom := errors.New("asset host down")
	for i := 0; i < 3; i++ {
		if _, err := Do(cb, func() (string, error) { return "", boom }); !errors.Is(err, boom) {
			t.Fatalf("call %d: expected boom, got %v", i, err)
		}
	}

	if !cb.IsOpen() {
		t.Fatalf("expected open state, got %v", cb.State())
	}

	called := false
	_, err := Do(cb, func() (string, error) {
		called = true
		return "", nil
	})
	if !errors.Is(err, ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
	if called {
		t.Error("open breaker must not invoke the function")
	}
	if len(transitions) != 1 || transitions[0] != gobreaker.StateOpen {
		t.Errorf("transitions = %v", transitions)
	}
}

func TestDo_CanceledIsNotAFailure(t *testing.T) {
	cb := New(testConfig())

	for i := 0; i < 5; i++ {
		_, _ = Do(cb, func() (string, error) { return "", context.Canceled })
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("cancellations tripped the breaker: %v", cb.State())
	}
}

func TestExecute(t *testing.T) {
	cb := New(testConfig())

	res, err := cb.Execute(func() (interface{}, error) { return 42, nil })
	if err != nil || res.(int) != 42 {
		t.Fatalf("Execute = %v, %v", res, err)
	}
}
