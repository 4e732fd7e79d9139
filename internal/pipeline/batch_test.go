package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestBatchRunner_OutcomesInInputOrder(t *testing.T) {
	r := &BatchRunner{Concurrency: 4, RateLimit: 100, Timeout: time.Second}
	targets := []string{"a", "b", "c", "d"}

	outcomes := r.Run(context.Background(), targets, func(ctx context.Context, target string) (*Result, error) {
		return &Result{Success: true}, nil
	})

	if len(outcomes) != len(targets) {
		t.Fatalf("expected %d outcomes, got %d", len(targets), len(outcomes))
	}
	for i, o := range outcomes {
		if o.Target != targets[i] {
			t.Errorf("outcome %d target = %q, want %q", i, o.Target, targets[i])
		}
		if o.Result == nil || !o.Result.Success {
			t.Errorf("outcome %d missing a successful result", i)
		}
	}
}

func TestBatchRunner_FailureIsolated(t *testing.T) {
	r := &BatchRunner{Concurrency: 2, RateLimit: 100, Timeout: time.Second}

	outcomes := r.Run(context.Background(), []string{"ok", "bad", "ok2"}, func(ctx context.Context, target string) (*Result, error) {
		if target == "bad" {
			return nil, errors.New("fetch failed")
		}
		return &Result{Success: true}, nil
	})

	if outcomes[1].Error == "" {
		t.Error("failed target should carry its error")
	}
	if outcomes[0].Error != "" || outcomes[2].Error != "" {
		t.Error("sibling targets must be unaffected by one failure")
	}
}

func TestBatchRunner_ConcurrencyBound(t *testing.T) {
	r := &BatchRunner{Concurrency: 2, RateLimit: 1000, Timeout: time.Second}

	var inFlight, peak int32
	outcomes := r.Run(context.Background(), []string{"a", "b", "c", "d", "e", "f"}, func(ctx context.Context, target string) (*Result, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return &Result{Success: true}, nil
	})

	if len(outcomes) != 6 {
		t.Fatalf("expected 6 outcomes, got %d", len(outcomes))
	}
	if p := atomic.LoadInt32(&peak); p > 2 {
		t.Errorf("peak concurrency %d exceeds the configured bound 2", p)
	}
}

func TestBatchRunner_ZeroValuesDefaulted(t *testing.T) {
	r := &BatchRunner{}
	outcomes := r.Run(context.Background(), []string{"a"}, func(ctx context.Context, target string) (*Result, error) {
		return &Result{Success: true}, nil
	})
	if len(outcomes) != 1 || outcomes[0].Result == nil {
		t.Fatalf("zero-valued runner should still work: %+v", outcomes)
	}
}
