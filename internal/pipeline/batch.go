package pipeline

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// TargetOutcome pairs one batch target with its analysis result.
type TargetOutcome struct {
	Target string  `json:"target"`
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// AnalyzeFunc produces a result for one target (fetch + parse + analyze).
type AnalyzeFunc func(ctx context.Context, target string) (*Result, error)

// BatchRunner fans a set of targets out over a bounded worker pool with a
// global rate limit. One target's failure never affects the others.
type BatchRunner struct {
	Concurrency int           // Maximum number of in-flight targets
	RateLimit   int           // Target launches per second (global)
	Timeout     time.Duration // Timeout for each target
}

// Run analyzes every target and returns outcomes in input order.
func (r *BatchRunner) Run(ctx context.Context, targets []string, fn AnalyzeFunc) []TargetOutcome {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	rateLimit := r.RateLimit
	if rateLimit <= 0 {
		rateLimit = 1
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limiter := rate.NewLimiter(rate.Limit(rateLimit), rateLimit)
	sem := make(chan struct{}, concurrency)
	outcomes := make([]TargetOutcome, len(targets))
	var wg sync.WaitGroup

	for i, target := range targets {
		wg.Add(1)
		go func(i int, target string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			outcomes[i].Target = target
			if err := limiter.Wait(ctx); err != nil {
				outcomes[i].Error = err.Error()
				return
			}

			runCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			res, err := fn(runCtx, target)
			outcomes[i].Result = res
			if err != nil {
				outcomes[i].Error = err.Error()
			}
		}(i, target)
	}

	wg.Wait()
	return outcomes
}
