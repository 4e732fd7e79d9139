package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/detect"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/document"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/heuristic"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/services"
	sharederrors "github.com/Nimrod-Galor/Domain-Audit-sub002/internal/shared/errors"
)

// Version is stamped into result metadata.
const Version = "1.0.0"

const defaultComponentTimeout = 5 * time.Second

// Config wires an Analyzer. Zero values fall back to the full component
// sets, the default catalog and a no-op logger.
type Config struct {
	Detectors  []detect.Detector
	Heuristics []heuristic.Heuristic
	Catalog    *services.Catalog
	Logger     *zap.SugaredLogger

	// ComponentTimeout bounds each detector/heuristic invocation. A
	// component that overruns it becomes a failed phase result instead of
	// stalling the whole phase.
	ComponentTimeout time.Duration

	// IncludeFirstParty keeps same-host resources in the analysis.
	IncludeFirstParty bool
}

// Analyzer runs the two-phase analysis. It holds no per-call state: the
// graph and every intermediate result live and die inside one Analyze call,
// so a single Analyzer is safe for concurrent use.
type Analyzer struct {
	detectors  []detect.Detector
	heuristics []heuristic.Heuristic
	catalog    *services.Catalog
	logger     *zap.SugaredLogger
	timeout    time.Duration
	firstParty bool
}

// New constructs an Analyzer from explicit configuration.
func New(cfg Config) *Analyzer {
	a := &Analyzer{
		detectors:  cfg.Detectors,
		heuristics: cfg.Heuristics,
		catalog:    cfg.Catalog,
		logger:     cfg.Logger,
		timeout:    cfg.ComponentTimeout,
		firstParty: cfg.IncludeFirstParty,
	}
	if a.detectors == nil {
		a.detectors = detect.All()
	}
	if a.heuristics == nil {
		a.heuristics = heuristic.All()
	}
	if a.catalog == nil {
		a.catalog = services.DefaultCatalog()
	}
	if a.logger == nil {
		a.logger = zap.NewNop().Sugar()
	}
	if a.timeout <= 0 {
		a.timeout = defaultComponentTimeout
	}
	return a
}

// Analyze inspects one document. The result is always non-nil; a fatal
// input error yields Success=false and a matching sentinel error, while
// component failures keep Success=true and land in State.Errors.
func (a *Analyzer) Analyze(ctx context.Context, doc *document.Document, pageCtx heuristic.PageContext) (*Result, error) {
	started := time.Now()
	result := &Result{
		Timestamp:  started.UTC(),
		Detectors:  make(map[string]PhaseResult),
		Heuristics: make(map[string]PhaseResult),
		State:      RunState{Errors: []PhaseError{}},
		Metadata: Metadata{
			Version:        Version,
			PageURL:        pageCtx.URL,
			Context:        pageCtx,
			DetectorCount:  len(a.detectors),
			HeuristicCount: len(a.heuristics),
		},
	}

	if doc == nil {
		result.State.Errors = append(result.State.Errors, PhaseError{
			Phase: PhaseInput,
			Error: sharederrors.ErrMissingDocument.Error(),
		})
		result.ExecutionTime = msSince(started)
		return result, sharederrors.ErrMissingDocument
	}
	if len(a.detectors) == 0 {
		result.State.Errors = append(result.State.Errors, PhaseError{
			Phase: PhaseInput,
			Error: sharederrors.ErrNoDetectors.Error(),
		})
		result.ExecutionTime = msSince(started)
		return result, sharederrors.ErrNoDetectors
	}

	opts := detect.Options{
		PageURL:           pageCtx.URL,
		Catalog:           a.catalog,
		IncludeFirstParty: a.firstParty,
	}

	// Phase 1: all detectors launch together; the WaitGroup is the barrier.
	phaseStart := time.Now()
	detectorResults := make([]PhaseResult, len(a.detectors))
	var wg sync.WaitGroup
	for i, d := range a.detectors {
		wg.Add(1)
		go func(i int, d detect.Detector) {
			defer wg.Done()
			detectorResults[i] = a.invoke(ctx, PhaseDetector, d.Name(), func(callCtx context.Context) (any, error) {
				return d.Detect(callCtx, doc, opts)
			})
		}(i, d)
	}
	wg.Wait()
	result.Performance.DetectorPhaseMS = msSince(phaseStart)

	for _, pr := range detectorResults {
		result.Detectors[pr.Component] = pr
		if !pr.Success {
			result.State.Errors = append(result.State.Errors, PhaseError{
				Phase: PhaseDetector, Component: pr.Component, Error: pr.Error,
			})
		}
	}

	// Phase 2 starts only after every detector settled; heuristics see the
	// complete (possibly partial) detector output.
	inputs := buildInputs(result.Detectors, pageCtx)

	phaseStart = time.Now()
	heuristicResults := make([]PhaseResult, len(a.heuristics))
	for i, h := range a.heuristics {
		wg.Add(1)
		go func(i int, h heuristic.Heuristic) {
			defer wg.Done()
			heuristicResults[i] = a.invoke(ctx, PhaseHeuristic, h.Name(), func(callCtx context.Context) (any, error) {
				return h.Evaluate(callCtx, inputs)
			})
		}(i, h)
	}
	wg.Wait()
	result.Performance.HeuristicPhaseMS = msSince(phaseStart)

	for _, pr := range heuristicResults {
		result.Heuristics[pr.Component] = pr
		if !pr.Success {
			result.State.Errors = append(result.State.Errors, PhaseError{
				Phase: PhaseHeuristic, Component: pr.Component, Error: pr.Error,
			})
		}
	}

	combineStart := time.Now()
	result.Combined = Combine(result.Detectors, result.Heuristics)
	result.Performance.CombineMS = msSince(combineStart)

	result.Success = true
	result.ExecutionTime = msSince(started)
	a.logger.Infow("analysis complete",
		"url", pageCtx.URL,
		"resources", result.Combined.Summary.ResourceCount,
		"errors", len(result.State.Errors),
		"overall", result.Combined.Scores.Overall)
	return result, nil
}

// invoke wraps one component call: its own timeout, panic recovery, and the
// uniform envelope. Errors come back as data, never as control flow. The
// call runs in its own goroutine so a hanging component turns into a failed
// result instead of stalling the phase barrier.
func (a *Analyzer) invoke(ctx context.Context, phase, name string, call func(context.Context) (any, error)) PhaseResult {
	started := time.Now()
	pr := PhaseResult{Component: name, Phase: phase}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	type outcome struct {
		data any
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.logger.Errorw("component panicked", "phase", phase, "component", name, "panic", r)
				done <- outcome{err: fmt.Errorf("%w: %v", sharederrors.ErrComponentPanic, r)}
			}
		}()
		data, err := call(callCtx)
		done <- outcome{data: data, err: err}
	}()

	select {
	case o := <-done:
		pr.ExecutionTime = msSince(started)
		if o.err != nil {
			pr.Error = o.err.Error()
			a.logger.Warnw("component failed", "phase", phase, "component", name, "error", o.err)
			return pr
		}
		pr.Success = true
		pr.Data = o.data
		return pr
	case <-callCtx.Done():
		// Buffered channel: the abandoned goroutine can still send its
		// late result without leaking.
		pr.ExecutionTime = msSince(started)
		pr.Error = fmt.Errorf("%w after %s", sharederrors.ErrPhaseTimeout, a.timeout).Error()
		a.logger.Warnw("component timed out", "phase", phase, "component", name, "timeout", a.timeout)
		return pr
	}
}

// buildInputs assembles the phase-2 input bag from whichever detectors
// succeeded. A failed detector leaves its field nil.
func buildInputs(detectors map[string]PhaseResult, pageCtx heuristic.PageContext) heuristic.Inputs {
	in := heuristic.Inputs{Context: pageCtx}
	if pr, ok := detectors[detect.NameServices]; ok && pr.Success {
		in.Services, _ = pr.Data.(*detect.ServiceReport)
	}
	if pr, ok := detectors[detect.NamePerformance]; ok && pr.Success {
		in.Performance, _ = pr.Data.(*detect.PerformanceReport)
	}
	if pr, ok := detectors[detect.NamePrivacy]; ok && pr.Success {
		in.Privacy, _ = pr.Data.(*detect.PrivacyReport)
	}
	if pr, ok := detectors[detect.NameDependencies]; ok && pr.Success {
		in.Dependencies, _ = pr.Data.(*detect.DependencyReport)
	}
	return in
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t)) / float64(time.Millisecond)
}
