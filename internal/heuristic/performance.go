package heuristic

import (
	"context"
	"fmt"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/graph"
)

// PerformanceHeuristic scores the page's third-party load cost. Penalties
// are driven by blocking-resource count, bottlenecks and estimated weight.
type PerformanceHeuristic struct{}

func (h *PerformanceHeuristic) Name() string { return NamePerformance }

func (h *PerformanceHeuristic) Evaluate(ctx context.Context, in Inputs) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	score := &Score{Value: 100}
	if in.Performance == nil {
		// Detector failed; a neutral passing score with no findings keeps
		// the combined result usable.
		score.Value = 50
		score.Grade = grade(score.Value)
		return score, nil
	}

	cp := in.Performance.CriticalPath
	blocking := len(cp.RenderBlocking)
	score.Value -= float64(blocking * 8)
	if blocking > 0 {
		score.Findings = append(score.Findings,
			fmt.Sprintf("%d render-blocking third-party resources", blocking))
	}

	score.Value -= float64(len(cp.Bottlenecks) * 12)
	for _, b := range cp.Bottlenecks {
		score.Findings = append(score.Findings,
			fmt.Sprintf("typically-slow service %s on the critical path", b.Service))
	}

	switch {
	case in.Performance.TotalEstimatedMS > 1500:
		score.Value -= 20
		score.Findings = append(score.Findings,
			fmt.Sprintf("estimated third-party weight %dms", in.Performance.TotalEstimatedMS))
	case in.Performance.TotalEstimatedMS > 700:
		score.Value -= 10
	}

	score.Value = clamp(score.Value)
	score.Grade = grade(score.Value)
	// The critical-path recommendations travel with the detector report;
	// only heuristic-level advice is added here.
	if score.Value < 65 {
		score.Recommendations = append(score.Recommendations, graph.Recommendation{
			Type:     "defer_third_party",
			Severity: "medium",
			Message:  "load non-critical third-party scripts with async or defer",
		})
	}
	return score, nil
}
