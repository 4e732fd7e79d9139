package heuristic

import (
	"context"
	"fmt"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/graph"
)

// StrategyHeuristic judges the composition of the third-party stack:
// redundant services in one category, dependency cycles, and fit against
// the caller's stated context.
type StrategyHeuristic struct{}

func (h *StrategyHeuristic) Name() string { return NameStrategy }

func (h *StrategyHeuristic) Evaluate(ctx context.Context, in Inputs) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	score := &Score{Value: 100}
	if in.Services == nil && in.Dependencies == nil {
		score.Value = 50
		score.Grade = grade(score.Value)
		return score, nil
	}

	if in.Services != nil {
		for _, category := range []string{"analytics", "advertising"} {
			if n := in.Services.ByCategory[category]; n > 2 {
				score.Value -= float64((n - 2) * 10)
				score.Findings = append(score.Findings,
					fmt.Sprintf("%d %s services on one page", n, category))
				score.Recommendations = append(score.Recommendations, graph.Recommendation{
					Type:     "consolidate_" + category,
					Severity: "low",
					Message:  fmt.Sprintf("consolidate overlapping %s services", category),
				})
			}
		}
		if unknown := in.Services.Total - in.Services.Identified; unknown > 3 {
			score.Value -= 10
			score.Findings = append(score.Findings,
				fmt.Sprintf("%d unidentified third-party resources", unknown))
		}
	}

	if in.Dependencies != nil {
		cycles := in.Dependencies.Cycles
		switch cycles.Severity {
		case graph.SeverityLow:
			score.Value -= 5
		case graph.SeverityMedium:
			score.Value -= 15
		case graph.SeverityHigh:
			score.Value -= 30
		}
		if len(cycles.Cycles) > 0 {
			score.Findings = append(score.Findings,
				fmt.Sprintf("%d dependency cycles among services", len(cycles.Cycles)))
			score.Recommendations = append(score.Recommendations, graph.Recommendation{
				Type:     "break_dependency_cycles",
				Severity: string(cycles.Severity),
				Message:  "resolve circular service dependencies in load order",
			})
		}
	}

	// Context-aware nudge: pages that declare a content focus but carry a
	// heavy advertising stack dilute that focus.
	if in.Services != nil && len(in.Context.TargetKeywords) > 0 &&
		in.Services.ByCategory["advertising"] > in.Services.ByCategory["analytics"] {
		score.Findings = append(score.Findings,
			"advertising services outnumber analytics despite a stated content focus")
	}

	score.Value = clamp(score.Value)
	score.Grade = grade(score.Value)
	return score, nil
}
