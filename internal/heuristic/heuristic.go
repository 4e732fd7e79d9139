// Package heuristic holds the phase-2 scorers. Each heuristic consumes the
// complete detector output and degrades gracefully when a detector failed:
// every report pointer in Inputs may be nil.
package heuristic

import (
	"context"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/detect"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/graph"
)

// Heuristic names, used as phase-result keys and score categories.
const (
	NamePerformance = "performance"
	NameSecurity    = "security"
	NameStrategy    = "strategy"
)

// PageContext is the optional caller-supplied context for an analysis.
type PageContext struct {
	URL            string   `json:"url,omitempty"`
	TargetKeywords []string `json:"target_keywords,omitempty"`
	Industry       string   `json:"industry,omitempty"`
}

// Inputs carries the settled detector results into phase 2. A nil field
// means that detector failed; heuristics score whatever is present.
type Inputs struct {
	Services     *detect.ServiceReport
	Performance  *detect.PerformanceReport
	Privacy      *detect.PrivacyReport
	Dependencies *detect.DependencyReport
	Context      PageContext
}

// Score is the uniform heuristic output: a 0-100 score with supporting
// findings and recommendations.
type Score struct {
	Value           float64                `json:"value"`
	Grade           string                 `json:"grade"`
	Findings        []string               `json:"findings,omitempty"`
	Recommendations []graph.Recommendation `json:"recommendations,omitempty"`
}

// Heuristic is implemented by every phase-2 scorer.
type Heuristic interface {
	// Name returns the stable component name, which doubles as the score
	// category in the combined result.
	Name() string

	// Evaluate scores the detector outputs. An error marks the component
	// failed without affecting its siblings.
	Evaluate(ctx context.Context, in Inputs) (any, error)
}

// All returns the full heuristic set in canonical order.
func All() []Heuristic {
	return []Heuristic{
		&PerformanceHeuristic{},
		&SecurityHeuristic{},
		&StrategyHeuristic{},
	}
}

func grade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 65:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
