package heuristic

import (
	"context"
	"fmt"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/graph"
)

// SecurityHeuristic scores the page's third-party security and privacy
// posture from the privacy and dependency detector outputs.
type SecurityHeuristic struct{}

func (h *SecurityHeuristic) Name() string { return NameSecurity }

func (h *SecurityHeuristic) Evaluate(ctx context.Context, in Inputs) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	score := &Score{Value: 100}
	if in.Privacy == nil && in.Dependencies == nil {
		score.Value = 50
		score.Grade = grade(score.Value)
		return score, nil
	}

	if in.Privacy != nil {
		p := in.Privacy
		score.Value -= float64(p.TrackerCount * 5)
		if p.TrackerCount > 0 {
			score.Findings = append(score.Findings,
				fmt.Sprintf("%d tracking/advertising services detected", p.TrackerCount))
		}
		for _, v := range p.Vulnerabilities {
			penalty := 10.0
			if v.CVE.Severity == "high" || v.CVE.Severity == "critical" {
				penalty = 20
			}
			score.Value -= penalty
			score.Findings = append(score.Findings,
				fmt.Sprintf("%s affected by %s", v.Service, v.CVE.ID))
		}
		if len(p.Vulnerabilities) > 0 {
			score.Recommendations = append(score.Recommendations, graph.Recommendation{
				Type:     "upgrade_vulnerable_libraries",
				Severity: "high",
				Message:  "upgrade third-party libraries with known CVEs",
			})
		}
		for _, u := range p.Insecure {
			score.Value -= 15
			score.Findings = append(score.Findings, "resource loaded over plain HTTP: "+u)
		}
		if len(p.Insecure) > 0 {
			score.Recommendations = append(score.Recommendations, graph.Recommendation{
				Type:     "enforce_https",
				Severity: "high",
				Message:  "serve all third-party resources over HTTPS",
			})
		}
	}

	if in.Dependencies != nil && in.Dependencies.Graph != nil {
		for _, e := range in.Dependencies.Graph.Edges {
			if e.Type == graph.EdgeConflicting {
				score.Value -= 5
				from, _ := in.Dependencies.Graph.Node(e.From)
				to, _ := in.Dependencies.Graph.Node(e.To)
				score.Findings = append(score.Findings,
					fmt.Sprintf("conflicting services loaded together: %s and %s", from.Name, to.Name))
			}
		}
	}

	score.Value = clamp(score.Value)
	score.Grade = grade(score.Value)
	return score, nil
}
