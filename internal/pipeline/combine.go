package pipeline

import (
	"math"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/detect"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/graph"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/heuristic"
)

// scoreWeights drive the weighted overall. The average renormalizes over
// whichever categories actually produced a score, so a failed heuristic
// never drags the overall toward zero.
var scoreWeights = map[string]float64{
	heuristic.NamePerformance: 0.40,
	heuristic.NameSecurity:    0.35,
	heuristic.NameStrategy:    0.25,
}

// detectorOrder and heuristicOrder fix the iteration order of the combine
// step: the output must depend only on the set of successful results, never
// on goroutine completion order.
var detectorOrder = []string{
	detect.NameServices,
	detect.NamePerformance,
	detect.NamePrivacy,
	detect.NameDependencies,
}

var heuristicOrder = []string{
	heuristic.NamePerformance,
	heuristic.NameSecurity,
	heuristic.NameStrategy,
}

// Combine merges the settled phase results into one view. Failed components
// are skipped; their fields default to neutral values (zero counts, empty
// lists). Recommendations are concatenated per component, not deduplicated.
func Combine(detectors, heuristics map[string]PhaseResult) Combined {
	combined := Combined{
		Scores: Scores{
			Categories: make(map[string]float64),
			Grades:     make(map[string]string),
		},
		Services:        []detect.DetectedService{},
		Recommendations: []graph.Recommendation{},
	}

	for _, name := range detectorOrder {
		pr, ok := detectors[name]
		if !ok {
			continue
		}
		if !pr.Success {
			combined.Summary.DetectorsFailed++
			continue
		}
		combined.Summary.DetectorsSucceeded++

		switch name {
		case detect.NameServices:
			if r, ok := pr.Data.(*detect.ServiceReport); ok && r != nil {
				combined.Summary.ResourceCount = r.Total
				combined.Summary.ServicesIdentified = r.Identified
				combined.Services = append(combined.Services, r.Services...)
			}
		case detect.NamePerformance:
			if r, ok := pr.Data.(*detect.PerformanceReport); ok && r != nil {
				combined.Performance = r
				combined.Summary.BlockingCount = len(r.CriticalPath.RenderBlocking)
				combined.Recommendations = append(combined.Recommendations, r.CriticalPath.Recommendations...)
			}
		case detect.NamePrivacy:
			if r, ok := pr.Data.(*detect.PrivacyReport); ok && r != nil {
				combined.Summary.TrackerCount = r.TrackerCount
				combined.Security = &SecuritySummary{
					RiskLevel:       r.RiskLevel,
					Vulnerabilities: r.Vulnerabilities,
				}
			}
		case detect.NameDependencies:
			if r, ok := pr.Data.(*detect.DependencyReport); ok && r != nil && r.Graph != nil {
				combined.Summary.CycleCount = len(r.Cycles.Cycles)
				combined.Dependencies = &DependencySummary{
					Statistics: r.Graph.Stats,
					Cycles:     r.Cycles,
					Clusters:   r.Graph.Clusters,
				}
			}
		}
	}

	var weightedSum, weightTotal float64
	for _, name := range heuristicOrder {
		pr, ok := heuristics[name]
		if !ok {
			continue
		}
		if !pr.Success {
			combined.Summary.HeuristicsFailed++
			continue
		}
		combined.Summary.HeuristicsSucceeded++

		score, ok := pr.Data.(*heuristic.Score)
		if !ok || score == nil {
			continue
		}
		combined.Scores.Categories[name] = score.Value
		combined.Scores.Grades[name] = score.Grade
		weightedSum += scoreWeights[name] * score.Value
		weightTotal += scoreWeights[name]
		combined.Recommendations = append(combined.Recommendations, score.Recommendations...)

		if name == heuristic.NameSecurity && combined.Security != nil {
			combined.Security.Findings = score.Findings
		}
	}
	if weightTotal > 0 {
		combined.Scores.Overall = math.Round(weightedSum/weightTotal*10) / 10
	}

	return combined
}
