// Package pipeline orchestrates the two analysis phases: detectors fan out
// over the document, heuristics fan out over the detector results, and a
// final synchronous step combines whatever succeeded.
package pipeline

import (
	"time"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/detect"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/graph"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/heuristic"
)

// Phase names used in phase results and run-level errors.
const (
	PhaseDetector  = "detector"
	PhaseHeuristic = "heuristic"
	PhaseInput     = "input"
)

// PhaseResult is the uniform envelope every detector/heuristic invocation
// returns. Failures are data, never exceptions: a failed component carries
// its error string here and in the run-level error list.
type PhaseResult struct {
	Component     string  `json:"component"`
	Phase         string  `json:"phase"`
	Success       bool    `json:"success"`
	Data          any     `json:"data,omitempty"`
	Error         string  `json:"error,omitempty"`
	ExecutionTime float64 `json:"executionTime"`
}

// PhaseError is one entry of state.errors.
type PhaseError struct {
	Phase     string `json:"phase"`
	Component string `json:"component"`
	Error     string `json:"error"`
}

// RunState carries run-level error bookkeeping. Errors is always present,
// even when empty.
type RunState struct {
	Errors []PhaseError `json:"errors"`
}

// RunTiming reports wall-clock duration per stage, in milliseconds.
type RunTiming struct {
	DetectorPhaseMS  float64 `json:"detectorPhaseMs"`
	HeuristicPhaseMS float64 `json:"heuristicPhaseMs"`
	CombineMS        float64 `json:"combineMs"`
}

// Metadata describes the run itself.
type Metadata struct {
	Version        string                `json:"version"`
	PageURL        string                `json:"pageUrl,omitempty"`
	Context        heuristic.PageContext `json:"context"`
	DetectorCount  int                   `json:"detectorCount"`
	HeuristicCount int                   `json:"heuristicCount"`
}

// Result is the top-level analysis output. It is always returned; Success is
// false only for fatal input errors, while component failures leave Success
// true and surface in State.Errors.
type Result struct {
	Success       bool                   `json:"success"`
	Timestamp     time.Time              `json:"timestamp"`
	Detectors     map[string]PhaseResult `json:"detectors"`
	Heuristics    map[string]PhaseResult `json:"heuristics"`
	Combined      Combined               `json:"combined"`
	Metadata      Metadata               `json:"metadata"`
	Performance   RunTiming              `json:"performance"`
	State         RunState               `json:"state"`
	ExecutionTime float64                `json:"executionTime"`
}

// Summary is the combined result's headline counts. Counts default to zero
// when the contributing detector failed.
type Summary struct {
	ResourceCount       int `json:"resourceCount"`
	ServicesIdentified  int `json:"servicesIdentified"`
	TrackerCount        int `json:"trackerCount"`
	BlockingCount       int `json:"blockingCount"`
	CycleCount          int `json:"cycleCount"`
	DetectorsSucceeded  int `json:"detectorsSucceeded"`
	DetectorsFailed     int `json:"detectorsFailed"`
	HeuristicsSucceeded int `json:"heuristicsSucceeded"`
	HeuristicsFailed    int `json:"heuristicsFailed"`
}

// Scores carries the per-category scores and the weighted overall. Overall
// averages only the categories that actually produced a score.
type Scores struct {
	Overall    float64            `json:"overall"`
	Categories map[string]float64 `json:"categories"`
	Grades     map[string]string  `json:"grades"`
}

// SecuritySummary condenses the privacy detector and security heuristic.
type SecuritySummary struct {
	RiskLevel       string                        `json:"riskLevel"`
	Vulnerabilities []detect.VulnerabilityFinding `json:"vulnerabilities,omitempty"`
	Findings        []string                      `json:"findings,omitempty"`
}

// DependencySummary condenses the dependency detector output.
type DependencySummary struct {
	Statistics graph.Statistics  `json:"statistics"`
	Cycles     graph.CycleReport `json:"cycles"`
	Clusters   []graph.Cluster   `json:"clusters,omitempty"`
}

// Combined merges every successful phase result into one view. It is a pure
// function of the set of successful results; completion order never shows.
type Combined struct {
	Summary         Summary                   `json:"summary"`
	Scores          Scores                    `json:"scores"`
	Services        []detect.DetectedService  `json:"services"`
	Performance     *detect.PerformanceReport `json:"performance,omitempty"`
	Security        *SecuritySummary          `json:"security,omitempty"`
	Dependencies    *DependencySummary        `json:"dependencies,omitempty"`
	Recommendations []graph.Recommendation    `json:"recommendations"`
}
