package heuristic

import (
	"context"
	"testing"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/detect"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/graph"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/services"
)

func evaluate(t *testing.T, h Heuristic, in Inputs) *Score {
	t.Helper()
	out, err := h.Evaluate(context.Background(), in)
	if err != nil {
		t.Fatalf("%s: Evaluate failed: %v", h.Name(), err)
	}
	return out.(*Score)
}

func TestPerformanceHeuristic_CleanPage(t *testing.T) {
	score := evaluate(t, &PerformanceHeuristic{}, Inputs{
		Performance: &detect.PerformanceReport{},
	})
	if score.Value != 100 {
		t.Errorf("clean page score = %v, want 100", score.Value)
	}
	if score.Grade != "A" {
		t.Errorf("grade = %q, want A", score.Grade)
	}
}

func TestPerformanceHeuristic_BlockingPenalty(t *testing.T) {
	cp := graph.CriticalPath{}
	for i := 0; i < 5; i++ {
		cp.RenderBlocking = append(cp.RenderBlocking, graph.BlockingResource{Position: i})
	}
	score := evaluate(t, &PerformanceHeuristic{}, Inputs{
		Performance: &detect.PerformanceReport{CriticalPath: cp},
	})
	if score.Value != 60 {
		t.Errorf("score = %v, want 60 (5 blocking * 8)", score.Value)
	}
}

func TestPerformanceHeuristic_NilReportNeutral(t *testing.T) {
	score := evaluate(t, &PerformanceHeuristic{}, Inputs{})
	if score.Value != 50 {
		t.Errorf("nil report score = %v, want neutral 50", score.Value)
	}
	if len(score.Findings) != 0 {
		t.Errorf("nil report must not fabricate findings: %v", score.Findings)
	}
}

func TestSecurityHeuristic_Penalties(t *testing.T) {
	score := evaluate(t, &SecurityHeuristic{}, Inputs{
		Privacy: &detect.PrivacyReport{
			TrackerCount: 2,
			Insecure:     []string{"http://px.example/p.gif"},
			Vulnerabilities: []detect.VulnerabilityFinding{
				{Service: "jQuery", CVE: services.CVE{ID: "CVE-2020-11022", Severity: "medium"}},
			},
		},
	})
	// 100 - 2*5 - 10 - 15 = 65
	if score.Value != 65 {
		t.Errorf("score = %v, want 65", score.Value)
	}

	var https, upgrade bool
	for _, r := range score.Recommendations {
		switch r.Type {
		case "enforce_https":
			https = true
		case "upgrade_vulnerable_libraries":
			upgrade = true
		}
	}
	if !https || !upgrade {
		t.Errorf("missing expected recommendations: %+v", score.Recommendations)
	}
}

func TestSecurityHeuristic_ScoreNeverNegative(t *testing.T) {
	var vulns []detect.VulnerabilityFinding
	for i := 0; i < 20; i++ {
		vulns = append(vulns, detect.VulnerabilityFinding{
			Service: "X", CVE: services.CVE{ID: "CVE-0000-0000", Severity: "critical"},
		})
	}
	score := evaluate(t, &SecurityHeuristic{}, Inputs{
		Privacy: &detect.PrivacyReport{Vulnerabilities: vulns},
	})
	if score.Value != 0 {
		t.Errorf("score = %v, want clamped to 0", score.Value)
	}
	if score.Grade != "F" {
		t.Errorf("grade = %q, want F", score.Grade)
	}
}

func TestStrategyHeuristic_RedundantAnalytics(t *testing.T) {
	score := evaluate(t, &StrategyHeuristic{}, Inputs{
		Services: &detect.ServiceReport{
			Total:      4,
			Identified: 4,
			ByCategory: map[string]int{"analytics": 4},
		},
	})
	// 100 - (4-2)*10 = 80
	if score.Value != 80 {
		t.Errorf("score = %v, want 80", score.Value)
	}

	var consolidate bool
	for _, r := range score.Recommendations {
		if r.Type == "consolidate_analytics" {
			consolidate = true
		}
	}
	if !consolidate {
		t.Error("expected a consolidate_analytics recommendation")
	}
}

func TestStrategyHeuristic_CyclePenalty(t *testing.T) {
	score := evaluate(t, &StrategyHeuristic{}, Inputs{
		Dependencies: &detect.DependencyReport{
			Cycles: graph.CycleReport{
				Cycles:   [][]graph.NodeID{{"a", "b"}},
				Severity: graph.SeverityLow,
			},
		},
	})
	if score.Value != 95 {
		t.Errorf("score = %v, want 95", score.Value)
	}
}

func TestHeuristics_AllNilInputsNeutral(t *testing.T) {
	for _, h := range All() {
		score := evaluate(t, h, Inputs{})
		if score.Value != 50 {
			t.Errorf("%s: all-nil inputs score = %v, want 50", h.Name(), score.Value)
		}
	}
}

func TestHeuristics_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, h := range All() {
		if _, err := h.Evaluate(ctx, Inputs{}); err == nil {
			t.Errorf("%s: expected error for cancelled context", h.Name())
		}
	}
}
