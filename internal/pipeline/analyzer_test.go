package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/detect"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/document"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/heuristic"
	sharederrors "github.com/Nimrod-Galor/Domain-Audit-sub002/internal/shared/errors"
)

const analyzerPage = `<!DOCTYPE html>
<html><head>
<script src="https://www.google-analytics.com/analytics.js"></script>
<script src="https://code.jquery.com/jquery-3.6.0.min.js"></script>
<script src="https://stackpath.bootstrapcdn.com/bootstrap/4.0.0/js/bootstrap.min.js"></script>
<script src="https://vendor-a.example/one.js"></script>
<script src="https://vendor-b.example/two.js"></script>
</head><body></body></html>`

func parseDoc(t *testing.T, s string) *document.Document {
	t.Helper()
	doc, err := document.ParseString(s)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return doc
}

// failingDetector always errors.
type failingDetector struct{ name string }

func (d *failingDetector) Name() string { return d.name }
func (d *failingDetector) Detect(ctx context.Context, doc *document.Document, opts detect.Options) (any, error) {
	return nil, errors.New("synthetic failure")
}

// panickingDetector panics mid-flight.
type panickingDetector struct{}

func (d *panickingDetector) Name() string { return "panicking" }
func (d *panickingDetector) Detect(ctx context.Context, doc *document.Document, opts detect.Options) (any, error) {
	panic("boom")
}

// hangingDetector ignores its context and never returns.
type hangingDetector struct{}

func (d *hangingDetector) Name() string { return "hanging" }
func (d *hangingDetector) Detect(ctx context.Context, doc *document.Document, opts detect.Options) (any, error) {
	select {}
}

func TestAnalyze_NilDocument(t *testing.T) {
	a := New(Config{})
	res, err := a.Analyze(context.Background(), nil, heuristic.PageContext{})
	if !errors.Is(err, sharederrors.ErrMissingDocument) {
		t.Fatalf("expected ErrMissingDocument, got %v", err)
	}
	if res == nil {
		t.Fatal("result must always be returned")
	}
	if res.Success {
		t.Error("input errors are fatal: Success must be false")
	}
	if len(res.State.Errors) != 1 || res.State.Errors[0].Phase != PhaseInput {
		t.Errorf("expected one input-phase error, got %+v", res.State.Errors)
	}
}

func TestAnalyze_FullRun(t *testing.T) {
	a := New(Config{})
	res, err := a.Analyze(context.Background(), parseDoc(t, analyzerPage), heuristic.PageContext{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !res.Success {
		t.Error("expected Success=true")
	}
	if len(res.State.Errors) != 0 {
		t.Errorf("expected no errors, got %+v", res.State.Errors)
	}
	if len(res.Detectors) != 4 || len(res.Heuristics) != 3 {
		t.Errorf("expected 4 detectors and 3 heuristics, got %d/%d", len(res.Detectors), len(res.Heuristics))
	}
	if res.Combined.Summary.ResourceCount != 5 {
		t.Errorf("ResourceCount = %d, want 5", res.Combined.Summary.ResourceCount)
	}
	// 5 blocking scripts trip the reduce_blocking_count recommendation.
	if res.Combined.Summary.BlockingCount != 5 {
		t.Errorf("BlockingCount = %d, want 5", res.Combined.Summary.BlockingCount)
	}
	var reduce bool
	for _, r := range res.Combined.Recommendations {
		if r.Type == "reduce_blocking_count" {
			reduce = true
		}
	}
	if !reduce {
		t.Error("expected a reduce_blocking_count recommendation")
	}
	if res.Combined.Scores.Overall <= 0 {
		t.Errorf("Overall = %v, want > 0", res.Combined.Scores.Overall)
	}
}

func TestAnalyze_PartialDetectorFailure(t *testing.T) {
	a := New(Config{
		Detectors: []detect.Detector{
			&detect.ServiceDetector{},
			&failingDetector{name: "broken-a"},
			&failingDetector{name: "broken-b"},
			&detect.DependencyDetector{},
		},
	})
	res, err := a.Analyze(context.Background(), parseDoc(t, analyzerPage), heuristic.PageContext{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !res.Success {
		t.Error("component failures must not flip top-level Success")
	}

	var detectorErrors int
	for _, e := range res.State.Errors {
		if e.Phase != PhaseDetector {
			t.Errorf("unexpected error phase %q", e.Phase)
		}
		detectorErrors++
	}
	if detectorErrors != 2 {
		t.Fatalf("expected exactly 2 detector errors, got %d", detectorErrors)
	}

	// The summary is still produced from the surviving detectors.
	if res.Combined.Summary.ResourceCount != 5 {
		t.Errorf("ResourceCount = %d, want 5 from the surviving service detector", res.Combined.Summary.ResourceCount)
	}
	if res.Combined.Summary.DetectorsFailed != 2 || res.Combined.Summary.DetectorsSucceeded != 2 {
		t.Errorf("detector counts = %d ok / %d failed, want 2/2",
			res.Combined.Summary.DetectorsSucceeded, res.Combined.Summary.DetectorsFailed)
	}

	// All three heuristics still ran: missing detector reports degrade to
	// neutral scores, they do not fail the heuristic.
	if res.Combined.Summary.HeuristicsSucceeded != 3 {
		t.Errorf("HeuristicsSucceeded = %d, want 3", res.Combined.Summary.HeuristicsSucceeded)
	}
	if res.Combined.Scores.Overall == 0 {
		t.Error("overall score must be computed from the present categories")
	}
}

func TestAnalyze_OverallSkipsAbsentCategories(t *testing.T) {
	// Only the strategy heuristic runs; overall must equal its score, not
	// be dragged down by the two missing categories.
	a := New(Config{
		Heuristics: []heuristic.Heuristic{&heuristic.StrategyHeuristic{}},
	})
	res, err := a.Analyze(context.Background(), parseDoc(t, analyzerPage), heuristic.PageContext{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	strategy := res.Combined.Scores.Categories[heuristic.NameStrategy]
	if res.Combined.Scores.Overall != strategy {
		t.Errorf("Overall = %v, want the sole category score %v", res.Combined.Scores.Overall, strategy)
	}
}

func TestAnalyze_PanicIsolated(t *testing.T) {
	a := New(Config{
		Detectors: []detect.Detector{&panickingDetector{}, &detect.ServiceDetector{}},
	})
	res, err := a.Analyze(context.Background(), parseDoc(t, analyzerPage), heuristic.PageContext{})
	if err != nil {
		t.Fatalf("a panicking component must not abort the run: %v", err)
	}
	pr := res.Detectors["panicking"]
	if pr.Success {
		t.Error("panicking detector should be marked failed")
	}
	if !res.Detectors[detect.NameServices].Success {
		t.Error("sibling detector should be unaffected by the panic")
	}
}

func TestAnalyze_HangingComponentTimesOut(t *testing.T) {
	a := New(Config{
		Detectors:        []detect.Detector{&hangingDetector{}, &detect.ServiceDetector{}},
		ComponentTimeout: 50 * time.Millisecond,
	})

	start := time.Now()
	res, err := a.Analyze(context.Background(), parseDoc(t, analyzerPage), heuristic.PageContext{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("phase barrier stalled for %s despite component timeout", elapsed)
	}
	if res.Detectors["hanging"].Success {
		t.Error("hanging detector should be marked failed")
	}
	if len(res.State.Errors) != 1 {
		t.Errorf("expected 1 timeout error, got %+v", res.State.Errors)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	a := New(Config{})
	doc := parseDoc(t, analyzerPage)

	first, err := a.Analyze(context.Background(), doc, heuristic.PageContext{URL: "https://example.com/"})
	if err != nil {
		t.Fatalf("first Analyze failed: %v", err)
	}
	second, err := a.Analyze(context.Background(), doc, heuristic.PageContext{URL: "https://example.com/"})
	if err != nil {
		t.Fatalf("second Analyze failed: %v", err)
	}

	a1, err := json.Marshal(first.Combined)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	b2, err := json.Marshal(second.Combined)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(a1) != string(b2) {
		t.Errorf("combined output differs across identical runs:\n%s\n%s", a1, b2)
	}
}

func TestAnalyze_NoDetectors(t *testing.T) {
	a := New(Config{Detectors: []detect.Detector{}})
	_, err := a.Analyze(context.Background(), parseDoc(t, analyzerPage), heuristic.PageContext{})
	if !errors.Is(err, sharederrors.ErrNoDetectors) {
		t.Errorf("expected ErrNoDetectors, got %v", err)
	}
}

func TestAnalyze_StateErrorsAlwaysPresent(t *testing.T) {
	a := New(Config{})
	res, err := a.Analyze(context.Background(), parseDoc(t, analyzerPage), heuristic.PageContext{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	raw, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	state, ok := decoded["state"].(map[string]any)
	if !ok {
		t.Fatal("state key missing from serialized result")
	}
	if _, ok := state["errors"]; !ok {
		t.Error("state.errors must be present even when empty")
	}
}
