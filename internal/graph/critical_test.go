package graph

import (
	"strings"
	"testing"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/extract"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/services"
)

func TestExtractCriticalPath_FiveBlockingScripts(t *testing.T) {
	var resources []extract.Resource
	for i := 0; i < 5; i++ {
		resources = append(resources, extract.Resource{
			Kind:     extract.KindScript,
			URL:      "https://vendor.example/script-" + string(rune('a'+i)) + ".js",
			Position: i,
		})
	}

	cp := ExtractCriticalPath(resources, services.DefaultCatalog())
	if len(cp.RenderBlocking) != 5 {
		t.Fatalf("RenderBlocking length = %d, want 5", len(cp.RenderBlocking))
	}

	var found bool
	for _, r := range cp.Recommendations {
		if r.Type == "reduce_blocking_count" {
			found = true
		}
	}
	if !found {
		t.Error("expected a reduce_blocking_count recommendation")
	}
}

func TestExtractCriticalPath_AsyncExcluded(t *testing.T) {
	resources := []extract.Resource{
		{Kind: extract.KindScript, URL: "https://a.example/block.js", Position: 0},
		{Kind: extract.KindScript, URL: "https://b.example/async.js", Async: true, Position: 1},
		{Kind: extract.KindScript, URL: "https://c.example/defer.js", Defer: true, Position: 2},
	}

	cp := ExtractCriticalPath(resources, services.DefaultCatalog())
	if len(cp.RenderBlocking) != 1 {
		t.Fatalf("RenderBlocking length = %d, want 1", len(cp.RenderBlocking))
	}
	if cp.RenderBlocking[0].URL != "https://a.example/block.js" {
		t.Errorf("unexpected blocking resource %q", cp.RenderBlocking[0].URL)
	}
}

func TestExtractCriticalPath_DocumentOrder(t *testing.T) {
	resources := []extract.Resource{
		{Kind: extract.KindScript, URL: "https://late.example/z.js", Position: 9},
		{Kind: extract.KindScript, URL: "https://early.example/a.js", Position: 1},
	}

	cp := ExtractCriticalPath(resources, services.DefaultCatalog())
	if len(cp.RenderBlocking) != 2 {
		t.Fatalf("RenderBlocking length = %d, want 2", len(cp.RenderBlocking))
	}
	if cp.RenderBlocking[0].Position != 1 || cp.RenderBlocking[1].Position != 9 {
		t.Errorf("blocking resources not in document order: %+v", cp.RenderBlocking)
	}
}

func TestExtractCriticalPath_Bottlenecks(t *testing.T) {
	resources := []extract.Resource{
		{Kind: extract.KindScript, URL: "https://securepubads.doubleclick.net/tag/js/gpt.js", Position: 0},
		{Kind: extract.KindScript, URL: "https://fast.example/ok.js", Position: 1},
	}

	cp := ExtractCriticalPath(resources, services.DefaultCatalog())
	if len(cp.Bottlenecks) != 1 {
		t.Fatalf("expected 1 bottleneck, got %d", len(cp.Bottlenecks))
	}
	if cp.Bottlenecks[0].Service != "DoubleClick" {
		t.Errorf("bottleneck service = %q, want DoubleClick", cp.Bottlenecks[0].Service)
	}

	var rec *Recommendation
	for i := range cp.Recommendations {
		if cp.Recommendations[i].Type == "address_bottlenecks" {
			rec = &cp.Recommendations[i]
		}
	}
	if rec == nil {
		t.Fatal("expected an address_bottlenecks recommendation")
	}
	if want := "DoubleClick"; !strings.Contains(rec.Message, want) {
		t.Errorf("recommendation %q should name %q", rec.Message, want)
	}
}

func TestExtractCriticalPath_EstimatedWeight(t *testing.T) {
	resources := []extract.Resource{
		{Kind: extract.KindScript, URL: "https://code.jquery.com/jquery-3.6.0.min.js", Position: 0},
		{Kind: extract.KindScript, URL: "https://stackpath.bootstrapcdn.com/bootstrap/4.0.0/js/bootstrap.min.js", Position: 1},
	}

	cp := ExtractCriticalPath(resources, services.DefaultCatalog())
	if cp.EstimatedMS != 190 {
		t.Errorf("EstimatedMS = %d, want 190 (90 jquery + 100 bootstrap)", cp.EstimatedMS)
	}
}
