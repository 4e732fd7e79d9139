package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/extract"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/services"
)

// maxBlockingBeforeWarning is the blocking-resource count above which a
// reduce_blocking_count recommendation is emitted.
const maxBlockingBeforeWarning = 3

// Recommendation is an actionable finding emitted by an analyzer.
type Recommendation struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// BlockingResource is one entry on the critical rendering path.
type BlockingResource struct {
	URL        string       `json:"url"`
	Kind       extract.Kind `json:"kind"`
	Position   int          `json:"position"`
	Service    string       `json:"service,omitempty"`
	Bottleneck bool         `json:"bottleneck,omitempty"`
	// EstimatedMS is a static estimate from the catalog, not a measurement.
	EstimatedMS int `json:"estimated_ms,omitempty"`
}

// CriticalPath lists the resources that gate first paint, in document order
// (a proxy for request issuance order, not measured timing).
type CriticalPath struct {
	RenderBlocking  []BlockingResource `json:"render_blocking"`
	Bottlenecks     []BlockingResource `json:"bottlenecks"`
	EstimatedMS     int                `json:"estimated_ms"`
	Recommendations []Recommendation   `json:"recommendations"`
}

// ExtractCriticalPath selects the render-blocking resources, orders them by
// document position and flags bottlenecks against the catalog's
// typically-slow pattern set.
func ExtractCriticalPath(resources []extract.Resource, catalog *services.Catalog) CriticalPath {
	if catalog == nil {
		catalog = services.DefaultCatalog()
	}

	var cp CriticalPath
	for _, r := range resources {
		if !r.RenderBlocking() {
			continue
		}
		br := BlockingResource{
			URL:        r.URL,
			Kind:       r.Kind,
			Position:   r.Position,
			Bottleneck: catalog.IsSlow(r.URL),
		}
		if desc, ok := catalog.Identify(r.URL); ok {
			br.Service = desc.Name
			br.EstimatedMS = desc.EstimatedLoadMS
		}
		cp.RenderBlocking = append(cp.RenderBlocking, br)
		cp.EstimatedMS += br.EstimatedMS
		if br.Bottleneck {
			cp.Bottlenecks = append(cp.Bottlenecks, br)
		}
	}

	sort.SliceStable(cp.RenderBlocking, func(i, j int) bool {
		return cp.RenderBlocking[i].Position < cp.RenderBlocking[j].Position
	})
	sort.SliceStable(cp.Bottlenecks, func(i, j int) bool {
		return cp.Bottlenecks[i].Position < cp.Bottlenecks[j].Position
	})

	if len(cp.RenderBlocking) > maxBlockingBeforeWarning {
		cp.Recommendations = append(cp.Recommendations, Recommendation{
			Type:     "reduce_blocking_count",
			Severity: "medium",
			Message: fmt.Sprintf("%d render-blocking resources found; add async or defer to non-critical scripts",
				len(cp.RenderBlocking)),
		})
	}
	if len(cp.Bottlenecks) > 0 {
		names := make([]string, 0, len(cp.Bottlenecks))
		for _, b := range cp.Bottlenecks {
			if b.Service != "" {
				names = append(names, b.Service)
			} else {
				names = append(names, b.URL)
			}
		}
		cp.Recommendations = append(cp.Recommendations, Recommendation{
			Type:     "address_bottlenecks",
			Severity: "high",
			Message:  "typically-slow services on the critical path: " + strings.Join(names, ", "),
		})
	}
	return cp
}
