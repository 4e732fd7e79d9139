package detect

import (
	"context"
	"sort"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/document"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/extract"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/graph"
)

// ServiceWeight pairs a service with its static load estimate.
type ServiceWeight struct {
	Service     string `json:"service"`
	URL         string `json:"url"`
	EstimatedMS int    `json:"estimated_ms"`
}

// PerformanceReport describes the page's third-party load cost. All figures
// are static estimates, not measurements.
type PerformanceReport struct {
	CriticalPath     graph.CriticalPath `json:"critical_path"`
	ResourceCount    int                `json:"resource_count"`
	TotalEstimatedMS int                `json:"total_estimated_ms"`
	Heaviest         []ServiceWeight    `json:"heaviest,omitempty"`
}

// PerformanceDetector estimates third-party performance impact.
type PerformanceDetector struct{}

func (d *PerformanceDetector) Name() string { return NamePerformance }

func (d *PerformanceDetector) Detect(ctx context.Context, doc *document.Document, opts Options) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	catalog := opts.catalog()
	resources := extract.Extract(doc, extract.Options{
		PageURL:           opts.PageURL,
		IncludeFirstParty: opts.IncludeFirstParty,
	})

	report := &PerformanceReport{
		CriticalPath:  graph.ExtractCriticalPath(resources, catalog),
		ResourceCount: len(resources),
	}

	for _, r := range resources {
		desc, ok := catalog.Identify(r.URL)
		if !ok {
			continue
		}
		report.TotalEstimatedMS += desc.EstimatedLoadMS
		report.Heaviest = append(report.Heaviest, ServiceWeight{
			Service:     desc.Name,
			URL:         r.URL,
			EstimatedMS: desc.EstimatedLoadMS,
		})
	}
	sort.SliceStable(report.Heaviest, func(i, j int) bool {
		return report.Heaviest[i].EstimatedMS > report.Heaviest[j].EstimatedMS
	})
	if len(report.Heaviest) > 5 {
		report.Heaviest = report.Heaviest[:5]
	}
	return report, nil
}
