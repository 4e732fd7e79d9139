package detect

import (
	"context"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/document"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/extract"
)

// DetectedService is one resource after identification.
type DetectedService struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	URL        string `json:"url"`
	Loading    string `json:"loading_pattern"`
	Identified bool   `json:"identified"`
}

// ServiceReport is the service detector's output.
type ServiceReport struct {
	Services   []DetectedService `json:"services"`
	Total      int               `json:"total"`
	Identified int               `json:"identified"`
	ByCategory map[string]int    `json:"by_category"`
}

// ServiceDetector maps page resources to known third-party services.
type ServiceDetector struct{}

func (d *ServiceDetector) Name() string { return NameServices }

func (d *ServiceDetector) Detect(ctx context.Context, doc *document.Document, opts Options) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	catalog := opts.catalog()
	resources := extract.Extract(doc, extract.Options{
		PageURL:           opts.PageURL,
		IncludeFirstParty: opts.IncludeFirstParty,
	})

	report := &ServiceReport{ByCategory: make(map[string]int)}
	for _, r := range resources {
		svc := DetectedService{
			URL:     r.URL,
			Loading: r.LoadingPattern(),
		}
		if desc, ok := catalog.Identify(r.URL); ok {
			svc.Name = desc.Name
			svc.Category = string(desc.Category)
			svc.Identified = true
			report.Identified++
		} else {
			svc.Category = "unknown"
		}
		report.Services = append(report.Services, svc)
		report.ByCategory[svc.Category]++
	}
	report.Total = len(report.Services)
	return report, nil
}
