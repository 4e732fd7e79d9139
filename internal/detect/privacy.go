package detect

import (
	"context"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/document"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/extract"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/services"
)

// VulnerabilityFinding attributes a static CVE record to a detected service.
type VulnerabilityFinding struct {
	Service string       `json:"service"`
	URL     string       `json:"url"`
	CVE     services.CVE `json:"cve"`
}

// PrivacyReport describes the page's tracking and vulnerability surface.
// The CVE list is a static stand-in, not a live database.
type PrivacyReport struct {
	Trackers        []DetectedService      `json:"trackers"`
	TrackerCount    int                    `json:"tracker_count"`
	BeaconSurface   int                    `json:"beacon_surface"`
	Insecure        []string               `json:"insecure,omitempty"`
	Vulnerabilities []VulnerabilityFinding `json:"vulnerabilities,omitempty"`
	RiskLevel       string                 `json:"risk_level"`
}

// PrivacyDetector surfaces trackers, beacons and known-vulnerable libraries.
type PrivacyDetector struct{}

func (d *PrivacyDetector) Name() string { return NamePrivacy }

func (d *PrivacyDetector) Detect(ctx context.Context, doc *document.Document, opts Options) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	catalog := opts.catalog()
	resources := extract.Extract(doc, extract.Options{
		PageURL:           opts.PageURL,
		IncludeFirstParty: opts.IncludeFirstParty,
	})

	report := &PrivacyReport{}
	for _, r := range resources {
		if len(r.URL) > 7 && r.URL[:7] == "http://" {
			report.Insecure = append(report.Insecure, r.URL)
		}

		desc, ok := catalog.Identify(r.URL)
		if !ok {
			continue
		}
		switch desc.Category {
		case services.CategoryTracking, services.CategoryAdvertising:
			report.Trackers = append(report.Trackers, DetectedService{
				Name:       desc.Name,
				Category:   string(desc.Category),
				URL:        r.URL,
				Loading:    r.LoadingPattern(),
				Identified: true,
			})
			// Pixels and preconnects to trackers widen the passive
			// data-collection surface beyond script execution.
			if r.Kind == extract.KindImage || r.Kind == extract.KindPreconnect {
				report.BeaconSurface++
			}
		}
		for _, cve := range desc.KnownCVEs {
			report.Vulnerabilities = append(report.Vulnerabilities, VulnerabilityFinding{
				Service: desc.Name,
				URL:     r.URL,
				CVE:     cve,
			})
		}
	}
	report.TrackerCount = len(report.Trackers)
	report.RiskLevel = privacyRisk(report)
	return report, nil
}

func privacyRisk(r *PrivacyReport) string {
	score := r.TrackerCount + r.BeaconSurface + 2*len(r.Vulnerabilities) + 2*len(r.Insecure)
	switch {
	case score == 0:
		return "none"
	case score <= 2:
		return "low"
	case score <= 6:
		return "medium"
	default:
		return "high"
	}
}
