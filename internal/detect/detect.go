// Package detect holds the phase-1 analyzers. Each detector inspects the
// same read-only document independently; detectors never share mutable
// state, so any subset can run concurrently.
package detect

import (
	"context"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/document"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/services"
)

// Detector names, used as phase-result keys.
const (
	NameServices     = "services"
	NamePerformance  = "performance"
	NamePrivacy      = "privacy"
	NameDependencies = "dependencies"
)

// Options is a per-invocation options object. Every detector receives its
// own copy.
type Options struct {
	// PageURL is the page address; used to separate first- and third-party
	// resources.
	PageURL string
	// Catalog identifies known services. Nil falls back to the default.
	Catalog *services.Catalog
	// IncludeFirstParty keeps same-host resources in the analysis.
	IncludeFirstParty bool
}

func (o Options) catalog() *services.Catalog {
	if o.Catalog != nil {
		return o.Catalog
	}
	return services.DefaultCatalog()
}

// Detector is implemented by every phase-1 analyzer.
type Detector interface {
	// Name returns the stable component name used in phase results.
	Name() string

	// Detect analyzes the document and returns the detector's report. An
	// error marks the component failed without affecting its siblings.
	Detect(ctx context.Context, doc *document.Document, opts Options) (any, error)
}

// All returns the full detector set in canonical order.
func All() []Detector {
	return []Detector{
		&ServiceDetector{},
		&PerformanceDetector{},
		&PrivacyDetector{},
		&DependencyDetector{},
	}
}
