package detect

import (
	"context"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/document"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/extract"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/graph"
)

// DependencyReport carries the built graph and its cycle analysis.
type DependencyReport struct {
	Graph  *graph.Graph      `json:"graph"`
	Cycles graph.CycleReport `json:"cycles"`
}

// DependencyDetector builds the service dependency graph and runs cycle
// detection over it.
type DependencyDetector struct{}

func (d *DependencyDetector) Name() string { return NameDependencies }

func (d *DependencyDetector) Detect(ctx context.Context, doc *document.Document, opts Options) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resources := extract.Extract(doc, extract.Options{
		PageURL:           opts.PageURL,
		IncludeFirstParty: opts.IncludeFirstParty,
	})

	builder := graph.NewBuilder(graph.BuilderConfig{Catalog: opts.catalog()})
	g := builder.Build(resources)

	return &DependencyReport{
		Graph:  g,
		Cycles: graph.DetectCycles(g),
	}, nil
}
