package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"

	"go.uber.org/zap"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/extract"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/services"
)

// BuilderConfig carries the builder's collaborators. The catalog is
// required; a nil logger is replaced with a no-op one.
type BuilderConfig struct {
	Catalog *services.Catalog
	Logger  *zap.SugaredLogger
}

// Builder turns extracted resources into a dependency graph.
type Builder struct {
	catalog *services.Catalog
	logger  *zap.SugaredLogger
}

// NewBuilder constructs a Builder from explicit configuration.
func NewBuilder(cfg BuilderConfig) *Builder {
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = services.DefaultCatalog()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Builder{catalog: catalog, logger: logger}
}

// Build produces the graph for one set of resources. A malformed resource is
// logged and skipped; it never aborts the rest of the build.
func (b *Builder) Build(resources []extract.Resource) *Graph {
	g := &Graph{index: make(map[NodeID]int)}

	type nodeMeta struct {
		desc services.Descriptor
		ok   bool
	}
	meta := make(map[NodeID]nodeMeta)

	for _, r := range resources {
		node, desc, identified, err := b.buildNode(r)
		if err != nil {
			b.logger.Warnw("skipping malformed resource", "url", r.URL, "error", err)
			continue
		}
		if _, exists := g.index[node.ID]; exists {
			// Same (kind, url) seen twice; the extractor already
			// deduplicates, so this only guards hand-fed input.
			continue
		}
		g.index[node.ID] = len(g.Nodes)
		g.Nodes = append(g.Nodes, node)
		meta[node.ID] = nodeMeta{desc: desc, ok: identified}
	}

	// Edge inference is static pattern lookup over the other nodes on the
	// page; no loaded code is ever executed.
	for _, from := range g.Nodes {
		m := meta[from.ID]
		if !m.ok {
			continue
		}
		for _, to := range g.Nodes {
			if to.ID == from.ID {
				continue
			}
			switch {
			case services.Matches(to.URL, m.desc.Requires):
				g.Edges = append(g.Edges, DependencyEdge{From: from.ID, To: to.ID, Type: EdgeRequired, Weight: 1})
			case services.Matches(to.URL, m.desc.Conflicts):
				g.Edges = append(g.Edges, DependencyEdge{From: from.ID, To: to.ID, Type: EdgeConflicting, Weight: -1})
			case services.Matches(to.URL, m.desc.Enhances):
				g.Edges = append(g.Edges, DependencyEdge{From: from.ID, To: to.ID, Type: EdgeEnhancing, Weight: 0.5})
			case to.Name == from.Name && meta[to.ID].ok:
				// The same library loaded from two different URLs: the
				// later copy acts as a fallback for the earlier one.
				if from.Position < to.Position {
					g.Edges = append(g.Edges, DependencyEdge{From: from.ID, To: to.ID, Type: EdgeFallback, Weight: 0.3})
				}
			}
		}
	}

	g.Clusters = b.buildClusters(g)
	g.Stats = computeStats(len(g.Nodes), len(g.Edges), len(g.Clusters))
	b.logger.Debugw("graph built",
		"nodes", g.Stats.NodeCount,
		"edges", g.Stats.EdgeCount,
		"clusters", g.Stats.ClusterCount)
	return g
}

func (b *Builder) buildNode(r extract.Resource) (ServiceNode, services.Descriptor, bool, error) {
	u, err := url.Parse(r.URL)
	if err != nil {
		return ServiceNode{}, services.Descriptor{}, false, err
	}
	if u.Hostname() == "" {
		return ServiceNode{}, services.Descriptor{}, false, fmt.Errorf("resource URL %q has no host", r.URL)
	}

	node := ServiceNode{
		ID:       hashID(string(r.Kind), r.URL),
		URL:      r.URL,
		Loading:  LoadingPattern(r.LoadingPattern()),
		Critical: r.RenderBlocking(),
		Position: r.Position,
	}

	desc, ok := b.catalog.Identify(r.URL)
	if ok {
		node.Name = desc.Name
		node.Category = string(desc.Category)
		if desc.Critical {
			node.Critical = true
		}
	} else {
		node.Name = u.Hostname()
		node.Category = "unknown"
	}
	return node, desc, ok, nil
}

// hashID derives a deterministic node id from the resource kind and URL.
func hashID(kind, rawURL string) NodeID {
	sum := sha256.Sum256([]byte(kind + "\x00" + rawURL))
	return NodeID(hex.EncodeToString(sum[:6]))
}

// buildClusters unions category groups with strongly connected components.
func (b *Builder) buildClusters(g *Graph) []Cluster {
	var clusters []Cluster

	byCategory := make(map[string][]NodeID)
	for _, n := range g.Nodes {
		if n.Category == "" || n.Category == "unknown" {
			continue
		}
		byCategory[n.Category] = append(byCategory[n.Category], n.ID)
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		members := byCategory[c]
		if len(members) < 2 {
			continue
		}
		sortIDs(members)
		clusters = append(clusters, Cluster{
			ID:    "category:" + c,
			Nodes: members,
			Type:  ClusterCategory,
		})
	}

	for i, scc := range StronglyConnected(g) {
		clusters = append(clusters, Cluster{
			ID:    fmt.Sprintf("connected:%d", i),
			Nodes: scc,
			Type:  ClusterConnected,
		})
	}
	return clusters
}

func sortIDs(ids []NodeID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
