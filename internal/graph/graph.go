// Package graph builds and analyzes the directed dependency graph of
// third-party services discovered on a page.
package graph

import (
	"fmt"

	sharederrors "github.com/Nimrod-Galor/Domain-Audit-sub002/internal/shared/errors"
)

// NodeID uniquely identifies a service node within one graph. IDs are
// deterministic hashes of the resource kind and URL, so repeated builds over
// the same input produce identical ids.
type NodeID string

// LoadingPattern classifies how a resource is loaded.
type LoadingPattern string

const (
	LoadBlocking LoadingPattern = "blocking"
	LoadAsync    LoadingPattern = "async"
	LoadDefer    LoadingPattern = "defer"
	LoadDynamic  LoadingPattern = "dynamic"
	LoadLazy     LoadingPattern = "lazy"
)

// EdgeType classifies the relationship between two service nodes.
type EdgeType string

const (
	EdgeRequired    EdgeType = "required"
	EdgeOptional    EdgeType = "optional"
	EdgeConflicting EdgeType = "conflicting"
	EdgeEnhancing   EdgeType = "enhancing"
	EdgeFallback    EdgeType = "fallback"
)

// ServiceNode is one discovered resource, identified where possible.
type ServiceNode struct {
	ID       NodeID         `json:"id"`
	Name     string         `json:"name"`
	Category string         `json:"category"`
	URL      string         `json:"url"`
	Loading  LoadingPattern `json:"loading_pattern"`
	Critical bool           `json:"critical"`
	// Position is the element's document-order index, kept for critical
	// path ordering.
	Position int `json:"position"`
}

// DependencyEdge links two existing nodes. From and To always reference
// node ids present in the same graph.
type DependencyEdge struct {
	From   NodeID   `json:"from"`
	To     NodeID   `json:"to"`
	Type   EdgeType `json:"type"`
	Weight float64  `json:"weight"`
}

// ClusterType distinguishes the two advisory groupings.
type ClusterType string

const (
	ClusterCategory  ClusterType = "category"
	ClusterConnected ClusterType = "connected"
)

// Cluster is an advisory grouping of nodes. Clusters never influence cycle
// or critical-path results.
type Cluster struct {
	ID    string      `json:"id"`
	Nodes []NodeID    `json:"nodes"`
	Type  ClusterType `json:"type"`
}

// Statistics are pure derived values over the graph.
type Statistics struct {
	NodeCount     int     `json:"node_count"`
	EdgeCount     int     `json:"edge_count"`
	ClusterCount  int     `json:"cluster_count"`
	AverageDegree float64 `json:"average_degree"`
	Density       float64 `json:"density"`
}

// Graph is the built dependency graph. It is local to one analysis call and
// never mutated after Build returns.
type Graph struct {
	Nodes    []ServiceNode    `json:"nodes"`
	Edges    []DependencyEdge `json:"edges"`
	Clusters []Cluster        `json:"clusters"`
	Stats    Statistics       `json:"statistics"`

	index map[NodeID]int
}

// Node returns the node with the given id, if present.
func (g *Graph) Node(id NodeID) (ServiceNode, bool) {
	i, ok := g.index[id]
	if !ok {
		return ServiceNode{}, false
	}
	return g.Nodes[i], true
}

// Successors returns the ids reachable from id over one outgoing edge.
// Conflicting edges are excluded: a conflict is not a load-order dependency.
func (g *Graph) Successors(id NodeID) []NodeID {
	var out []NodeID
	for _, e := range g.Edges {
		if e.From == id && e.Type != EdgeConflicting {
			out = append(out, e.To)
		}
	}
	return out
}

// Validate checks the structural invariants every built graph must hold:
// node ids are unique and every edge references two existing nodes.
func (g *Graph) Validate() error {
	seen := make(map[NodeID]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: %s", sharederrors.ErrDuplicateNodeID, n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	for _, e := range g.Edges {
		if _, ok := seen[e.From]; !ok {
			return fmt.Errorf("%w: from %s", sharederrors.ErrDanglingEdge, e.From)
		}
		if _, ok := seen[e.To]; !ok {
			return fmt.Errorf("%w: to %s", sharederrors.ErrDanglingEdge, e.To)
		}
	}
	return nil
}

func computeStats(nodeCount, edgeCount, clusterCount int) Statistics {
	s := Statistics{
		NodeCount:    nodeCount,
		EdgeCount:    edgeCount,
		ClusterCount: clusterCount,
	}
	if nodeCount > 0 {
		s.AverageDegree = 2 * float64(edgeCount) / float64(nodeCount)
	}
	if nodeCount > 1 {
		s.Density = float64(edgeCount) / float64(nodeCount*(nodeCount-1))
	}
	return s
}
