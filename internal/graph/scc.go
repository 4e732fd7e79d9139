package graph

// StronglyConnected returns the strongly connected components of the graph
// with more than one member, using an iterative Tarjan's algorithm. An
// explicit frame stack stands in for recursion so deep graphs cannot blow
// the call stack. Components feed advisory "connected" clusters only;
// cycle and critical-path results never depend on them.
func StronglyConnected(g *Graph) [][]NodeID {
	ids := make([]NodeID, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	sortIDs(ids)

	succs := make(map[NodeID][]NodeID, len(ids))
	for _, id := range ids {
		s := g.Successors(id)
		sortIDs(s)
		succs[id] = s
	}

	index := 0
	nodeIndex := make(map[NodeID]int, len(ids))
	lowLink := make(map[NodeID]int, len(ids))
	onStack := make(map[NodeID]bool, len(ids))
	var sccStack []NodeID
	var components [][]NodeID

	type frame struct {
		id    NodeID
		next  int
		child NodeID // set when returning from a descent
	}

	strongConnect := func(start NodeID) {
		stack := []frame{{id: start}}
		nodeIndex[start] = index
		lowLink[start] = index
		index++
		sccStack = append(sccStack, start)
		onStack[start] = true

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.child != "" {
				if lowLink[top.child] < lowLink[top.id] {
					lowLink[top.id] = lowLink[top.child]
				}
				top.child = ""
			}

			descended := false
			for top.next < len(succs[top.id]) {
				next := succs[top.id][top.next]
				top.next++
				if _, seen := nodeIndex[next]; !seen {
					nodeIndex[next] = index
					lowLink[next] = index
					index++
					sccStack = append(sccStack, next)
					onStack[next] = true
					top.child = next
					stack = append(stack, frame{id: next})
					descended = true
					break
				}
				if onStack[next] && nodeIndex[next] < lowLink[top.id] {
					lowLink[top.id] = nodeIndex[next]
				}
			}
			if descended {
				continue
			}

			if lowLink[top.id] == nodeIndex[top.id] {
				var comp []NodeID
				for {
					w := sccStack[len(sccStack)-1]
					sccStack = sccStack[:len(sccStack)-1]
					onStack[w] = false
					comp = append(comp, w)
					if w == top.id {
						break
					}
				}
				if len(comp) > 1 {
					sortIDs(comp)
					components = append(components, comp)
				}
			}
			stack = stack[:len(stack)-1]
		}
	}

	for _, id := range ids {
		if _, seen := nodeIndex[id]; !seen {
			strongConnect(id)
		}
	}
	return components
}
