package domain

// Node is one page flattened for visualization. Connections is the page's
// total degree and drives visual sizing only.
type Node struct {
	ID          string
	Title       string
	Connections int
}

// Edge links two pages in the flattened view. Symmetric kinds appear once per
// unordered pair; directed kinds once per direction; next/prev pairs collapse
// into a single next-typed edge.
type Edge struct {
	Source string
	Target string
	Kind   Kind
}

// View is the generic node/edge projection of a Graph, consumed by an
// external rendering layer.
type View struct {
	Nodes []Node
	Edges []Edge
}

// BuildView flattens the graph. Pages are visited in sorted slug order so
// repeated builds over the same graph produce identical output.
func BuildView(graph Graph) View {
	slugs := sortedSlugs(graph.Relations)
	view := View{
		Nodes: make([]Node, 0, len(slugs)),
		Edges: make([]Edge, 0, len(slugs)),
	}
	emitted := map[edgeKey]struct{}{}

	for _, source := range slugs {
		rel := graph.Relations[source]
		view.Nodes = append(view.Nodes, Node{
			ID:          source,
			Title:       graph.Refs[source].Title,
			Connections: rel.Degree(),
		})

		emitDirected(&view, emitted, graph, source, rel.NTPP, KindNTPP)
		emitDirected(&view, emitted, graph, source, rel.TPP, KindTPP)
		emitDirected(&view, emitted, graph, source, rel.Refs, KindRef)
		emitSymmetric(&view, emitted, graph, source, rel.PO, KindPO)
		emitSymmetric(&view, emitted, graph, source, rel.EC, KindEC)
		emitSymmetric(&view, emitted, graph, source, rel.EQ, KindEQ)
		emitSymmetric(&view, emitted, graph, source, rel.DC, KindDC)

		if rel.Next != "" && graph.Has(rel.Next) {
			emitOnce(&view, emitted, pairKey(source, rel.Next, KindNext), Edge{Source: source, Target: rel.Next, Kind: KindNext})
		}
		if rel.Prev != "" && graph.Has(rel.Prev) {
			emitOnce(&view, emitted, pairKey(rel.Prev, source, KindNext), Edge{Source: rel.Prev, Target: source, Kind: KindNext})
		}
	}
	return view
}

// Subgraph derives a depth-bounded, kind-filtered projection rooted at root.
// Filtered edges are treated as undirected for reachability; a depth of 0
// yields only the root node.
func Subgraph(view View, root string, kinds []Kind, depth int) View {
	include := make(map[Kind]struct{}, len(kinds))
	for _, kind := range kinds {
		include[kind] = struct{}{}
	}
	filtered := make([]Edge, 0, len(view.Edges))
	for _, edge := range view.Edges {
		if _, ok := include[edge.Kind]; ok {
			filtered = append(filtered, edge)
		}
	}

	adjacency := map[string][]string{}
	for _, edge := range filtered {
		adjacency[edge.Source] = append(adjacency[edge.Source], edge.Target)
		adjacency[edge.Target] = append(adjacency[edge.Target], edge.Source)
	}

	visited := map[string]struct{}{}
	for _, node := range view.Nodes {
		if node.ID == root {
			visited[root] = struct{}{}
			break
		}
	}
	if _, ok := visited[root]; !ok {
		return View{Nodes: []Node{}, Edges: []Edge{}}
	}

	type frontierItem struct {
		id  string
		hop int
	}
	queue := []frontierItem{{id: root}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		if item.hop >= depth {
			continue
		}
		for _, neighbor := range adjacency[item.id] {
			if _, seen := visited[neighbor]; seen {
				continue
			}
			visited[neighbor] = struct{}{}
			queue = append(queue, frontierItem{id: neighbor, hop: item.hop + 1})
		}
	}

	out := View{Nodes: make([]Node, 0, len(visited)), Edges: make([]Edge, 0, len(filtered))}
	for _, node := range view.Nodes {
		if _, ok := visited[node.ID]; ok {
			out.Nodes = append(out.Nodes, node)
		}
	}
	for _, edge := range filtered {
		if _, ok := visited[edge.Source]; !ok {
			continue
		}
		if _, ok := visited[edge.Target]; !ok {
			continue
		}
		out.Edges = append(out.Edges, edge)
	}
	return out
}

type edgeKey struct {
	a, b string
	kind Kind
}

func pairKey(a, b string, kind Kind) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a: a, b: b, kind: kind}
}

func emitDirected(view *View, emitted map[edgeKey]struct{}, graph Graph, source string, targets Set, kind Kind) {
	for _, target := range targets.Slice() {
		if !graph.Has(target) {
			continue
		}
		emitOnce(view, emitted, edgeKey{a: source, b: target, kind: kind}, Edge{Source: source, Target: target, Kind: kind})
	}
}

func emitSymmetric(view *View, emitted map[edgeKey]struct{}, graph Graph, source string, targets Set, kind Kind) {
	for _, target := range targets.Slice() {
		if !graph.Has(target) {
			continue
		}
		emitOnce(view, emitted, pairKey(source, target, kind), Edge{Source: source, Target: target, Kind: kind})
	}
}

func emitOnce(view *View, emitted map[edgeKey]struct{}, key edgeKey, edge Edge) {
	if _, ok := emitted[key]; ok {
		return
	}
	emitted[key] = struct{}{}
	view.Edges = append(view.Edges, edge)
}

// Kinds returns every edge kind a view or subgraph request may name.
func Kinds() []Kind {
	return []Kind{KindNTPP, KindNTTPI, KindTPP, KindTPPI, KindPO, KindEC, KindEQ, KindDC, KindNext, KindRef}
}
