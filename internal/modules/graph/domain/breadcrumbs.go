package domain

// Breadcrumbs walks the containment hierarchy upwards from slug and returns
// the ancestry chain ordered root-first, ending at slug itself. At each step
// the first ntpp target is preferred over the first tpp target; the walk
// stops when no parent exists, the parent is unknown, or a slug repeats
// (cycle guard).
func Breadcrumbs(graph Graph, slug string) []PageRef {
	rel, ok := graph.Relations[slug]
	if !ok {
		return nil
	}
	chain := []PageRef{graph.Refs[slug]}
	visited := map[string]struct{}{slug: {}}

	current := rel
	for {
		parent := current.NTPP.First()
		if parent == "" {
			parent = current.TPP.First()
		}
		if parent == "" {
			break
		}
		if _, seen := visited[parent]; seen {
			break
		}
		next, ok := graph.Relations[parent]
		if !ok {
			break
		}
		visited[parent] = struct{}{}
		chain = append([]PageRef{graph.Refs[parent]}, chain...)
		current = next
	}
	return chain
}
