package domain

import "sort"

// Page is the graph engine's read-only view of one vault page.
type Page struct {
	Slug  string
	Title string
	Body  string

	Declared Declared
}

// Declared holds the relation fields read from page metadata. Inverse kinds
// have no declared form; they exist only through inference.
type Declared struct {
	NTPP []string
	TPP  []string
	PO   []string
	EC   []string
	EQ   []string
	DC   []string
	Next string
	Prev string
}

// Build constructs the fully inferred relation graph in two passes.
//
// Pass 1 reads each page's declared fields and extracts body links against
// the complete slug set; pass 2 pushes inverses so that every symmetric kind
// is mutual and every directed kind has its inverse set populated. Pass 2
// runs over pages in sorted slug order, which makes the first-writer-wins
// rule for next/prev conflicts deterministic for a given vault.
func Build(pages []Page) Graph {
	graph := Graph{
		Relations: make(map[string]*Relations, len(pages)),
		Refs:      make(map[string]PageRef, len(pages)),
	}
	known := make(map[string]struct{}, len(pages))
	for _, page := range pages {
		known[page.Slug] = struct{}{}
	}

	for _, page := range pages {
		rel := &Relations{}
		addAll(&rel.NTPP, page.Declared.NTPP)
		addAll(&rel.TPP, page.Declared.TPP)
		addAll(&rel.PO, page.Declared.PO)
		addAll(&rel.EC, page.Declared.EC)
		addAll(&rel.EQ, page.Declared.EQ)
		addAll(&rel.DC, page.Declared.DC)
		rel.Next = page.Declared.Next
		rel.Prev = page.Declared.Prev
		addAll(&rel.Refs, ExtractLinks(page.Body, page.Slug, known))

		graph.Relations[page.Slug] = rel
		graph.Refs[page.Slug] = PageRef{Slug: page.Slug, Title: page.Title}
	}

	for _, source := range sortedSlugs(graph.Relations) {
		rel := graph.Relations[source]
		inferInverse(graph, source, rel.NTPP, func(target *Relations) { target.NTTPI.Add(source) })
		inferInverse(graph, source, rel.TPP, func(target *Relations) { target.TPPI.Add(source) })
		inferInverse(graph, source, rel.PO, func(target *Relations) { target.PO.Add(source) })
		inferInverse(graph, source, rel.EC, func(target *Relations) { target.EC.Add(source) })
		inferInverse(graph, source, rel.EQ, func(target *Relations) { target.EQ.Add(source) })
		inferInverse(graph, source, rel.DC, func(target *Relations) { target.DC.Add(source) })
		inferInverse(graph, source, rel.Refs, func(target *Relations) { target.RefdBy.Add(source) })

		if next, ok := graph.Relations[rel.Next]; ok && next.Prev == "" {
			next.Prev = source
		}
		if prev, ok := graph.Relations[rel.Prev]; ok && prev.Next == "" {
			prev.Next = source
		}
	}
	return graph
}

func inferInverse(graph Graph, source string, forward Set, push func(*Relations)) {
	for _, slug := range forward.Slice() {
		// Unknown targets never acquire an inverse: the lookup just fails.
		target, ok := graph.Relations[slug]
		if !ok || slug == source {
			continue
		}
		push(target)
	}
}

func addAll(set *Set, slugs []string) {
	for _, s := range slugs {
		set.Add(s)
	}
}

func sortedSlugs(relations map[string]*Relations) []string {
	out := make([]string, 0, len(relations))
	for slug := range relations {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}
