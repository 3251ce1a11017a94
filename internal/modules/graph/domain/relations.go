package domain

// Kind names a relation between two pages. The eight topological kinds model
// the RCC-8 calculus; "next" is the sequential link and "r" an inline body
// reference.
type Kind string

const (
	KindNTPP  Kind = "ntpp"
	KindNTTPI Kind = "nttpi"
	KindTPP   Kind = "tpp"
	KindTPPI  Kind = "tppi"
	KindPO    Kind = "po"
	KindEC    Kind = "ec"
	KindEQ    Kind = "eq"
	KindDC    Kind = "dc"
	KindNext  Kind = "next"
	KindRef   Kind = "r"
)

func (k Kind) Valid() bool {
	switch k {
	case KindNTPP, KindNTTPI, KindTPP, KindTPPI, KindPO, KindEC, KindEQ, KindDC, KindNext, KindRef:
		return true
	default:
		return false
	}
}

// Symmetric reports whether the kind is its own inverse.
func (k Kind) Symmetric() bool {
	switch k {
	case KindPO, KindEC, KindEQ, KindDC:
		return true
	default:
		return false
	}
}

// Set is an ordered, duplicate-free collection of target slugs. Insertion
// order is preserved so that "first declared" stays meaningful downstream
// (breadcrumbs follow index 0).
type Set struct {
	items []string
	seen  map[string]struct{}
}

// Add appends slug if absent and reports whether it was inserted.
func (s *Set) Add(slug string) bool {
	if slug == "" {
		return false
	}
	if _, ok := s.seen[slug]; ok {
		return false
	}
	if s.seen == nil {
		s.seen = map[string]struct{}{}
	}
	s.seen[slug] = struct{}{}
	s.items = append(s.items, slug)
	return true
}

func (s *Set) Has(slug string) bool {
	_, ok := s.seen[slug]
	return ok
}

func (s *Set) Len() int {
	return len(s.items)
}

// First returns the earliest-inserted slug, or "" when empty.
func (s *Set) First() string {
	if len(s.items) == 0 {
		return ""
	}
	return s.items[0]
}

// Slice returns the slugs in insertion order. Callers must not mutate it.
func (s *Set) Slice() []string {
	return s.items
}

// Relations holds one page's complete relation state. The NTTPI, TPPI and
// RefdBy sets are inference-only: they are never read from declared metadata.
type Relations struct {
	NTPP  Set
	NTTPI Set
	TPP   Set
	TPPI  Set
	PO    Set
	EC    Set
	EQ    Set
	DC    Set

	Next string
	Prev string

	Refs   Set // slugs this page's body links to
	RefdBy Set // pages whose bodies link here
}

// Degree is the page's total connection count, used for visual node sizing.
func (r *Relations) Degree() int {
	total := r.NTPP.Len() + r.NTTPI.Len() + r.TPP.Len() + r.TPPI.Len() +
		r.PO.Len() + r.EC.Len() + r.EQ.Len() + r.DC.Len() +
		r.Refs.Len() + r.RefdBy.Len()
	if r.Next != "" {
		total++
	}
	if r.Prev != "" {
		total++
	}
	return total
}

// PageRef is the minimal page identity carried alongside the graph.
type PageRef struct {
	Slug  string
	Title string
}

// Graph is the fully inferred relation graph for one generation pass. It is
// built once by Build and treated as read-only afterwards.
type Graph struct {
	Relations map[string]*Relations
	Refs      map[string]PageRef
}

// Has reports whether slug names a known page.
func (g Graph) Has(slug string) bool {
	_, ok := g.Relations[slug]
	return ok
}
