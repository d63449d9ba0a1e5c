package openapi

import (
	"cmp"
	"slices"
	"strings"
)

// Category is the kind of component an edge points to.
type Category int

const (
	CategorySchema Category = iota
	CategoryResponse
	CategorySecurity
)

// Categories lists every category in declared order. Rendering and
// conflict resolution follow this order.
var Categories = []Category{CategorySchema, CategoryResponse, CategorySecurity}

// String returns the display name ("Schemas", "Responses", "Security").
func (c Category) String() string {
	switch c {
	case CategorySchema:
		return "Schemas"
	case CategoryResponse:
		return "Responses"
	case CategorySecurity:
		return "Security"
	default:
		return "Unknown"
	}
}

// Key returns the lower-case display name.
func (c Category) Key() string { return strings.ToLower(c.String()) }

// NodeSet is a set of node labels.
type NodeSet map[string]struct{}

// Add inserts label.
func (s NodeSet) Add(label string) { s[label] = struct{}{} }

// Has reports whether label is present.
func (s NodeSet) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// Sorted returns the labels in lexicographic order.
func (s NodeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

// Edge is a dependency from an operation label to a target label.
type Edge struct {
	From string
	To   string
}

// EdgeSet is a set of edges.
type EdgeSet map[Edge]struct{}

// Add inserts e.
func (s EdgeSet) Add(e Edge) { s[e] = struct{}{} }

// Sorted returns the edges ordered by (From, To).
func (s EdgeSet) Sorted() []Edge {
	out := make([]Edge, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Edge) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return cmp.Compare(a.To, b.To)
	})
	return out
}

// Targets returns the set of edge targets.
func (s EdgeSet) Targets() NodeSet {
	out := NodeSet{}
	for e := range s {
		out.Add(e.To)
	}
	return out
}

// Classification is the edge structure of one tag's operations.
type Classification struct {
	Sources NodeSet
	Edges   map[Category]EdgeSet
}

// AllEdges returns the union of every category's edges.
func (c Classification) AllEdges() EdgeSet {
	all := EdgeSet{}
	for _, edges := range c.Edges {
		for e := range edges {
			all.Add(e)
		}
	}
	return all
}

// Empty reports whether no category holds an edge.
func (c Classification) Empty() bool {
	for _, edges := range c.Edges {
		if len(edges) > 0 {
			return false
		}
	}
	return true
}

// Classifier derives edges from operations.
type Classifier struct {
	// SchemaMarker identifies pointers into the schema components area,
	// e.g. "#/components/schemas/".
	SchemaMarker string
	// ResponseMarker identifies pointers into the response components area.
	ResponseMarker string
}

// CategoryOf classifies a pointer by substring match. The schema marker
// is checked first. Pointers matching neither marker report false.
func (c Classifier) CategoryOf(p Pointer) (Category, bool) {
	switch {
	case c.SchemaMarker != "" && strings.Contains(string(p), c.SchemaMarker):
		return CategorySchema, true
	case c.ResponseMarker != "" && strings.Contains(string(p), c.ResponseMarker):
		return CategoryResponse, true
	}
	return 0, false
}

// Classify builds the sources and categorized edges of ops.
//
// Every operation becomes a source. Each scheme named by a security
// requirement becomes a security edge. Every pointer found under the
// operation is classified with [Classifier.CategoryOf] and becomes an edge
// to its [Pointer.Target]; unclassified pointers are dropped.
func (c Classifier) Classify(ops []*Operation) Classification {
	out := Classification{
		Sources: NodeSet{},
		Edges:   make(map[Category]EdgeSet, len(Categories)),
	}
	for _, cat := range Categories {
		out.Edges[cat] = EdgeSet{}
	}

	for _, op := range ops {
		label := op.Label()
		out.Sources.Add(label)

		for _, req := range op.Security {
			for _, scheme := range req {
				out.Edges[CategorySecurity].Add(Edge{From: label, To: scheme})
			}
		}

		for p := range ScanRefs(op.Node) {
			cat, ok := c.CategoryOf(p)
			if !ok {
				continue
			}
			out.Edges[cat].Add(Edge{From: label, To: p.Target()})
		}
	}
	return out
}
