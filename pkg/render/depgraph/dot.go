package depgraph

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/matzehuels/apigraph/pkg/openapi"
)

// Group is the node set of one target category.
type Group struct {
	Category openapi.Category
	Nodes    []string
}

// Input is everything [ToDOT] needs to render one graph.
type Input struct {
	Name          string   // graph identity, usually the tag
	EndpointLabel string   // label of the endpoint cluster
	Sources       []string // endpoint node labels
	Groups        []Group  // target clusters in declared category order
	Edges         []openapi.Edge
}

// Conflict records a target label reached under more than one category.
// The label is drawn only in the first of Categories.
type Conflict struct {
	Label      string
	Categories []openapi.Category
}

// Build turns the classification of one tag into renderer input.
//
// Each target label is placed in exactly one group: the first category,
// in [openapi.Categories] order, whose edges name it. Labels named by
// several categories are returned as conflicts sorted by label.
func Build(tag string, c openapi.Classification) (Input, []Conflict) {
	owner := make(map[string]openapi.Category)
	seen := make(map[string][]openapi.Category)
	for _, cat := range openapi.Categories {
		for _, label := range c.Edges[cat].Targets().Sorted() {
			seen[label] = append(seen[label], cat)
			if _, ok := owner[label]; !ok {
				owner[label] = cat
			}
		}
	}

	in := Input{
		Name:          tag,
		EndpointLabel: "Endpoints - " + tag,
		Sources:       c.Sources.Sorted(),
		Edges:         c.AllEdges().Sorted(),
	}
	for _, cat := range openapi.Categories {
		nodes := openapi.NodeSet{}
		for label, o := range owner {
			if o == cat {
				nodes.Add(label)
			}
		}
		in.Groups = append(in.Groups, Group{Category: cat, Nodes: nodes.Sorted()})
	}

	var conflicts []Conflict
	for label, cats := range seen {
		if len(cats) > 1 {
			conflicts = append(conflicts, Conflict{Label: label, Categories: cats})
		}
	}
	slices.SortFunc(conflicts, func(a, b Conflict) int { return strings.Compare(a.Label, b.Label) })
	return in, conflicts
}

// ToDOT renders in as a Graphviz digraph.
//
// The endpoint cluster comes first, then one cluster per non-empty group
// in the order given, then the edges. Nodes and edges are sorted, so the
// output depends only on the contents of in and s. An edge takes the edge
// color of the first group containing its target, or s.DefaultEdge.
func ToDOT(in Input, s Style) string {
	var buf bytes.Buffer
	buf.WriteString("digraph OpenAPI_Dependencies {\n")
	fmt.Fprintf(&buf, "  bgcolor=%s;\n", quote(s.Background))
	fmt.Fprintf(&buf, "  fontcolor=%s;\n", quote(s.Text))
	buf.WriteString("  rankdir=\"TB\";\n")
	buf.WriteString("  splines=\"curved\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  concentrate=true;\n")
	buf.WriteString("  graph [nodesep=0.5, ranksep=2.5];\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fontcolor=%s];\n", quote(s.Text))

	writeCluster(&buf, "endpoints", in.EndpointLabel, s.Endpoints, s.Cluster, in.Sources)

	edgeColor := make(map[string]string)
	for _, g := range in.Groups {
		if len(g.Nodes) == 0 {
			continue
		}
		cs := s.For(g.Category)
		writeCluster(&buf, g.Category.Key(), g.Category.String(), cs.Fill, s.Cluster, g.Nodes)
		for _, n := range g.Nodes {
			if _, ok := edgeColor[n]; !ok {
				edgeColor[n] = cs.Edge
			}
		}
	}

	edges := slices.Clone(in.Edges)
	slices.SortFunc(edges, func(a, b openapi.Edge) int {
		if c := strings.Compare(a.From, b.From); c != 0 {
			return c
		}
		return strings.Compare(a.To, b.To)
	})
	edges = slices.Compact(edges)

	buf.WriteString("  // Edges (Dependencies)\n")
	for _, e := range edges {
		color, ok := edgeColor[e.To]
		if !ok {
			color = s.DefaultEdge
		}
		fmt.Fprintf(&buf, "  %s -> %s [color=%s];\n", quote(e.From), quote(e.To), quote(color))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeCluster(buf *bytes.Buffer, id, label, fill, border string, nodes []string) {
	fmt.Fprintf(buf, "  subgraph cluster_%s {\n", id)
	fmt.Fprintf(buf, "    label = %s;\n", quote(label))
	fmt.Fprintf(buf, "    fontcolor = %s;\n", quote(border))
	fmt.Fprintf(buf, "    color = %s;\n", quote(border))
	buf.WriteString("    margin = 25;\n")
	fmt.Fprintf(buf, "    node [fillcolor=%s];\n", quote(fill))
	for _, n := range slices.Sorted(slices.Values(nodes)) {
		fmt.Fprintf(buf, "    %s;\n", quote(n))
	}
	buf.WriteString("  }\n\n")
}

// quote renders s as a DOT double-quoted string.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

// FileName returns the artifact name for a tag, e.g. "users_dependencies.dot".
// Path separators and control characters in the tag become underscores so
// the artifact always lands in the output directory.
func FileName(tag, ext string) string {
	stem := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return '_'
		}
		return r
	}, tag)
	return stem + "_dependencies." + ext
}
