package depgraph

import (
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/apigraph/pkg/openapi"
)

func usersClassification() openapi.Classification {
	c := openapi.Classification{
		Sources: openapi.NodeSet{"GET /users": {}},
		Edges: map[openapi.Category]openapi.EdgeSet{
			openapi.CategorySchema:   {{From: "GET /users", To: "User"}: {}},
			openapi.CategoryResponse: {},
			openapi.CategorySecurity: {{From: "GET /users", To: "apiKey"}: {}},
		},
	}
	return c
}

const usersLightDOT = `digraph OpenAPI_Dependencies {
  bgcolor="#FFFFFF";
  fontcolor="#000000";
  rankdir="TB";
  splines="curved";
  compound=true;
  concentrate=true;
  graph [nodesep=0.5, ranksep=2.5];
  node [shape=box, style="rounded,filled", fontcolor="#000000"];
  subgraph cluster_endpoints {
    label = "Endpoints - users";
    fontcolor = "#000000";
    color = "#000000";
    margin = 25;
    node [fillcolor="#e6f2ff"];
    "GET /users";
  }

  subgraph cluster_schemas {
    label = "Schemas";
    fontcolor = "#000000";
    color = "#000000";
    margin = 25;
    node [fillcolor="#d4edda"];
    "User";
  }

  subgraph cluster_security {
    label = "Security";
    fontcolor = "#000000";
    color = "#000000";
    margin = 25;
    node [fillcolor="#f8d7da"];
    "apiKey";
  }

  // Edges (Dependencies)
  "GET /users" -> "User" [color="#28a745"];
  "GET /users" -> "apiKey" [color="#dc3545"];
}
`

func TestToDOT_UsersScenario(t *testing.T) {
	in, conflicts := Build("users", usersClassification())
	if len(conflicts) != 0 {
		t.Fatalf("Build() conflicts = %v, want none", conflicts)
	}

	got := ToDOT(in, Light())
	if got != usersLightDOT {
		t.Errorf("ToDOT() mismatch\n--- got ---\n%s\n--- want ---\n%s", got, usersLightDOT)
	}
}

func TestToDOT_DarkPalette(t *testing.T) {
	in, _ := Build("users", usersClassification())
	dot := ToDOT(in, Dark())

	for _, want := range []string{
		`bgcolor="#2d333b";`,
		`fontcolor="#cdd9e5";`,
		`node [fillcolor="#37516b"];`,
		`"GET /users" -> "User" [color="#53b668"];`,
		`"GET /users" -> "apiKey" [color="#e26a77"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT(Dark) missing %q", want)
		}
	}
}

func TestToDOT_OmitsEmptyGroups(t *testing.T) {
	in, _ := Build("users", usersClassification())
	dot := ToDOT(in, Light())

	if strings.Contains(dot, "cluster_responses") {
		t.Error("ToDOT() emitted an empty Responses cluster")
	}
	if strings.Index(dot, "cluster_schemas") > strings.Index(dot, "cluster_security") {
		t.Error("ToDOT() clusters out of declared order")
	}
}

func TestToDOT_Idempotent(t *testing.T) {
	c := openapi.Classification{
		Sources: openapi.NodeSet{"POST /b": {}, "GET /a": {}, "DELETE /c": {}},
		Edges: map[openapi.Category]openapi.EdgeSet{
			openapi.CategorySchema: {
				{From: "POST /b", To: "Zed"}: {},
				{From: "GET /a", To: "Alpha"}: {},
				{From: "DELETE /c", To: "Alpha"}: {},
			},
			openapi.CategoryResponse: {{From: "GET /a", To: "NotFound"}: {}},
			openapi.CategorySecurity: {{From: "POST /b", To: "oauth"}: {}},
		},
	}

	first := ToDOT(mustBuild(t, "t", c), Dark())
	for range 10 {
		if again := ToDOT(mustBuild(t, "t", c), Dark()); again != first {
			t.Fatal("ToDOT() output differs between runs")
		}
	}

	// Sorted sources and edges.
	if strings.Index(first, `"DELETE /c";`) > strings.Index(first, `"GET /a";`) {
		t.Error("source nodes are not sorted")
	}
	if strings.Index(first, `"DELETE /c" -> "Alpha"`) > strings.Index(first, `"GET /a" -> "Alpha"`) {
		t.Error("edges are not sorted")
	}
}

func mustBuild(t *testing.T, tag string, c openapi.Classification) Input {
	t.Helper()
	in, _ := Build(tag, c)
	return in
}

func TestToDOT_DefaultEdgeColor(t *testing.T) {
	in := Input{
		Name:          "t",
		EndpointLabel: "Endpoints - t",
		Sources:       []string{"GET /x"},
		Edges:         []openapi.Edge{{From: "GET /x", To: "Orphan"}},
	}
	dot := ToDOT(in, Dark())
	if !strings.Contains(dot, `"GET /x" -> "Orphan" [color="#768390"];`) {
		t.Errorf("uncategorized edge should use default color:\n%s", dot)
	}
}

func TestToDOT_SortsUnsortedInput(t *testing.T) {
	in := Input{
		EndpointLabel: "Endpoints",
		Sources:       []string{"b", "a"},
		Groups:        []Group{{Category: openapi.CategorySchema, Nodes: []string{"Y", "X"}}},
		Edges: []openapi.Edge{
			{From: "b", To: "X"},
			{From: "a", To: "Y"},
			{From: "a", To: "Y"},
		},
	}
	dot := ToDOT(in, Light())
	if strings.Index(dot, `"a";`) > strings.Index(dot, `"b";`) {
		t.Error("sources not sorted")
	}
	if strings.Index(dot, `"X";`) > strings.Index(dot, `"Y";`) {
		t.Error("group nodes not sorted")
	}
	if strings.Count(dot, `"a" -> "Y"`) != 1 {
		t.Error("duplicate edges should be emitted once")
	}
	if in.Sources[0] != "b" {
		t.Error("ToDOT() must not reorder the caller's slices")
	}
}

func TestToDOT_EscapesLabels(t *testing.T) {
	in := Input{
		EndpointLabel: `Endpoints - "quoted"`,
		Sources:       []string{`GET /a\b`},
	}
	dot := ToDOT(in, Light())
	if !strings.Contains(dot, `label = "Endpoints - \"quoted\"";`) {
		t.Error("cluster label not escaped")
	}
	if !strings.Contains(dot, `"GET /a\\b";`) {
		t.Error("node label not escaped")
	}
}

func TestBuild_Conflicts(t *testing.T) {
	c := openapi.Classification{
		Sources: openapi.NodeSet{"GET /a": {}, "GET /b": {}},
		Edges: map[openapi.Category]openapi.EdgeSet{
			openapi.CategorySchema:   {{From: "GET /a", To: "Error"}: {}},
			openapi.CategoryResponse: {{From: "GET /b", To: "Error"}: {}, {From: "GET /b", To: "Gone"}: {}},
			openapi.CategorySecurity: {{From: "GET /a", To: "Gone"}: {}},
		},
	}

	in, conflicts := Build("t", c)

	if len(conflicts) != 2 {
		t.Fatalf("Build() conflicts = %v, want 2", conflicts)
	}
	if conflicts[0].Label != "Error" || conflicts[1].Label != "Gone" {
		t.Errorf("conflicts not sorted by label: %v", conflicts)
	}
	want := []openapi.Category{openapi.CategorySchema, openapi.CategoryResponse}
	if len(conflicts[0].Categories) != 2 || conflicts[0].Categories[0] != want[0] || conflicts[0].Categories[1] != want[1] {
		t.Errorf("Error categories = %v, want %v", conflicts[0].Categories, want)
	}

	// Each label lives in exactly one group: the first declared category.
	groups := map[openapi.Category][]string{}
	for _, g := range in.Groups {
		groups[g.Category] = g.Nodes
	}
	if got := groups[openapi.CategorySchema]; len(got) != 1 || got[0] != "Error" {
		t.Errorf("Schemas = %v, want [Error]", got)
	}
	if got := groups[openapi.CategoryResponse]; len(got) != 1 || got[0] != "Gone" {
		t.Errorf("Responses = %v, want [Gone]", got)
	}
	if got := groups[openapi.CategorySecurity]; len(got) != 0 {
		t.Errorf("Security = %v, want empty", got)
	}

	dot := ToDOT(in, Light())
	if !strings.Contains(dot, `"GET /b" -> "Error" [color="#28a745"];`) {
		t.Error("edge to conflicted label should take its owner's color")
	}
	if strings.Contains(dot, "cluster_security") {
		t.Error("security cluster should be empty and omitted")
	}
}

func TestBuild_Labels(t *testing.T) {
	in, _ := Build("pets", usersClassification())
	if in.Name != "pets" {
		t.Errorf("Name = %q, want pets", in.Name)
	}
	if in.EndpointLabel != "Endpoints - pets" {
		t.Errorf("EndpointLabel = %q", in.EndpointLabel)
	}
	if len(in.Groups) != len(openapi.Categories) {
		t.Errorf("Build() should return one group per category, got %d", len(in.Groups))
	}
	if len(in.Edges) != 2 {
		t.Errorf("Edges = %v, want 2", in.Edges)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		tag, ext, want string
	}{
		{"users", "dot", "users_dependencies.dot"},
		{"untagged", "svg", "untagged_dependencies.svg"},
		{"Pet Store", "dot", "Pet Store_dependencies.dot"},
		{"admin/users", "dot", "admin_users_dependencies.dot"},
		{`a\b`, "dot", "a_b_dependencies.dot"},
		{"tab\there", "dot", "tab_here_dependencies.dot"},
	}
	for _, tt := range tests {
		if got := FileName(tt.tag, tt.ext); got != tt.want {
			t.Errorf("FileName(%q, %q) = %q, want %q", tt.tag, tt.ext, got, tt.want)
		}
	}
}

func TestToDOT_ParsesWithGraphviz(t *testing.T) {
	in, _ := Build("users", usersClassification())
	for _, style := range []Style{Light(), Dark()} {
		g, err := graphviz.ParseBytes([]byte(ToDOT(in, style)))
		if err != nil {
			t.Fatalf("graphviz.ParseBytes() error: %v", err)
		}
		g.Close()
	}
}

func TestRenderSVG(t *testing.T) {
	in, _ := Build("users", usersClassification())
	svg, err := RenderSVG(context.Background(), ToDOT(in, Light()))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
