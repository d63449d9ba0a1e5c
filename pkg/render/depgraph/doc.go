// Package depgraph renders per-tag API dependency graphs as Graphviz DOT.
//
// # Overview
//
// Each graph has one cluster of endpoint nodes (operations such as
// "GET /users") and one cluster per non-empty target category (Schemas,
// Responses, Security). Edges run from endpoints to targets and are
// colored by the target's category.
//
// # Usage
//
// Build the renderer input from a classification, then emit DOT:
//
//	in, conflicts := depgraph.Build("users", classification)
//	dot := depgraph.ToDOT(in, depgraph.Light())
//
// For SVG output, render the DOT in-process with Graphviz:
//
//	r := depgraph.NewSVGRenderer(cache.NewNullCache())
//	svg, cached, err := r.Render(ctx, dot)
//
// # Determinism
//
// [ToDOT] sorts nodes within every cluster and sorts edges by
// (source, target), so the same input and [Style] always produce
// byte-identical output.
//
// # Styles
//
// [Light] and [Dark] are the two built-in palettes; [ForMode] picks one
// from a boolean switch.
//
// # Dependencies
//
// SVG rendering uses [github.com/goccy/go-graphviz]. DOT generation has no
// external dependencies.
package depgraph
