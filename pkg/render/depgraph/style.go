package depgraph

import "github.com/matzehuels/apigraph/pkg/openapi"

// CategoryStyle holds the colors of one target category.
type CategoryStyle struct {
	Fill string // node fill color
	Edge string // color of edges pointing into the category
}

// Style is a complete color palette for a graph.
type Style struct {
	Background  string
	Text        string
	Cluster     string // cluster border and label color
	DefaultEdge string // edges whose target has no category
	Endpoints   string // endpoint node fill color

	Schemas   CategoryStyle
	Responses CategoryStyle
	Security  CategoryStyle
}

// For returns the colors of category c. Unknown categories get a white
// fill and the default edge color.
func (s Style) For(c openapi.Category) CategoryStyle {
	switch c {
	case openapi.CategorySchema:
		return s.Schemas
	case openapi.CategoryResponse:
		return s.Responses
	case openapi.CategorySecurity:
		return s.Security
	default:
		return CategoryStyle{Fill: "#ffffff", Edge: s.DefaultEdge}
	}
}

// Light returns the palette for light backgrounds.
func Light() Style {
	return Style{
		Background:  "#FFFFFF",
		Text:        "#000000",
		Cluster:     "#000000",
		DefaultEdge: "#000000",
		Endpoints:   "#e6f2ff",
		Schemas:     CategoryStyle{Fill: "#d4edda", Edge: "#28a745"},
		Responses:   CategoryStyle{Fill: "#fff3cd", Edge: "#ffc107"},
		Security:    CategoryStyle{Fill: "#f8d7da", Edge: "#dc3545"},
	}
}

// Dark returns the palette for dark backgrounds.
func Dark() Style {
	return Style{
		Background:  "#2d333b",
		Text:        "#cdd9e5",
		Cluster:     "#cdd9e5",
		DefaultEdge: "#768390",
		Endpoints:   "#37516b",
		Schemas:     CategoryStyle{Fill: "#345a3f", Edge: "#53b668"},
		Responses:   CategoryStyle{Fill: "#634c23", Edge: "#d8a436"},
		Security:    CategoryStyle{Fill: "#6b3940", Edge: "#e26a77"},
	}
}

// ForMode returns [Dark] when dark is set, otherwise [Light].
func ForMode(dark bool) Style {
	if dark {
		return Dark()
	}
	return Light()
}
