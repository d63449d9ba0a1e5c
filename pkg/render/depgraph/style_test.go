package depgraph

import (
	"testing"

	"github.com/matzehuels/apigraph/pkg/openapi"
)

func TestForMode(t *testing.T) {
	if ForMode(false) != Light() {
		t.Error("ForMode(false) should be the light palette")
	}
	if ForMode(true) != Dark() {
		t.Error("ForMode(true) should be the dark palette")
	}
}

func TestStyleFor(t *testing.T) {
	s := Light()
	tests := []struct {
		cat  openapi.Category
		want CategoryStyle
	}{
		{openapi.CategorySchema, CategoryStyle{Fill: "#d4edda", Edge: "#28a745"}},
		{openapi.CategoryResponse, CategoryStyle{Fill: "#fff3cd", Edge: "#ffc107"}},
		{openapi.CategorySecurity, CategoryStyle{Fill: "#f8d7da", Edge: "#dc3545"}},
		{openapi.Category(99), CategoryStyle{Fill: "#ffffff", Edge: s.DefaultEdge}},
	}
	for _, tt := range tests {
		if got := s.For(tt.cat); got != tt.want {
			t.Errorf("For(%v) = %+v, want %+v", tt.cat, got, tt.want)
		}
	}
}

func TestPalettesComplete(t *testing.T) {
	for name, s := range map[string]Style{"light": Light(), "dark": Dark()} {
		fields := map[string]string{
			"Background":  s.Background,
			"Text":        s.Text,
			"Cluster":     s.Cluster,
			"DefaultEdge": s.DefaultEdge,
			"Endpoints":   s.Endpoints,
		}
		for _, cat := range openapi.Categories {
			cs := s.For(cat)
			fields[cat.String()+".Fill"] = cs.Fill
			fields[cat.String()+".Edge"] = cs.Edge
		}
		for field, v := range fields {
			if v == "" {
				t.Errorf("%s palette: %s is empty", name, field)
			}
		}
	}
}
