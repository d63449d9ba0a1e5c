package depgraph

import (
	"context"
	"testing"

	"github.com/matzehuels/apigraph/pkg/cache"
)

func TestSVGRenderer_Caches(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewSVGRenderer(c)

	in, _ := Build("users", usersClassification())
	dot := ToDOT(in, Light())

	first, hit, err := r.Render(ctx, dot)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if hit {
		t.Error("first Render() should miss the cache")
	}

	second, hit, err := r.Render(ctx, dot)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !hit {
		t.Error("second Render() should hit the cache")
	}
	if string(first) != string(second) {
		t.Error("cached SVG differs from rendered SVG")
	}
}

func TestSVGRenderer_NilCache(t *testing.T) {
	r := NewSVGRenderer(nil)
	if _, hit, err := r.Render(context.Background(), "digraph G { a -> b; }"); err != nil || hit {
		t.Errorf("Render() = hit %v, err %v", hit, err)
	}
}
