package depgraph

import (
	"bytes"
	"context"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/apigraph/pkg/cache"
	"github.com/matzehuels/apigraph/pkg/errors"
	"github.com/matzehuels/apigraph/pkg/observability"
)

// svgTTL bounds how long a rendered SVG is reused. Output only changes
// when Graphviz itself is upgraded.
const svgTTL = 30 * 24 * time.Hour

// SVGRenderer lays out DOT graphs with Graphviz and caches the result.
type SVGRenderer struct {
	cache cache.Cache
}

// NewSVGRenderer returns a renderer backed by c. A nil cache disables
// caching.
func NewSVGRenderer(c cache.Cache) *SVGRenderer {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &SVGRenderer{cache: c}
}

// Render returns the SVG for dot and whether it came from the cache.
// Cache failures are ignored; rendering failures are returned.
func (r *SVGRenderer) Render(ctx context.Context, dot string) ([]byte, bool, error) {
	hooks := observability.Cache()
	key := cache.Key("svg", []byte(dot))
	if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
		hooks.OnCacheHit(ctx, "svg")
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, "svg")

	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, false, err
	}
	if err := r.cache.Set(ctx, key, svg, svgTTL); err == nil {
		hooks.OnCacheSet(ctx, "svg", len(svg))
	}
	return svg, false, nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render")
	}
	return buf.Bytes(), nil
}
