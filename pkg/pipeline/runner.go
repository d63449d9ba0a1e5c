package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/apigraph/pkg/cache"
	"github.com/matzehuels/apigraph/pkg/config"
	"github.com/matzehuels/apigraph/pkg/observability"
	"github.com/matzehuels/apigraph/pkg/openapi"
	"github.com/matzehuels/apigraph/pkg/render/depgraph"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can share one with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and logger.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs extract → classify → render for every tag of the document.
// Tags without edges produce no artifact. The context is checked between
// tags.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	cfg := opts.Config

	hooks := observability.Pipeline()

	extractStart := time.Now()
	groups, err := extract(opts)
	hooks.OnExtractComplete(ctx, opts.Input, len(groups), time.Since(extractStart), err)
	if err != nil {
		return nil, err
	}

	result := &Result{Conflicts: map[string][]depgraph.Conflict{}}
	result.Stats.ExtractTime = time.Since(extractStart)
	result.Stats.TagCount = len(groups)

	if len(groups) == 0 {
		r.Logger.Warn("No paths found", "input", opts.Input)
		return result, nil
	}
	r.Logger.Debug("extracted operations", "tags", len(groups), "duration", result.Stats.ExtractTime)

	classifier := openapi.Classifier{
		SchemaMarker:   cfg.SchemaMarker,
		ResponseMarker: cfg.ResponseMarker,
	}
	style := depgraph.ForMode(cfg.Dark)
	svg := depgraph.NewSVGRenderer(r.Cache)

	// An operation carrying several tags is shared between their groups.
	seen := make(map[*openapi.Operation]struct{})

	renderStart := time.Now()
	for _, tag := range groups.Tags() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ops := groups.Operations(tag)
		for _, op := range ops {
			seen[op] = struct{}{}
		}

		c := classifier.Classify(ops)
		if c.Empty() {
			r.Logger.Debug("skipping tag without edges", "tag", tag, "operations", len(ops))
			result.Skipped = append(result.Skipped, tag)
			hooks.OnTagSkipped(ctx, tag)
			continue
		}
		tagStart := time.Now()
		edges := len(c.AllEdges())
		result.Stats.EdgeCount += edges

		in, conflicts := depgraph.Build(tag, c)
		for _, cf := range conflicts {
			r.Logger.Warn("Component reached under several categories",
				"tag", tag, "label", cf.Label, "drawn_as", cf.Categories[0])
		}
		if len(conflicts) > 0 {
			result.Conflicts[tag] = conflicts
		}

		dot := depgraph.ToDOT(in, style)
		if cfg.WantsFormat(config.FormatDOT) {
			result.Artifacts = append(result.Artifacts, Artifact{
				Tag:      tag,
				Format:   config.FormatDOT,
				FileName: depgraph.FileName(tag, config.FormatDOT),
				Data:     []byte(dot),
			})
		}
		if cfg.WantsFormat(config.FormatSVG) {
			data, hit, err := svg.Render(ctx, dot)
			if err != nil {
				return nil, err
			}
			result.Artifacts = append(result.Artifacts, Artifact{
				Tag:      tag,
				Format:   config.FormatSVG,
				FileName: depgraph.FileName(tag, config.FormatSVG),
				Data:     data,
				CacheHit: hit,
			})
		}
		hooks.OnTagRendered(ctx, tag, edges, time.Since(tagStart))
		r.Logger.Debug("rendered tag", "tag", tag, "operations", len(ops), "edges", edges)
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.OperationCount = len(seen)

	r.Logger.Info("rendered graphs",
		"artifacts", len(result.Artifacts),
		"skipped", len(result.Skipped),
		"duration", result.Stats.RenderTime)
	return result, nil
}

func extract(opts Options) (openapi.TagGroups, error) {
	doc := opts.Document
	if doc == nil {
		var err error
		if doc, err = openapi.Load(opts.Input); err != nil {
			return nil, err
		}
	}
	return openapi.Extractor{SentinelTag: opts.Config.SentinelTag}.Extract(doc)
}
