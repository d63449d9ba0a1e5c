// Package pipeline turns an API description document into one dependency
// graph per tag.
//
// The pipeline is the single entry point shared by the CLI commands and
// tests:
//
//  1. Extract: group the document's operations by tag
//  2. Classify: derive sources and categorized edges for each tag
//  3. Render: emit DOT, and SVG when requested, for every tag with edges
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:  "openapi.yaml",
//	    Config: config.Default(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range result.Artifacts {
//	    os.WriteFile(a.FileName, a.Data, 0o644)
//	}
//
// The runner writes nothing to disk; callers decide where artifacts go.
package pipeline

import (
	"time"

	"github.com/matzehuels/apigraph/pkg/config"
	"github.com/matzehuels/apigraph/pkg/errors"
	"github.com/matzehuels/apigraph/pkg/openapi"
	"github.com/matzehuels/apigraph/pkg/render/depgraph"
)

// Options configures one pipeline run.
type Options struct {
	// Input is the path of the document to read. Ignored when Document
	// is set.
	Input string
	// Document is an already parsed document.
	Document *openapi.Value
	// Config supplies the sentinel tag, markers, palette and formats.
	Config config.Config
}

func (o Options) validate() error {
	if o.Input == "" && o.Document == nil {
		return errors.New(errors.ErrCodeInvalidInput, "input document is required")
	}
	return o.Config.Validate()
}

// Artifact is one rendered graph.
type Artifact struct {
	Tag      string
	Format   string
	FileName string
	Data     []byte
	CacheHit bool // only SVG artifacts are cached
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Artifacts are ordered by tag, then DOT before SVG.
	Artifacts []Artifact

	// Skipped lists tags whose operations produced no edges.
	Skipped []string

	// Conflicts maps a tag to the labels it reached under several
	// categories.
	Conflicts map[string][]depgraph.Conflict

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TagCount       int
	OperationCount int // distinct (path, method) pairs across all tags
	EdgeCount      int // summed per tag
	ExtractTime    time.Duration
	RenderTime     time.Duration
}
