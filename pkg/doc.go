// Package pkg holds the libraries behind the apigraph command.
//
// # Overview
//
//  1. [openapi] - document model, reference scanning, tag grouping, edge classification
//  2. [render/depgraph] - DOT and SVG output of one graph per tag
//  3. [report] - endpoint/method CSV for multi-file documents
//  4. [pipeline] - orchestration (extract → classify → render)
//  5. [config], [errors], [cache], [observability], [buildinfo] - supporting infrastructure
//
// # Data flow
//
//	OpenAPI document
//	       ↓
//	  [openapi] Extractor (operations grouped by tag)
//	       ↓
//	  [openapi] Classifier (sources + schema/response/security edges)
//	       ↓
//	  [render/depgraph] Build + ToDOT
//	       ↓
//	  <tag>_dependencies.dot / .svg
//
// [openapi]: github.com/matzehuels/apigraph/pkg/openapi
// [render/depgraph]: github.com/matzehuels/apigraph/pkg/render/depgraph
// [report]: github.com/matzehuels/apigraph/pkg/report
// [pipeline]: github.com/matzehuels/apigraph/pkg/pipeline
// [config]: github.com/matzehuels/apigraph/pkg/config
// [errors]: github.com/matzehuels/apigraph/pkg/errors
// [cache]: github.com/matzehuels/apigraph/pkg/cache
// [observability]: github.com/matzehuels/apigraph/pkg/observability
// [buildinfo]: github.com/matzehuels/apigraph/pkg/buildinfo
package pkg
