// Package openapi discovers the dependency structure of an OpenAPI-style
// description document.
//
// # Overview
//
// A document is loaded into a [Value] tree: a closed variant of mappings,
// sequences and scalars that preserves key order. Three passes run over it:
//
//   - [ScanRefs] collects every "$ref" pointer in a subtree
//   - [Extractor] walks the paths table and groups operations by tag
//   - [Classifier] turns one tag's operations into categorized edges
//
// # Usage
//
//	doc, err := openapi.Load("openapi.yaml")
//	if err != nil {
//	    return err
//	}
//	groups, err := openapi.Extractor{SentinelTag: "untagged"}.Extract(doc)
//	if err != nil {
//	    return err
//	}
//	c := openapi.Classifier{
//	    SchemaMarker:   "#/components/schemas/",
//	    ResponseMarker: "#/components/responses/",
//	}
//	for _, tag := range groups.Tags() {
//	    result := c.Classify(groups.Operations(tag))
//	    // result.Sources, result.Edges[openapi.CategorySchema], ...
//	}
//
// # Categories
//
// Targets fall into exactly one of [CategorySchema], [CategoryResponse] or
// [CategorySecurity]. Pointers into other component areas (parameters,
// headers, examples) are dropped.
//
// # Parsing
//
// Documents are decoded with gopkg.in/yaml.v3, which also accepts JSON.
// Anchors and aliases are resolved while converting to [Value], so an alias
// contributes the pointers of the value it names.
package openapi
