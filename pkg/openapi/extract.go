package openapi

import (
	"cmp"
	"slices"

	"github.com/matzehuels/apigraph/pkg/errors"
)

// PathOperations maps a path to the operations declared on it.
type PathOperations map[string]map[Method]*Operation

// TagGroups maps a tag to the operations carrying it. One operation may
// appear under several tags.
type TagGroups map[string]PathOperations

// Tags returns the tag names in lexicographic order.
func (g TagGroups) Tags() []string {
	tags := make([]string, 0, len(g))
	for t := range g {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	return tags
}

// Operations returns the operations under tag ordered by path, then by
// method in [Methods] order.
func (g TagGroups) Operations(tag string) []*Operation {
	var ops []*Operation
	for _, byMethod := range g[tag] {
		for _, op := range byMethod {
			ops = append(ops, op)
		}
	}
	slices.SortFunc(ops, func(a, b *Operation) int {
		if c := cmp.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return cmp.Compare(slices.Index(Methods, a.Method), slices.Index(Methods, b.Method))
	})
	return ops
}

func (g TagGroups) add(tag string, op *Operation) {
	paths, ok := g[tag]
	if !ok {
		paths = PathOperations{}
		g[tag] = paths
	}
	byMethod, ok := paths[op.Path]
	if !ok {
		byMethod = map[Method]*Operation{}
		paths[op.Path] = byMethod
	}
	byMethod[op.Method] = op
}

// Extractor walks a document's paths table.
type Extractor struct {
	// SentinelTag groups operations that declare no tags.
	SentinelTag string
}

// Extract returns every operation of doc grouped by tag.
//
// The root must be a mapping. A document without paths (or with null
// paths) yields empty groups. Path items and operations that are not
// mappings, and keys that are not lower-case HTTP methods, are skipped.
func (x Extractor) Extract(doc *Value) (TagGroups, error) {
	if !doc.IsMapping() {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document root must be a mapping, got %s", kindOf(doc))
	}
	groups := TagGroups{}
	paths, ok := doc.Get("paths")
	if !ok || paths.IsNull() {
		return groups, nil
	}
	if !paths.IsMapping() {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "paths must be a mapping, got %s", kindOf(paths))
	}

	for _, pe := range paths.Entries {
		if !pe.Value.IsMapping() {
			continue
		}
		for _, me := range pe.Value.Entries {
			method, ok := methodForKey(me.Key)
			if !ok || !me.Value.IsMapping() {
				continue
			}
			op := &Operation{
				Path:     pe.Key,
				Method:   method,
				Tags:     x.TagsFor(me.Value),
				Security: securityOf(me.Value),
				Node:     me.Value,
			}
			for _, tag := range op.Tags {
				groups.add(tag, op)
			}
		}
	}
	return groups, nil
}

// TagsFor returns the tags declared by an operation object, de-duplicated
// in declaration order. An operation with no usable tags (field absent,
// null, empty, or holding no non-empty scalars) gets the sentinel tag.
func (x Extractor) TagsFor(op *Value) []string {
	var tags []string
	if decl, ok := op.Get("tags"); ok && decl.IsSequence() {
		for _, item := range decl.Items {
			if !item.IsText() || item.Text == "" || slices.Contains(tags, item.Text) {
				continue
			}
			tags = append(tags, item.Text)
		}
	}
	if len(tags) == 0 {
		return []string{x.SentinelTag}
	}
	return tags
}

func kindOf(v *Value) string {
	if v.IsNull() {
		return "null"
	}
	return v.Kind.String()
}
