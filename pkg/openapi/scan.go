package openapi

import (
	"slices"
	"strings"
)

// RefKey is the mapping key whose value is a cross-reference pointer.
const RefKey = "$ref"

// Pointer is a "$ref" value such as "#/components/schemas/User".
// It is opaque apart from its final path segment.
type Pointer string

// Target returns the final "/"-separated segment of the pointer, used as
// the identity of the node it points to.
func (p Pointer) Target() string {
	s := string(p)
	return s[strings.LastIndex(s, "/")+1:]
}

// Refs is a set of pointers.
type Refs map[Pointer]struct{}

// Has reports whether p is in the set.
func (r Refs) Has(p Pointer) bool {
	_, ok := r[p]
	return ok
}

// Sorted returns the pointers in lexicographic order.
func (r Refs) Sorted() []Pointer {
	out := make([]Pointer, 0, len(r))
	for p := range r {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// ScanRefs collects every pointer found anywhere under v.
//
// Mapping values are visited in order; an entry keyed [RefKey] whose value
// is a non-null scalar is recorded instead of descended into. Sequence
// items are all visited. Scalars contribute nothing, so the result is
// empty (never nil) for a tree without pointers.
func ScanRefs(v *Value) Refs {
	refs := Refs{}
	scan(v, refs)
	return refs
}

func scan(v *Value, refs Refs) {
	if v == nil {
		return
	}
	switch v.Kind {
	case KindMapping:
		for _, e := range v.Entries {
			if e.Key == RefKey && e.Value.IsText() {
				refs[Pointer(e.Value.Text)] = struct{}{}
				continue
			}
			scan(e.Value, refs)
		}
	case KindSequence:
		for _, item := range v.Items {
			scan(item, refs)
		}
	}
}
