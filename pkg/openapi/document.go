package openapi

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/apigraph/pkg/errors"
)

// Kind identifies which variant a [Value] holds.
type Kind int

const (
	// KindScalar is a leaf: string, number, boolean or null.
	KindScalar Kind = iota
	// KindMapping is an ordered list of key/value entries.
	KindMapping
	// KindSequence is an ordered list of values.
	KindSequence
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// Entry is one key/value pair of a mapping.
type Entry struct {
	Key   string
	Value *Value
}

// Value is a node of a parsed document.
//
// Exactly one of Entries (mappings), Items (sequences) or Text/Null
// (scalars) is meaningful, selected by Kind. The zero value is an empty
// string scalar.
type Value struct {
	Kind    Kind
	Entries []Entry  // KindMapping, in document order
	Items   []*Value // KindSequence
	Text    string   // KindScalar
	Null    bool     // KindScalar: explicit or implicit null
}

// NewScalar returns a string scalar.
func NewScalar(text string) *Value { return &Value{Kind: KindScalar, Text: text} }

// NewNull returns a null scalar.
func NewNull() *Value { return &Value{Kind: KindScalar, Null: true} }

// NewMapping returns a mapping holding entries in the given order.
func NewMapping(entries ...Entry) *Value { return &Value{Kind: KindMapping, Entries: entries} }

// NewSequence returns a sequence of items.
func NewSequence(items ...*Value) *Value { return &Value{Kind: KindSequence, Items: items} }

// IsMapping reports whether v is a non-nil mapping.
func (v *Value) IsMapping() bool { return v != nil && v.Kind == KindMapping }

// IsSequence reports whether v is a non-nil sequence.
func (v *Value) IsSequence() bool { return v != nil && v.Kind == KindSequence }

// IsNull reports whether v is nil or a null scalar.
func (v *Value) IsNull() bool { return v == nil || (v.Kind == KindScalar && v.Null) }

// IsText reports whether v is a non-null scalar.
func (v *Value) IsText() bool { return v != nil && v.Kind == KindScalar && !v.Null }

// Get returns the value stored under key in a mapping. When a key repeats,
// the last occurrence wins, matching how decoders build maps.
// Get returns false for non-mappings.
func (v *Value) Get(key string) (*Value, bool) {
	if !v.IsMapping() {
		return nil, false
	}
	for i := len(v.Entries) - 1; i >= 0; i-- {
		if v.Entries[i].Key == key {
			return v.Entries[i].Value, true
		}
	}
	return nil, false
}

// Keys returns the mapping keys in document order.
func (v *Value) Keys() []string {
	if !v.IsMapping() {
		return nil
	}
	keys := make([]string, len(v.Entries))
	for i, e := range v.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Parse decodes a YAML or JSON document into a Value tree.
// Malformed input yields an error with code [errors.ErrCodeParse].
// An empty document parses to a null scalar.
func Parse(data []byte) (*Value, error) {
	v, err := decode(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "invalid document syntax")
	}
	return v, nil
}

// Load reads and parses the document at path. A missing file yields
// [errors.ErrCodeFileNotFound]; a syntax error yields [errors.ErrCodeParse].
func Load(path string) (*Value, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	v, err := decode(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse %s", path)
	}
	return v, nil
}

func decode(data []byte) (*Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return NewNull(), nil
	}
	return fromYAML(&root, map[*yaml.Node]bool{})
}

// fromYAML converts a yaml.Node. active holds the aliases being expanded
// on the current path so a self-referencing anchor fails instead of
// recursing forever.
func fromYAML(n *yaml.Node, active map[*yaml.Node]bool) (*Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return NewNull(), nil
		}
		return fromYAML(n.Content[0], active)

	case yaml.AliasNode:
		if active[n.Alias] {
			return nil, fmt.Errorf("line %d: alias *%s refers to itself", n.Line, n.Value)
		}
		active[n.Alias] = true
		defer delete(active, n.Alias)
		return fromYAML(n.Alias, active)

	case yaml.MappingNode:
		v := &Value{Kind: KindMapping, Entries: make([]Entry, 0, len(n.Content)/2)}
		for i := 0; i+1 < len(n.Content); i += 2 {
			val, err := fromYAML(n.Content[i+1], active)
			if err != nil {
				return nil, err
			}
			v.Entries = append(v.Entries, Entry{Key: n.Content[i].Value, Value: val})
		}
		return v, nil

	case yaml.SequenceNode:
		v := &Value{Kind: KindSequence, Items: make([]*Value, 0, len(n.Content))}
		for _, c := range n.Content {
			item, err := fromYAML(c, active)
			if err != nil {
				return nil, err
			}
			v.Items = append(v.Items, item)
		}
		return v, nil

	default:
		return &Value{Kind: KindScalar, Text: n.Value, Null: n.ShortTag() == "!!null"}, nil
	}
}
