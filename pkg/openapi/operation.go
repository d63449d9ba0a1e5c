package openapi

import "strings"

// Method is an HTTP verb in its upper-case identity form.
type Method string

const (
	MethodGet     Method = "GET"
	MethodPut     Method = "PUT"
	MethodPost    Method = "POST"
	MethodDelete  Method = "DELETE"
	MethodOptions Method = "OPTIONS"
	MethodHead    Method = "HEAD"
	MethodPatch   Method = "PATCH"
	MethodTrace   Method = "TRACE"
)

// Methods lists every method an operation may be declared under.
var Methods = []Method{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace,
}

// ParseMethod matches s against [Methods] ignoring case.
func ParseMethod(s string) (Method, bool) {
	m := Method(strings.ToUpper(s))
	for _, known := range Methods {
		if m == known {
			return m, true
		}
	}
	return "", false
}

// methodForKey matches a path item key. Path items declare operations
// under lower-case keys only; "GET" or "Get" are treated as extensions.
func methodForKey(key string) (Method, bool) {
	if strings.ToLower(key) != key {
		return "", false
	}
	return ParseMethod(key)
}

// Key returns the lower-case form used as a path item key.
func (m Method) Key() string { return strings.ToLower(string(m)) }

// Requirement is one entry of an operation's security list: the names of
// the schemes it requires.
type Requirement []string

// Operation is a single (path, method) entry of the paths table.
type Operation struct {
	Path     string
	Method   Method
	Tags     []string      // never empty once extracted
	Security []Requirement // nil when absent or null
	Node     *Value        // the operation object itself
}

// Label returns the display label of the operation, e.g. "GET /users".
func (o *Operation) Label() string {
	return string(o.Method) + " " + o.Path
}

// securityOf reads the security requirement list of an operation object.
// Entries that are not mappings are skipped.
func securityOf(op *Value) []Requirement {
	sec, ok := op.Get("security")
	if !ok || !sec.IsSequence() {
		return nil
	}
	reqs := make([]Requirement, 0, len(sec.Items))
	for _, item := range sec.Items {
		if !item.IsMapping() {
			continue
		}
		reqs = append(reqs, Requirement(item.Keys()))
	}
	return reqs
}
