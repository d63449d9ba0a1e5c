// Package report lists the HTTP methods declared for every endpoint of a
// multi-file API description.
//
// The root document's paths table maps each path to a "$ref" naming a
// separate file that holds the path item. [Collector.Collect] follows one
// level of those references and [WriteCSV] emits one row per path:
//
//	Endpoint,Methods
//	/pets,"GET, POST"
//	/pets/{id},"DELETE, GET"
//
// A path file that cannot be read or parsed is logged and skipped; only a
// missing or malformed root document is fatal.
package report

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/apigraph/pkg/errors"
	"github.com/matzehuels/apigraph/pkg/openapi"
)

// Row is one endpoint and its declared methods, sorted alphabetically.
type Row struct {
	Path    string
	Methods []openapi.Method
}

// MethodList joins the methods with ", ".
func (r Row) MethodList() string {
	names := make([]string, len(r.Methods))
	for i, m := range r.Methods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// Collector gathers report rows.
type Collector struct {
	Logger *log.Logger
}

// NewCollector returns a collector logging to logger, or to the default
// logger when nil.
func NewCollector(logger *log.Logger) *Collector {
	if logger == nil {
		logger = log.Default()
	}
	return &Collector{Logger: logger}
}

// Collect reads the root document and every path file it references.
// Rows are sorted by path. References are resolved relative to the root
// document's directory.
func (c *Collector) Collect(ctx context.Context, root string) ([]Row, error) {
	doc, err := openapi.Load(root)
	if err != nil {
		return nil, err
	}
	if !doc.IsMapping() {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: document root must be a mapping", root)
	}
	paths, ok := doc.Get("paths")
	if !ok || !paths.IsMapping() {
		c.Logger.Warn("No paths found", "file", root)
		return nil, nil
	}

	base := filepath.Dir(root)
	byPath := make(map[string]Row, len(paths.Entries))
	for _, e := range paths.Entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ref, ok := e.Value.Get(openapi.RefKey)
		if !ok || !ref.IsText() {
			continue
		}
		file := resolve(base, ref.Text)

		item, err := openapi.Load(file)
		if err != nil {
			c.Logger.Warn("Could not read or parse path file", "path", e.Key, "file", file, "err", errors.UserMessage(err))
			continue
		}
		if !item.IsMapping() {
			c.Logger.Warn("Path file is not a mapping", "path", e.Key, "file", file)
			continue
		}
		byPath[e.Key] = Row{Path: e.Key, Methods: declaredMethods(item)}
		c.Logger.Debug("Collected path", "path", e.Key, "methods", len(byPath[e.Key].Methods))
	}

	rows := make([]Row, 0, len(byPath))
	for _, r := range byPath {
		rows = append(rows, r)
	}
	slices.SortFunc(rows, func(a, b Row) int { return strings.Compare(a.Path, b.Path) })
	return rows, nil
}

// resolve maps a "$ref" to a file path. Any "#fragment" is dropped and
// relative references are taken from base.
func resolve(base, ref string) string {
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		ref = ref[:i]
	}
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(base, filepath.FromSlash(ref))
}

// declaredMethods returns the top-level keys of a path item that name an
// HTTP method in any case, upper-cased, de-duplicated and sorted.
func declaredMethods(item *openapi.Value) []openapi.Method {
	methods := []openapi.Method{}
	for _, k := range item.Keys() {
		if m, ok := openapi.ParseMethod(k); ok && !slices.Contains(methods, m) {
			methods = append(methods, m)
		}
	}
	slices.Sort(methods)
	return methods
}

// WriteCSV writes the header and one row per entry of rows.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Endpoint", "Methods"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Path, r.MethodList()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the CSV report to path.
func WriteFile(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "create %s", path)
	}
	if err := WriteCSV(f, rows); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeWrite, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "close %s", path)
	}
	return nil
}
