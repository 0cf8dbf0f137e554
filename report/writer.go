package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alc6/catdiff/catalog"
)

// Writer persists the difference records of one category.
type Writer interface {
	// Write stores diffs under dir and returns the path of the written file.
	Write(category catalog.Category, diffs []catalog.Difference, dir string) (string, error)
}

// Format names a report file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Formats returns the supported formats
func Formats() []Format {
	return []Format{FormatCSV, FormatJSON}
}

// baseColumns precede the category's extra fields in every report.
var baseColumns = []string{"object_type", "state", "side", "schema", "identifying_name"}

// FrenchHeaders translates report columns to the French names used by the
// first reports this tool replaced.
var FrenchHeaders = map[string]string{
	"object_type":      "type",
	"state":            "etat",
	"side":             "source",
	"schema":           "schema",
	"identifying_name": "nom",
	"table_name":       "nom_table",
	"column_name":      "nom_colonne",
	"data_type":        "type_donnees",
	"is_nullable":      "est_nullable",
	"column_default":   "valeur_par_defaut",
	"arguments":        "arguments",
	"definition":       "definition",
}

// Option configures a writer
type Option func(*options)

type options struct {
	labels  map[catalog.Side]string
	headers map[string]string
}

// WithSideLabels replaces "left" and "right" in the side column.
// An empty label keeps the default.
func WithSideLabels(left, right string) Option {
	return func(o *options) {
		if left != "" {
			o.labels[catalog.SideLeft] = left
		}
		if right != "" {
			o.labels[catalog.SideRight] = right
		}
	}
}

// WithHeaders renames report columns. Columns missing from translations keep their name.
func WithHeaders(translations map[string]string) Option {
	return func(o *options) {
		o.headers = translations
	}
}

func newOptions(opts []Option) options {
	o := options{
		labels: map[catalog.Side]string{
			catalog.SideLeft:  string(catalog.SideLeft),
			catalog.SideRight: string(catalog.SideRight),
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New creates a writer for format. An empty format selects CSV.
func New(format string, opts ...Option) (Writer, error) {
	o := newOptions(opts)

	switch Format(format) {
	case FormatCSV, "":
		return &CSVWriter{opts: o}, nil
	case FormatJSON:
		return &JSONWriter{opts: o}, nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// header returns the report columns of desc, translated by the writer options.
func (o options) header(desc catalog.Descriptor) []string {
	columns := make([]string, 0, len(baseColumns)+len(desc.ExtraFields))
	columns = append(columns, baseColumns...)
	columns = append(columns, desc.ExtraFields...)

	if o.headers == nil {
		return columns
	}
	for i, c := range columns {
		if t, ok := o.headers[c]; ok {
			columns[i] = t
		}
	}
	return columns
}

// row renders d in header order. Missing extra values are written as "".
func (o options) row(desc catalog.Descriptor, d catalog.Difference) []string {
	values := make([]string, 0, len(baseColumns)+len(desc.ExtraFields))
	values = append(values, string(d.Category), string(d.State), o.labels[d.Side], d.Schema, d.Name)
	for i := range desc.ExtraFields {
		var v string
		if i < len(d.Extra) {
			v = d.Extra[i]
		}
		values = append(values, v)
	}
	return values
}

// FileName returns the report file name of category for format.
func FileName(category catalog.Category, format Format) string {
	return fmt.Sprintf("%s_differences.%s", category, format)
}

func createReport(category catalog.Category, format Format, dir string) (*os.File, string, error) {
	path := filepath.Join(dir, FileName(category, format))
	f, err := os.Create(path)
	if err != nil {
		return nil, path, &WriteError{Category: category, Path: path, Err: err}
	}
	return f, path, nil
}
