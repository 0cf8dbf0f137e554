package report

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"github.com/alc6/catdiff/catalog"
)

// JSONWriter writes one <category>_differences.json file per category: an
// array of objects whose keys follow the report header order.
type JSONWriter struct {
	opts options
}

// orderedRecord marshals as a JSON object keeping key order.
type orderedRecord struct {
	keys   []string
	values []string
}

func (r orderedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Write implements Writer
func (w *JSONWriter) Write(category catalog.Category, diffs []catalog.Difference, dir string) (string, error) {
	desc, err := catalog.DescriptorFor(category)
	if err != nil {
		return "", &WriteError{Category: category, Err: err}
	}

	header := w.opts.header(desc)
	records := make([]orderedRecord, 0, len(diffs))
	for _, d := range diffs {
		records = append(records, orderedRecord{keys: header, values: w.opts.row(desc, d)})
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", &WriteError{Category: category, Err: err}
	}

	f, path, err := createReport(category, FormatJSON, dir)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return "", &WriteError{Category: category, Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &WriteError{Category: category, Path: path, Err: err}
	}

	slog.Debug("wrote report", "category", category, "path", path, "records", len(diffs))
	return path, nil
}
