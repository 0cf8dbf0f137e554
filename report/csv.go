package report

import (
	"encoding/csv"
	"log/slog"

	"github.com/alc6/catdiff/catalog"
)

// CSVWriter writes one <category>_differences.csv file per category.
type CSVWriter struct {
	opts options
}

// Write implements Writer
func (w *CSVWriter) Write(category catalog.Category, diffs []catalog.Difference, dir string) (string, error) {
	desc, err := catalog.DescriptorFor(category)
	if err != nil {
		return "", &WriteError{Category: category, Err: err}
	}

	f, path, err := createReport(category, FormatCSV, dir)
	if err != nil {
		return "", err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(w.opts.header(desc)); err != nil {
		return "", &WriteError{Category: category, Path: path, Err: err}
	}
	for _, d := range diffs {
		if err := cw.Write(w.opts.row(desc, d)); err != nil {
			return "", &WriteError{Category: category, Path: path, Err: err}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", &WriteError{Category: category, Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &WriteError{Category: category, Path: path, Err: err}
	}

	slog.Debug("wrote report", "category", category, "path", path, "records", len(diffs))
	return path, nil
}
