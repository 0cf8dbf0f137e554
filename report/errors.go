package report

import (
	"fmt"

	"github.com/alc6/catdiff/catalog"
)

// WriteError reports a failure to persist one category's report.
type WriteError struct {
	Category catalog.Category
	Path     string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s report %s: %v", e.Category, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
