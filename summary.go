package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/alc6/catdiff/catalog"
)

// WriteSummary prints one line per category with its record count and
// report path, or its error.
func WriteSummary(w io.Writer, s *RunSummary) error {
	schema := s.Schema
	if schema == "" {
		schema = "(all)"
	}
	fmt.Fprintf(w, "\n=== %s vs %s, schema %s ===\n", s.Left, s.Right, schema)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tRECORDS\tSTATUS\tREPORT")
	for _, r := range s.Results {
		status, records, path := "ok", fmt.Sprint(r.Records()), r.Path
		switch {
		case r.Err != nil:
			status, records, path = "failed", "-", strings.ReplaceAll(r.Err.Error(), "\n", "; ")
		case r.Records() == 0:
			path = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Category, records, status, path)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if failed := len(s.Failed()); failed > 0 {
		fmt.Fprintf(w, "\n%d of %d categories failed\n", failed, len(s.Results))
	}
	return nil
}

// FormatRunDetails renders the summary followed by the differences of every
// category that has some.
func FormatRunDetails(s *RunSummary) string {
	var sb strings.Builder
	_ = WriteSummary(&sb, s)

	for _, r := range s.Results {
		if r.Records() == 0 {
			continue
		}
		desc, err := catalog.DescriptorFor(r.Category)
		if err != nil {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(catalog.FormatDifferences(desc, r.Differences))
	}
	return sb.String()
}

// ExitCode maps a run to the process exit code. Category failures only
// change it in strict mode.
func ExitCode(s *RunSummary, strict bool) int {
	if strict && len(s.Failed()) > 0 {
		return 1
	}
	return 0
}
