package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alc6/catdiff/catalog"
	"github.com/alc6/catdiff/report"
)

// PrepareOutputDir creates dir if needed and removes the reports left in it
// by a previous run. Only file names a report writer produces are removed;
// anything else in dir is kept.
func PrepareOutputDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory is not set")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read output directory %s: %w", dir, err)
	}

	reports := reportFileNames()
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !reports[entry.Name()] {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove stale report %s: %w", path, err)
		}
		slog.Debug("removed stale report", "file", path)
		removed++
	}

	slog.Info("output directory ready", "directory", dir, "removed", removed)
	return nil
}

func reportFileNames() map[string]bool {
	names := make(map[string]bool)
	for _, c := range catalog.Categories() {
		for _, f := range report.Formats() {
			names[report.FileName(c, f)] = true
		}
	}
	return names
}
