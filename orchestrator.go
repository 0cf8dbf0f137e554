package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alc6/catdiff/catalog"
)

// RunConfig holds everything one comparison run needs
type RunConfig struct {
	Left      string
	Right     string
	Schema    string
	OutputDir string

	// Timeout bounds opening each catalog and the reads of one category;
	// zero disables it
	Timeout time.Duration

	// Parallel is the number of categories compared at once
	Parallel int
}

// CategoryResult is the outcome of one category
type CategoryResult struct {
	Category    catalog.Category
	Differences []catalog.Difference
	Path        string
	Duration    time.Duration
	Err         error
}

// Records returns the number of difference records found
func (r CategoryResult) Records() int {
	return len(r.Differences)
}

// RunSummary collects the per-category results of a run, in category order
type RunSummary struct {
	Left    string
	Right   string
	Schema  string
	Results []CategoryResult
}

// Failed returns the categories that could not be compared or written
func (s *RunSummary) Failed() []CategoryResult {
	var failed []CategoryResult
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// Err joins the errors of every failed category, or returns nil
func (s *RunSummary) Err() error {
	var errs []error
	for _, r := range s.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", r.Category, r.Err))
	}
	return errors.Join(errs...)
}

// Orchestrator drives fetch, compare and write for every category
type Orchestrator struct {
	config RunConfig
	opener CatalogOpener
	writer ReportWriter
}

func NewOrchestrator(cfg RunConfig, opener CatalogOpener, writer ReportWriter) *Orchestrator {
	if cfg.Parallel < 1 {
		cfg.Parallel = 1
	}
	return &Orchestrator{
		config: cfg,
		opener: opener,
		writer: writer,
	}
}

// Run compares the two catalogs. The returned error is only set when the
// output directory cannot be prepared; category failures, including
// connection failures, are reported in the summary.
func (o *Orchestrator) Run(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{
		Left:   o.config.Left,
		Right:  o.config.Right,
		Schema: o.config.Schema,
	}

	slog.Info("starting comparison", "left", o.config.Left, "right", o.config.Right, "schema", o.config.Schema)

	if err := PrepareOutputDir(o.config.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to prepare output directory: %w", err)
	}

	left, leftErr := o.open(ctx, o.config.Left)
	if leftErr == nil {
		defer closeConn(o.config.Left, left)
	}
	right, rightErr := o.open(ctx, o.config.Right)
	if rightErr == nil {
		defer closeConn(o.config.Right, right)
	}
	if err := errors.Join(leftErr, rightErr); err != nil {
		summary.Results = failAll(err)
		return summary, nil
	}

	categories := catalog.Categories()
	results := make([]CategoryResult, len(categories))

	var g errgroup.Group
	g.SetLimit(o.config.Parallel)
	for i, category := range categories {
		g.Go(func() error {
			results[i] = o.runCategory(ctx, left, right, category)
			return nil
		})
	}
	_ = g.Wait()

	summary.Results = results
	slog.Info("comparison finished", "categories", len(results), "failed", len(summary.Failed()))
	return summary, nil
}

// open connects to one catalog. The connection attempt is bounded by the
// same timeout as a category read.
func (o *Orchestrator) open(ctx context.Context, name string) (CatalogConn, error) {
	if o.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.Timeout)
		defer cancel()
	}

	conn, err := o.opener.Open(ctx, name)
	if err != nil {
		var connErr *ConnectionError
		if !errors.As(err, &connErr) {
			err = &ConnectionError{Catalog: name, Err: err}
		}
		slog.Error("failed to open catalog", "catalog", name, "error", err)
		return nil, err
	}
	return conn, nil
}

func closeConn(name string, conn CatalogConn) {
	if err := conn.Close(); err != nil {
		slog.Error("failed to close catalog", "catalog", name, "error", err)
	}
}

func failAll(err error) []CategoryResult {
	categories := catalog.Categories()
	results := make([]CategoryResult, len(categories))
	for i, c := range categories {
		results[i] = CategoryResult{Category: c, Err: err}
	}
	return results
}

func (o *Orchestrator) runCategory(ctx context.Context, left, right CatalogConn, category catalog.Category) CategoryResult {
	start := time.Now()
	result := CategoryResult{Category: category}

	slog.Info("comparing category", "category", category)

	diffs, err := o.compareCategory(ctx, left, right, category)
	if err == nil && len(diffs) > 0 {
		result.Path, err = o.writer.Write(category, diffs, o.config.OutputDir)
	}

	result.Differences = diffs
	result.Duration = time.Since(start)
	result.Err = err

	if err != nil {
		slog.Error("category failed", "category", category, "error", err, "duration", result.Duration)
	} else {
		slog.Info("category compared", "category", category, "records", result.Records(), "duration", result.Duration)
	}
	return result
}

func (o *Orchestrator) compareCategory(ctx context.Context, left, right CatalogConn, category catalog.Category) ([]catalog.Difference, error) {
	if o.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.Timeout)
		defer cancel()
	}

	leftObjs, err := fetch(ctx, left, o.config.Left, category, o.config.Schema)
	if err != nil {
		return nil, err
	}
	rightObjs, err := fetch(ctx, right, o.config.Right, category, o.config.Schema)
	if err != nil {
		return nil, err
	}

	desc, err := catalog.DescriptorFor(category)
	if err != nil {
		return nil, err
	}
	return catalog.Compare(leftObjs, rightObjs, desc)
}

func fetch(ctx context.Context, conn CatalogConn, name string, category catalog.Category, schema string) ([]catalog.Object, error) {
	objs, err := conn.Fetch(ctx, category, schema)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return nil, fmt.Errorf("failed to fetch %s from %s: %w", category, name, err)
	}
	return objs, nil
}
