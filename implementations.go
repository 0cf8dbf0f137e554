package main

import (
	"context"
	"fmt"

	"github.com/alc6/catdiff/catalog"
	"github.com/alc6/catdiff/report"
)

// SQLCatalogOpener opens the catalogs declared in a configuration file
type SQLCatalogOpener struct {
	config   *Config
	dialects *catalog.DialectRegistry
}

func NewSQLCatalogOpener(cfg *Config) CatalogOpener {
	return &SQLCatalogOpener{
		config:   cfg,
		dialects: catalog.DefaultDialects(),
	}
}

func (o *SQLCatalogOpener) Open(ctx context.Context, name string) (CatalogConn, error) {
	params, err := o.config.Catalog(name)
	if err != nil {
		return nil, &ConnectionError{Catalog: name, Err: err}
	}
	c, err := OpenCatalog(ctx, name, params, o.dialects)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// NewReportWriter creates the report writer selected by the output settings
func NewReportWriter(cfg *Config) (ReportWriter, error) {
	w, err := report.New(cfg.Output.Format, cfg.ReportOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create report writer: %w", err)
	}
	return w, nil
}
