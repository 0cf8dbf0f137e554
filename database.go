package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/alc6/catdiff/catalog"
)

// ConnectionError reports a catalog that could not be reached. Every category
// of a run needs both catalogs, so it fails the whole comparison.
type ConnectionError struct {
	Catalog string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to catalog %s: %v", e.Catalog, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Catalog is an open connection to one named catalog.
type Catalog struct {
	Name   string
	DB     *sql.DB
	reader *catalog.SQLReader
}

// OpenCatalog connects to the catalog described by params and checks it is
// reachable. Failures are returned as *ConnectionError.
func OpenCatalog(ctx context.Context, name string, params catalog.ConnParams, dialects *catalog.DialectRegistry) (*Catalog, error) {
	dialect, err := dialects.Get(params.Dialect)
	if err != nil {
		return nil, &ConnectionError{Catalog: name, Err: err}
	}

	dsn, err := dialect.DSN(params)
	if err != nil {
		return nil, &ConnectionError{Catalog: name, Err: err}
	}

	slog.Debug("opening catalog", "catalog", name, "dialect", dialect.Name(), "host", params.Host, "database", params.Database)
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, &ConnectionError{Catalog: name, Err: fmt.Errorf("failed to open database connection: %w", err)}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &ConnectionError{Catalog: name, Err: fmt.Errorf("failed to ping database: %w", err)}
	}

	slog.Info("catalog connected", "catalog", name, "dialect", dialect.Name())
	return &Catalog{
		Name:   name,
		DB:     db,
		reader: catalog.NewSQLReader(db, dialect),
	}, nil
}

// Fetch implements catalog.Reader
func (c *Catalog) Fetch(ctx context.Context, category catalog.Category, schema string) ([]catalog.Object, error) {
	if c.reader == nil {
		return nil, fmt.Errorf("catalog %s is not open", c.Name)
	}
	return c.reader.Fetch(ctx, category, schema)
}

func (c *Catalog) Close() error {
	if c.DB == nil {
		return nil
	}
	slog.Debug("closing catalog", "catalog", c.Name)
	return c.DB.Close()
}
