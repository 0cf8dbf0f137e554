package main

import (
	"context"

	"github.com/alc6/catdiff/catalog"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks -exclude_interfaces=CatalogOpener

// CatalogConn is an open connection to one catalog
type CatalogConn interface {
	// Fetch returns the normalized objects of one category, restricted to
	// schema when it is not empty
	Fetch(ctx context.Context, category catalog.Category, schema string) ([]catalog.Object, error)
	// Close releases the connection
	Close() error
}

// CatalogOpener resolves logical catalog names to open connections
type CatalogOpener interface {
	// Open connects to the named catalog
	Open(ctx context.Context, name string) (CatalogConn, error)
}

// ReportWriter persists the differences of one category
type ReportWriter interface {
	// Write stores diffs under dir and returns the written file path
	Write(category catalog.Category, diffs []catalog.Difference, dir string) (string, error)
}
