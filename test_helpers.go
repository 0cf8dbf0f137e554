package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/alc6/catdiff/catalog"
)

// MockCatalogOpener is a mock implementation of CatalogOpener for testing
type MockCatalogOpener struct {
	OpenFunc func(ctx context.Context, name string) (CatalogConn, error)

	// Track calls for verification
	mu     sync.Mutex
	Opened []string
}

func (m *MockCatalogOpener) Open(ctx context.Context, name string) (CatalogConn, error) {
	m.mu.Lock()
	m.Opened = append(m.Opened, name)
	m.mu.Unlock()
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, name)
	}
	return nil, fmt.Errorf("no catalog %s", name)
}

// StaticCatalog is an in-memory CatalogConn serving fixed objects per category
type StaticCatalog struct {
	Objects  map[catalog.Category][]catalog.Object
	FetchErr map[catalog.Category]error

	mu          sync.Mutex
	CloseCalled bool
}

func (s *StaticCatalog) Fetch(_ context.Context, category catalog.Category, schema string) ([]catalog.Object, error) {
	if err := s.FetchErr[category]; err != nil {
		return nil, err
	}
	var objs []catalog.Object
	for _, o := range s.Objects[category] {
		if schema == "" || o["schema"] == schema {
			objs = append(objs, o)
		}
	}
	return objs, nil
}

func (s *StaticCatalog) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CloseCalled = true
	return nil
}

// OpenerFor returns an opener serving the given catalogs by name
func OpenerFor(catalogs map[string]CatalogConn) *MockCatalogOpener {
	return &MockCatalogOpener{
		OpenFunc: func(_ context.Context, name string) (CatalogConn, error) {
			c, ok := catalogs[name]
			if !ok {
				return nil, &ConnectionError{Catalog: name, Err: fmt.Errorf("unknown catalog %q", name)}
			}
			return c, nil
		},
	}
}

// testConfig returns a valid configuration with two postgres catalogs
func testConfig(dir string) *Config {
	return &Config{
		Catalogs: map[string]CatalogConfig{
			"PG-TEST": {Dialect: "postgres", Host: "localhost", Port: 5432, Database: "app"},
			"PG-DWH":  {Dialect: "postgres", Host: "dwh", Port: 5432, Database: "dwh", Password: "secret"},
		},
		Output:   OutputConfig{Dir: dir, Format: "csv"},
		Timeout:  DefaultTimeout,
		Parallel: DefaultParallel,
	}
}

// driftFixture returns two catalogs with one unique table and one column
// nullability difference
func driftFixture() (left, right *StaticCatalog) {
	left = &StaticCatalog{Objects: map[catalog.Category][]catalog.Object{
		catalog.CategoryTable: {
			{"schema": "public", "name": "orders"},
			{"schema": "public", "name": "legacy"},
		},
		catalog.CategoryColumn: {
			{"schema": "public", "table_name": "orders", "column_name": "status",
				"data_type": "text", "is_nullable": "YES", "column_default": ""},
		},
	}}
	right = &StaticCatalog{Objects: map[catalog.Category][]catalog.Object{
		catalog.CategoryTable: {
			{"schema": "public", "name": "orders"},
		},
		catalog.CategoryColumn: {
			{"schema": "public", "table_name": "orders", "column_name": "status",
				"data_type": "text", "is_nullable": "NO", "column_default": ""},
		},
	}}
	return left, right
}
