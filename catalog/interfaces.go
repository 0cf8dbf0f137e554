package catalog

import (
	"context"
	"fmt"
	"slices"
)

// Reader fetches the objects of one category from a live catalog.
type Reader interface {
	// Fetch returns the rows of category, restricted to schema when it is not
	// empty. Definition fields are returned normalized.
	Fetch(ctx context.Context, category Category, schema string) ([]Object, error)
}

// Dialect knows how to reach and query the catalog of one database engine.
type Dialect interface {
	// Name returns the dialect name used in configuration files
	Name() string

	// DriverName returns the database/sql driver name
	DriverName() string

	// DefaultPort is used when the connection parameters carry no port
	DefaultPort() int

	// DSN builds the driver data source name from connection parameters
	DSN(params ConnParams) (string, error)

	// Query returns the catalog query for category with its arguments.
	// Every selected column is aliased to the Object field name.
	Query(category Category, schema string) (string, []any, error)
}

// ConnParams holds what is needed to connect to one catalog.
type ConnParams struct {
	Dialect  string
	Host     string
	Port     int
	Database string
	User     string
	Password string

	// Options are passed to the driver as-is (e.g. sslmode, encrypt)
	Options map[string]string
}

// DialectRegistry manages the available dialects.
type DialectRegistry struct {
	dialects map[string]Dialect
}

// NewDialectRegistry creates an empty registry.
func NewDialectRegistry() *DialectRegistry {
	return &DialectRegistry{
		dialects: make(map[string]Dialect),
	}
}

// DefaultDialects returns a registry holding every built-in dialect.
func DefaultDialects() *DialectRegistry {
	r := NewDialectRegistry()
	r.Register(NewPostgresDialect())
	r.Register(NewMySQLDialect())
	r.Register(NewSQLServerDialect())
	return r
}

// Register adds a dialect to the registry
func (r *DialectRegistry) Register(d Dialect) {
	r.dialects[d.Name()] = d
}

// Get retrieves a dialect by name
func (r *DialectRegistry) Get(name string) (Dialect, error) {
	d, ok := r.dialects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
	return d, nil
}

// Names returns the registered dialect names, sorted
func (r *DialectRegistry) Names() []string {
	names := make([]string, 0, len(r.dialects))
	for name := range r.dialects {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
