package catalog

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	_ "github.com/lib/pq"
)

// PostgresDialect reads PostgreSQL catalogs from information_schema and pg_catalog.
type PostgresDialect struct{}

// NewPostgresDialect creates the PostgreSQL dialect
func NewPostgresDialect() Dialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) Name() string       { return "postgres" }
func (d *PostgresDialect) DriverName() string { return "postgres" }
func (d *PostgresDialect) DefaultPort() int   { return 5432 }

// DSN builds a postgres:// URL. sslmode is "disable" unless an option sets it.
func (d *PostgresDialect) DSN(p ConnParams) (string, error) {
	if p.Host == "" || p.Database == "" {
		return "", fmt.Errorf("postgres connection requires host and database")
	}

	port := p.Port
	if port == 0 {
		port = d.DefaultPort()
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(p.Host, strconv.Itoa(port)),
		Path:   "/" + p.Database,
	}
	if p.User != "" {
		if p.Password != "" {
			u.User = url.UserPassword(p.User, p.Password)
		} else {
			u.User = url.User(p.User)
		}
	}

	q := url.Values{}
	for k, v := range p.Options {
		q.Set(k, v)
	}
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "disable")
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

const pgSystemSchemas = "('pg_catalog', 'information_schema')"

const pgRoutinesQuery = `
		SELECT
			n.nspname AS schema,
			p.proname AS name,
			pg_catalog.pg_get_function_identity_arguments(p.oid) AS arguments,
			pg_catalog.pg_get_functiondef(p.oid) AS definition
		FROM pg_catalog.pg_proc p
		LEFT JOIN pg_catalog.pg_namespace n ON n.oid = p.pronamespace
		WHERE n.nspname NOT IN ` + pgSystemSchemas + `
		AND p.prokind = '%s'`

var pgQueries = map[Category]catalogQuery{
	CategoryTable: {
		base: `
		SELECT table_schema AS schema, table_name AS name
		FROM information_schema.tables
		WHERE table_schema NOT IN ` + pgSystemSchemas + `
		AND table_type = 'BASE TABLE'`,
		schemaCol: "table_schema",
		orderBy:   "table_schema, table_name",
	},
	CategoryColumn: {
		base: `
		SELECT
			table_schema AS schema,
			table_name,
			column_name,
			data_type,
			is_nullable,
			column_default
		FROM information_schema.columns
		WHERE table_schema NOT IN ` + pgSystemSchemas,
		schemaCol: "table_schema",
		orderBy:   "table_schema, table_name, column_name",
	},
	CategoryIndex: {
		base: `
		SELECT
			schemaname AS schema,
			tablename AS table_name,
			indexname AS name,
			indexdef AS definition
		FROM pg_indexes
		WHERE schemaname NOT IN ` + pgSystemSchemas,
		schemaCol: "schemaname",
		orderBy:   "schemaname, tablename, indexname",
	},
	CategoryFunction: {
		base:      fmt.Sprintf(pgRoutinesQuery, "f"),
		schemaCol: "n.nspname",
		orderBy:   "n.nspname, p.proname",
	},
	CategoryProcedure: {
		base:      fmt.Sprintf(pgRoutinesQuery, "p"),
		schemaCol: "n.nspname",
		orderBy:   "n.nspname, p.proname",
	},
	CategoryTrigger: {
		base: `
		SELECT
			n.nspname AS schema,
			c.relname AS table_name,
			t.tgname AS name,
			pg_catalog.pg_get_triggerdef(t.oid, true) AS definition
		FROM pg_catalog.pg_trigger t
		JOIN pg_catalog.pg_class c ON c.oid = t.tgrelid
		JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
		WHERE NOT t.tgisinternal`,
		schemaCol: "n.nspname",
		orderBy:   "n.nspname, c.relname, t.tgname",
	},
}

// Query returns the catalog query for category
func (d *PostgresDialect) Query(category Category, schema string) (string, []any, error) {
	return lookupQuery(pgQueries, category, schema, "$1")
}
