package catalog

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	_ "github.com/microsoft/go-mssqldb"
)

// SQLServerDialect reads SQL Server catalogs from the sys views.
// STRING_AGG requires SQL Server 2017 or later.
type SQLServerDialect struct{}

// NewSQLServerDialect creates the SQL Server dialect
func NewSQLServerDialect() Dialect {
	return &SQLServerDialect{}
}

func (d *SQLServerDialect) Name() string       { return "sqlserver" }
func (d *SQLServerDialect) DriverName() string { return "sqlserver" }
func (d *SQLServerDialect) DefaultPort() int   { return 1433 }

// DSN builds a sqlserver:// URL
func (d *SQLServerDialect) DSN(p ConnParams) (string, error) {
	if p.Host == "" || p.Database == "" {
		return "", fmt.Errorf("sqlserver connection requires host and database")
	}

	port := p.Port
	if port == 0 {
		port = d.DefaultPort()
	}

	q := url.Values{}
	q.Set("database", p.Database)
	q.Set("app name", "catdiff")
	for k, v := range p.Options {
		q.Set(k, v)
	}

	u := url.URL{
		Scheme:   "sqlserver",
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(port)),
		RawQuery: q.Encode(),
	}
	if p.User != "" {
		u.User = url.UserPassword(p.User, p.Password)
	}

	return u.String(), nil
}

const sqlServerArgumentsExpr = `COALESCE((
				SELECT STRING_AGG(CONCAT(p.name, ' ', TYPE_NAME(p.user_type_id)), ', ')
					WITHIN GROUP (ORDER BY p.parameter_id)
				FROM sys.parameters p
				WHERE p.object_id = o.object_id AND p.parameter_id > 0
			), '')`

var sqlServerQueries = map[Category]catalogQuery{
	CategoryTable: {
		base: `
		SELECT s.name AS [schema], t.name AS name
		FROM sys.tables t
		INNER JOIN sys.schemas s ON t.schema_id = s.schema_id
		WHERE t.is_ms_shipped = 0`,
		schemaCol: "s.name",
		orderBy:   "s.name, t.name",
	},
	CategoryColumn: {
		base: `
		SELECT
			TABLE_SCHEMA AS [schema],
			TABLE_NAME AS table_name,
			COLUMN_NAME AS column_name,
			DATA_TYPE AS data_type,
			IS_NULLABLE AS is_nullable,
			COLUMN_DEFAULT AS column_default
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA NOT IN ('sys', 'INFORMATION_SCHEMA')`,
		schemaCol: "TABLE_SCHEMA",
		orderBy:   "TABLE_SCHEMA, TABLE_NAME, COLUMN_NAME",
	},
	CategoryIndex: {
		base: `
		SELECT
			s.name AS [schema],
			t.name AS table_name,
			i.name AS name,
			CONCAT(
				CASE WHEN i.is_unique = 1 THEN 'UNIQUE ' ELSE '' END,
				i.type_desc, ' INDEX ', i.name, ' ON ', s.name, '.', t.name, ' (',
				STRING_AGG(c.name, ', ') WITHIN GROUP (ORDER BY ic.key_ordinal), ')'
			) AS definition
		FROM sys.indexes i
		INNER JOIN sys.tables t ON i.object_id = t.object_id
		INNER JOIN sys.schemas s ON t.schema_id = s.schema_id
		INNER JOIN sys.index_columns ic ON ic.object_id = i.object_id
			AND ic.index_id = i.index_id AND ic.is_included_column = 0
		INNER JOIN sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id
		WHERE t.is_ms_shipped = 0 AND i.name IS NOT NULL`,
		schemaCol: "s.name",
		groupBy:   "s.name, t.name, i.name, i.is_unique, i.type_desc",
		orderBy:   "s.name, t.name, i.name",
	},
	CategoryFunction: {
		base: `
		SELECT
			s.name AS [schema],
			o.name AS name,
			` + sqlServerArgumentsExpr + ` AS arguments,
			m.definition AS definition
		FROM sys.objects o
		INNER JOIN sys.schemas s ON o.schema_id = s.schema_id
		LEFT JOIN sys.sql_modules m ON o.object_id = m.object_id
		WHERE o.is_ms_shipped = 0 AND o.type IN ('FN', 'IF', 'TF')`,
		schemaCol: "s.name",
		orderBy:   "s.name, o.name",
	},
	CategoryProcedure: {
		base: `
		SELECT
			s.name AS [schema],
			o.name AS name,
			` + sqlServerArgumentsExpr + ` AS arguments,
			m.definition AS definition
		FROM sys.procedures o
		INNER JOIN sys.schemas s ON o.schema_id = s.schema_id
		LEFT JOIN sys.sql_modules m ON o.object_id = m.object_id
		WHERE o.is_ms_shipped = 0`,
		schemaCol: "s.name",
		orderBy:   "s.name, o.name",
	},
	CategoryTrigger: {
		base: `
		SELECT
			s.name AS [schema],
			t.name AS table_name,
			tr.name AS name,
			m.definition AS definition
		FROM sys.triggers tr
		INNER JOIN sys.tables t ON tr.parent_id = t.object_id
		INNER JOIN sys.schemas s ON t.schema_id = s.schema_id
		LEFT JOIN sys.sql_modules m ON tr.object_id = m.object_id
		WHERE tr.is_ms_shipped = 0`,
		schemaCol: "s.name",
		orderBy:   "s.name, t.name, tr.name",
	},
}

// Query returns the catalog query for category
func (d *SQLServerDialect) Query(category Category, schema string) (string, []any, error) {
	return lookupQuery(sqlServerQueries, category, schema, "@p1")
}
