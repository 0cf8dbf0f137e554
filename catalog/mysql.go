package catalog

import (
	"fmt"
	"maps"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
)

// MySQLDialect reads MySQL and MariaDB catalogs from information_schema.
// Index and trigger definitions are synthesized since MySQL does not keep the DDL text.
type MySQLDialect struct{}

// NewMySQLDialect creates the MySQL dialect
func NewMySQLDialect() Dialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) Name() string       { return "mysql" }
func (d *MySQLDialect) DriverName() string { return "mysql" }
func (d *MySQLDialect) DefaultPort() int   { return 3306 }

// DSN builds a go-sql-driver DSN over TCP
func (d *MySQLDialect) DSN(p ConnParams) (string, error) {
	if p.Host == "" || p.Database == "" {
		return "", fmt.Errorf("mysql connection requires host and database")
	}

	port := p.Port
	if port == 0 {
		port = d.DefaultPort()
	}

	cfg := mysql.NewConfig()
	cfg.User = p.User
	cfg.Passwd = p.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(p.Host, strconv.Itoa(port))
	cfg.DBName = p.Database
	if len(p.Options) > 0 {
		cfg.Params = maps.Clone(p.Options)
	}

	return cfg.FormatDSN(), nil
}

const mysqlSystemSchemas = "('mysql', 'information_schema', 'performance_schema', 'sys')"

const mysqlRoutinesQuery = `
		SELECT
			r.routine_schema AS ` + "`schema`" + `,
			r.routine_name AS name,
			COALESCE((
				SELECT GROUP_CONCAT(
					CONCAT_WS(' ', p.parameter_mode, p.parameter_name, p.dtd_identifier)
					ORDER BY p.ordinal_position SEPARATOR ', ')
				FROM information_schema.parameters p
				WHERE p.specific_schema = r.routine_schema
				AND p.specific_name = r.specific_name
				AND p.ordinal_position > 0
			), '') AS arguments,
			r.routine_definition AS definition
		FROM information_schema.routines r
		WHERE r.routine_schema NOT IN ` + mysqlSystemSchemas + `
		AND r.routine_type = '%s'`

var mysqlQueries = map[Category]catalogQuery{
	CategoryTable: {
		base: `
		SELECT table_schema AS ` + "`schema`" + `, table_name AS name
		FROM information_schema.tables
		WHERE table_schema NOT IN ` + mysqlSystemSchemas + `
		AND table_type = 'BASE TABLE'`,
		schemaCol: "table_schema",
		orderBy:   "table_schema, table_name",
	},
	CategoryColumn: {
		base: `
		SELECT
			table_schema AS ` + "`schema`" + `,
			table_name AS table_name,
			column_name AS column_name,
			data_type AS data_type,
			is_nullable AS is_nullable,
			column_default AS column_default
		FROM information_schema.columns
		WHERE table_schema NOT IN ` + mysqlSystemSchemas,
		schemaCol: "table_schema",
		orderBy:   "table_schema, table_name, column_name",
	},
	CategoryIndex: {
		base: `
		SELECT
			s.table_schema AS ` + "`schema`" + `,
			s.table_name AS table_name,
			s.index_name AS name,
			CONCAT(
				IF(s.non_unique = 0, 'UNIQUE ', ''), 'INDEX ', s.index_name,
				' ON ', s.table_name, ' USING ', s.index_type, ' (',
				GROUP_CONCAT(s.column_name ORDER BY s.seq_in_index SEPARATOR ', '), ')'
			) AS definition
		FROM information_schema.statistics s
		WHERE s.table_schema NOT IN ` + mysqlSystemSchemas,
		schemaCol: "s.table_schema",
		groupBy:   "s.table_schema, s.table_name, s.index_name, s.non_unique, s.index_type",
		orderBy:   "s.table_schema, s.table_name, s.index_name",
	},
	CategoryFunction: {
		base:      fmt.Sprintf(mysqlRoutinesQuery, "FUNCTION"),
		schemaCol: "r.routine_schema",
		orderBy:   "r.routine_schema, r.routine_name",
	},
	CategoryProcedure: {
		base:      fmt.Sprintf(mysqlRoutinesQuery, "PROCEDURE"),
		schemaCol: "r.routine_schema",
		orderBy:   "r.routine_schema, r.routine_name",
	},
	CategoryTrigger: {
		base: `
		SELECT
			trigger_schema AS ` + "`schema`" + `,
			event_object_table AS table_name,
			trigger_name AS name,
			CONCAT(
				action_timing, ' ', event_manipulation, ' ON ', event_object_table,
				' FOR EACH ', action_orientation, ' ', action_statement
			) AS definition
		FROM information_schema.triggers
		WHERE trigger_schema NOT IN ` + mysqlSystemSchemas,
		schemaCol: "trigger_schema",
		orderBy:   "trigger_schema, event_object_table, trigger_name",
	},
}

// Query returns the catalog query for category
func (d *MySQLDialect) Query(category Category, schema string) (string, []any, error) {
	return lookupQuery(mysqlQueries, category, schema, "?")
}
